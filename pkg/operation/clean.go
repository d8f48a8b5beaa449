// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/abjure/pkg/status"
	"github.com/walteh/abjure/pkg/tree"
	"gitlab.com/tozd/go/errors"
)

// 🧹 clean walks the target and deletes every entry whose source
// counterpart is gone or excluded. Entries below a deleted directory are
// skipped since they went with it.
func (b *Builder) clean(ctx context.Context, src, dst string, res *Result) error {
	exists, err := b.fm.Exists(dst)
	if err != nil {
		return err
	}
	if !exists {
		// only reachable in a dry run against a fresh target
		return nil
	}

	entries, err := tree.List(b.fm.FS(), dst, tree.Options{})
	if err != nil {
		return err
	}

	var removed []string
	for _, entry := range entries {
		if belowAny(removed, entry.Path) {
			continue
		}

		rel := relSlash(dst, entry.Path)
		why, err := b.orphaned(ctx, mirror(dst, src, entry.Path), rel)
		if err != nil {
			return errors.Errorf("checking %s: %w", rel, err)
		}
		if why == "" {
			continue
		}

		if err := b.cleanEntry(entry); err != nil {
			return errors.Errorf("deleting %s: %w", rel, err)
		}

		removed = append(removed, entry.Path)
		res.Deleted++
		zerolog.Ctx(ctx).Debug().Str("path", rel).Str("kind", entry.Kind.String()).Str("reason", why).Msg("deleted target entry")
		b.notify(ctx, status.Event{Action: status.ActionDeleted, Path: rel, IsDir: entry.IsDir(), Reason: why})
	}

	return nil
}

// orphaned returns why a target entry must go, or "" when it stays
func (b *Builder) orphaned(ctx context.Context, sourcePath, rel string) (string, error) {
	if b.excluded(ctx, rel) {
		return "excluded", nil
	}
	exists, err := b.fm.Exists(sourcePath)
	if err != nil {
		return "", err
	}
	if !exists {
		return "orphan", nil
	}
	return "", nil
}

// 🗑️ cleanEntry removes a file, or a directory with everything in it
func (b *Builder) cleanEntry(entry tree.Entry) error {
	if b.opts.DryRun {
		return nil
	}
	if entry.IsDir() {
		return b.fm.RemoveAll(entry.Path)
	}
	return b.fm.RemoveFile(entry.Path)
}

func belowAny(dirs []string, path string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
