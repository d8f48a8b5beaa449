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
	"bytes"
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/abjure/pkg/files"
	"github.com/walteh/abjure/pkg/status"
	"github.com/walteh/abjure/pkg/tree"
	"gitlab.com/tozd/go/errors"
)

// 📦 build walks the source once and brings every entry over to the target
func (b *Builder) build(ctx context.Context, src, dst string, res *Result) error {
	rootExists, err := b.fm.Exists(dst)
	if err != nil {
		return err
	}
	if !rootExists {
		res.Created++
		if !b.opts.DryRun {
			if err := b.fm.MkdirAll(dst); err != nil {
				return errors.Errorf("creating target root: %w", err)
			}
		}
	}

	entries, err := tree.List(b.fm.FS(), src, tree.Options{
		Skip: func(e tree.Entry) bool {
			return b.excluded(ctx, relSlash(src, e.Path))
		},
	})
	if err != nil {
		return err
	}

	for _, entry := range entries {
		targetPath := mirror(src, dst, entry.Path)
		rel := relSlash(dst, targetPath)

		if entry.IsDir() {
			if err := b.processDir(ctx, targetPath, rel, res); err != nil {
				return errors.Errorf("processing directory %s: %w", rel, err)
			}
			continue
		}

		if err := b.processFile(ctx, entry, targetPath, rel, res); err != nil {
			return errors.Errorf("processing file %s: %w", rel, err)
		}
	}

	return nil
}

// 📁 processDir makes sure the mirrored directory exists
func (b *Builder) processDir(ctx context.Context, targetPath, rel string, res *Result) error {
	exists, err := b.fm.Exists(targetPath)
	if err != nil {
		return err
	}
	if exists {
		info, err := b.fm.Stat(targetPath)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return errors.Errorf("target %s is a file but the source is a directory", targetPath)
		}
		return nil
	}

	if !b.opts.DryRun {
		if err := b.fm.MkdirAll(targetPath); err != nil {
			return err
		}
	}
	res.Created++
	b.notify(ctx, status.Event{Action: status.ActionCreated, Path: rel, IsDir: true, Reason: "missing"})
	return nil
}

// 📄 processFile rewrites processable files and copies everything else.
// A processable file with no markers falls through to the plain copy.
func (b *Builder) processFile(ctx context.Context, entry tree.Entry, targetPath, rel string, res *Result) error {
	if b.processable(entry.Name) {
		done, err := b.rewriteFile(ctx, entry.Path, targetPath, rel, res)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}

	return b.copyFile(ctx, entry.Path, targetPath, rel, res)
}

// ✂️ rewriteFile writes the rewritten content when it differs from the
// target. It returns false when no marker fired so the caller copies instead.
func (b *Builder) rewriteFile(ctx context.Context, sourcePath, targetPath, rel string, res *Result) (bool, error) {
	logger := zerolog.Ctx(ctx)

	content, err := b.fm.ReadFile(sourcePath)
	if err != nil {
		return false, err
	}

	result, err := b.rewriter.Rewrite(ctx, bytes.NewReader(content))
	if err != nil {
		return false, errors.Errorf("rewriting: %w", err)
	}
	if !result.Changed {
		logger.Trace().Str("path", rel).Msg("no markers, copying as is")
		return false, nil
	}

	rewritten := []byte(result.Content)

	exists, err := b.fm.Exists(targetPath)
	if err != nil {
		return false, err
	}
	if exists {
		same, err := files.SameContent(b.fm, targetPath, rewritten)
		if err != nil {
			return false, err
		}
		if same {
			b.notify(ctx, status.Event{Action: status.ActionUnchanged, Path: rel})
			return true, nil
		}
	}

	if !b.opts.DryRun {
		info, err := b.fm.Stat(sourcePath)
		if err != nil {
			return false, err
		}
		if err := b.fm.WriteFile(targetPath, rewritten, info.Mode().Perm()); err != nil {
			return false, err
		}
	}

	res.Rewritten++
	logger.Debug().Str("path", rel).Int("edits", result.Edits).Msg("rewrote file")
	b.notify(ctx, status.Event{Action: status.ActionRewritten, Path: rel, Reason: reason(exists, "changed")})
	return true, nil
}

// 📋 copyFile copies when the target is missing or its modification time
// differs from the source
func (b *Builder) copyFile(ctx context.Context, sourcePath, targetPath, rel string, res *Result) error {
	exists, err := b.fm.Exists(targetPath)
	if err != nil {
		return err
	}

	if exists {
		srcTime, err := b.fm.ModTime(sourcePath)
		if err != nil {
			return err
		}
		dstTime, err := b.fm.ModTime(targetPath)
		if err != nil {
			return err
		}
		if srcTime.Equal(dstTime) {
			b.notify(ctx, status.Event{Action: status.ActionUnchanged, Path: rel})
			return nil
		}
	}

	if !b.opts.DryRun {
		if err := b.fm.CopyFile(sourcePath, targetPath); err != nil {
			return err
		}
	}

	res.Copied++
	zerolog.Ctx(ctx).Debug().Str("path", rel).Msg("copied file")
	b.notify(ctx, status.Event{Action: status.ActionCopied, Path: rel, Reason: reason(exists, "modified")})
	return nil
}

func reason(exists bool, otherwise string) string {
	if !exists {
		return "missing"
	}
	return otherwise
}
