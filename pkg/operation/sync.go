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
	"path/filepath"
	"strings"

	"github.com/walteh/abjure/pkg/files"
	"gitlab.com/tozd/go/errors"
)

// resolveRoots makes both roots absolute and checks that they can be mirrored
func resolveRoots(fm files.FileManager, source, target string) (string, string, error) {
	src, err := filepath.Abs(source)
	if err != nil {
		return "", "", errors.Errorf("resolving source: %w", err)
	}
	dst, err := filepath.Abs(target)
	if err != nil {
		return "", "", errors.Errorf("resolving target: %w", err)
	}

	exists, err := fm.Exists(src)
	if err != nil {
		return "", "", err
	}
	if !exists {
		return "", "", errors.Errorf("source %s does not exist", src)
	}
	info, err := fm.Stat(src)
	if err != nil {
		return "", "", err
	}
	if !info.IsDir() {
		return "", "", errors.Errorf("source %s is not a directory", src)
	}

	if src == dst {
		return "", "", errors.Errorf("target %s is the source", dst)
	}
	if within(src, dst) {
		return "", "", errors.Errorf("target %s is inside source %s", dst, src)
	}
	if within(dst, src) {
		return "", "", errors.Errorf("source %s is inside target %s", src, dst)
	}

	return src, dst, nil
}

// within reports whether path lies strictly below root
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// overlaps reports whether two roots are equal or nested
func overlaps(a, b string) bool {
	return a == b || within(a, b) || within(b, a)
}

// mirror maps path under from onto the same relative path under to
func mirror(from, to, path string) string {
	rel, err := filepath.Rel(from, path)
	if err != nil {
		return filepath.Join(to, path)
	}
	return filepath.Join(to, rel)
}

// relSlash is path relative to root with forward slashes, used for patterns and output
func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
