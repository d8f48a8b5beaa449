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

package tree

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gitlab.com/tozd/go/errors"
)

// 📁 Kind tells files and directories apart
type Kind int

const (
	File Kind = iota
	Directory
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Directory:
		return "folder"
	default:
		return "unknown"
	}
}

// 📄 Entry is one file or directory found under a root
type Entry struct {
	Name string // Base name
	Path string // Full path, root included
	Kind Kind
}

// IsDir reports whether the entry is a directory
func (e Entry) IsDir() bool {
	return e.Kind == Directory
}

// Options tune a listing
type Options struct {
	// Skip drops an entry from the listing. A skipped directory is not descended into.
	Skip func(Entry) bool
}

// 🌳 List returns every regular file and directory under root, depth first.
// A directory comes immediately before its children and siblings are sorted
// by name. Symlinks and special files are left out. The root itself is not
// part of the result.
func List(fs billy.Filesystem, root string, opts Options) ([]Entry, error) {
	var entries []Entry

	err := util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path == root {
			if !info.IsDir() {
				return errors.Errorf("%s is not a directory", root)
			}
			return nil
		}

		var entry Entry
		switch {
		case info.IsDir():
			entry = Entry{Name: info.Name(), Path: path, Kind: Directory}
		case info.Mode().IsRegular():
			entry = Entry{Name: info.Name(), Path: path, Kind: File}
		default:
			return nil
		}

		if opts.Skip != nil && opts.Skip(entry) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", root, err)
	}

	return entries, nil
}
