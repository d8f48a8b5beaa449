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

// Package files provides the filesystem primitives a build needs, backed by
// go-billy so the same code runs against the real disk and an in-memory tree.
package files

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileManager handles all file system operations of a build
type FileManager interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, content []byte, perm os.FileMode) error
	Exists(path string) (bool, error)
	Stat(path string) (os.FileInfo, error)
	ModTime(path string) (time.Time, error)
	CopyFile(src, dst string) error
	MkdirAll(path string) error
	RemoveFile(path string) error
	RemoveAll(path string) error

	// FS exposes the underlying filesystem for walking
	FS() billy.Filesystem
}

// chtimer is implemented by filesystems that can set modification times
type chtimer interface {
	Chtimes(name string, atime time.Time, mtime time.Time) error
}

// 🔧 Manager implements FileManager on top of a billy.Filesystem
type Manager struct {
	fs billy.Filesystem
}

var _ FileManager = (*Manager)(nil)

// New creates a manager for the given filesystem
func New(fs billy.Filesystem) *Manager {
	return &Manager{fs: fs}
}

// NewOS creates a manager over the native filesystem, addressed by absolute paths
func NewOS() *Manager {
	return New(&rootOS{})
}

// NewMemory creates a manager over an empty in-memory filesystem
func NewMemory() *Manager {
	return New(memfs.New())
}

func (m *Manager) FS() billy.Filesystem {
	return m.fs
}

func (m *Manager) ReadFile(path string) ([]byte, error) {
	content, err := util.ReadFile(m.fs, path)
	if err != nil {
		return nil, errors.Errorf("reading file %s: %w", path, err)
	}
	return content, nil
}

func (m *Manager) WriteFile(path string, content []byte, perm os.FileMode) error {
	if err := m.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}
	if err := util.WriteFile(m.fs, path, content, perm); err != nil {
		return errors.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

func (m *Manager) Exists(path string) (bool, error) {
	_, err := m.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func (m *Manager) Stat(path string) (os.FileInfo, error) {
	info, err := m.fs.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stat %s: %w", path, err)
	}
	return info, nil
}

func (m *Manager) ModTime(path string) (time.Time, error) {
	info, err := m.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// CopyFile copies src over dst, creating parent directories if needed. The
// permission bits and, where the filesystem allows it, the modification time
// of src are carried over so an unchanged file compares equal next time.
func (m *Manager) CopyFile(src, dst string) error {
	info, err := m.fs.Stat(src)
	if err != nil {
		return errors.Errorf("stat source file: %w", err)
	}

	srcFile, err := m.fs.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer srcFile.Close()

	if err := m.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	dstFile, err := m.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Errorf("copying file content: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	if ct, ok := m.fs.(chtimer); ok {
		if err := ct.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
			return errors.Errorf("preserving modification time: %w", err)
		}
	}

	return nil
}

func (m *Manager) MkdirAll(path string) error {
	if err := m.fs.MkdirAll(path, 0755); err != nil {
		return errors.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

func (m *Manager) RemoveFile(path string) error {
	if err := m.fs.Remove(path); err != nil {
		return errors.Errorf("deleting file %s: %w", path, err)
	}
	return nil
}

func (m *Manager) RemoveAll(path string) error {
	if err := util.RemoveAll(m.fs, path); err != nil {
		return errors.Errorf("removing directory %s: %w", path, err)
	}
	return nil
}

// SameContent reports whether path exists and holds exactly content
func SameContent(fm FileManager, path string, content []byte) (bool, error) {
	exists, err := fm.Exists(path)
	if err != nil || !exists {
		return false, err
	}
	current, err := fm.ReadFile(path)
	if err != nil {
		return false, err
	}
	return bytes.Equal(current, content), nil
}

// rootOS is a billy.Filesystem that acts like the native filesystem: paths
// are used as given instead of being joined onto a chroot.
type rootOS struct {
	osfs.ChrootOS
}

//nolint:ireturn // signature is dictated by billy.Chroot
func (r *rootOS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

func (r *rootOS) Root() string {
	return string(filepath.Separator)
}

func (r *rootOS) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}
