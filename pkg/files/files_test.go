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

package files_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/abjure/pkg/files"
)

func TestManager_Memory(t *testing.T) {
	fm := files.NewMemory()

	// write creates parents
	require.NoError(t, fm.WriteFile("/out/a/b.txt", []byte("hello"), 0644))

	exists, err := fm.Exists("/out/a/b.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	content, err := fm.ReadFile("/out/a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	same, err := files.SameContent(fm, "/out/a/b.txt", []byte("hello"))
	require.NoError(t, err)
	assert.True(t, same)

	same, err = files.SameContent(fm, "/out/a/b.txt", []byte("bye"))
	require.NoError(t, err)
	assert.False(t, same)

	same, err = files.SameContent(fm, "/out/missing.txt", []byte("hello"))
	require.NoError(t, err)
	assert.False(t, same)

	require.NoError(t, fm.CopyFile("/out/a/b.txt", "/copy/c.txt"))
	content, err = fm.ReadFile("/copy/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	require.NoError(t, fm.RemoveFile("/copy/c.txt"))
	exists, err = fm.Exists("/copy/c.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, fm.RemoveAll("/out"))
	exists, err = fm.Exists("/out/a")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestManager_ReadMissing(t *testing.T) {
	fm := files.NewMemory()

	_, err := fm.ReadFile("/nope.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading file /nope.txt")

	_, err = fm.ModTime("/nope.txt")
	require.Error(t, err)
}

func TestManager_OSCopyPreservesModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "image.png")
	dst := filepath.Join(dir, "dst", "nested", "image.png")

	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
	require.NoError(t, os.WriteFile(src, []byte{0x89, 'P', 'N', 'G'}, 0640))

	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, stamp, stamp))

	fm := files.NewOS()
	require.NoError(t, fm.CopyFile(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp), "mtime should be carried over")
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	srcTime, err := fm.ModTime(src)
	require.NoError(t, err)
	dstTime, err := fm.ModTime(dst)
	require.NoError(t, err)
	assert.True(t, srcTime.Equal(dstTime))
}

func TestManager_OSRemoveAll(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "x.js"), []byte("x"), 0644))

	fm := files.NewOS()
	require.NoError(t, fm.RemoveAll(filepath.Join(dir, "a")))

	_, err := os.Stat(filepath.Join(dir, "a"))
	assert.True(t, os.IsNotExist(err))
}
