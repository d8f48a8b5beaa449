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

package operation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/abjure/pkg/operation"
	"github.com/walteh/abjure/pkg/status"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(t *testing.T, src, dst string)
		wantOutdated bool
		wantCounts   status.Counts
		wantCreated  int
	}{
		{
			name:         "fresh_target",
			setup:        func(t *testing.T, src, dst string) {},
			wantOutdated: true,
			wantCounts:   status.Counts{Rewritten: 1, Copied: 1},
			wantCreated:  1,
		},
		{
			name: "new_empty_directory",
			setup: func(t *testing.T, src, dst string) {
				_, err := operation.Build(testContext(t), operation.Options{Source: src, Target: dst})
				require.NoError(t, err)
				require.NoError(t, os.MkdirAll(filepath.Join(src, "newdir"), 0755))
			},
			wantOutdated: true,
			wantCreated:  1,
		},
		{
			name: "empty_target_root_missing",
			setup: func(t *testing.T, src, dst string) {
				require.NoError(t, os.Remove(filepath.Join(src, "app.js")))
				require.NoError(t, os.Remove(filepath.Join(src, "style.css")))
			},
			wantOutdated: true,
			wantCreated:  1,
		},
		{
			name: "up_to_date",
			setup: func(t *testing.T, src, dst string) {
				_, err := operation.Build(testContext(t), operation.Options{Source: src, Target: dst})
				require.NoError(t, err)
			},
			wantOutdated: false,
		},
		{
			name: "orphan_in_target",
			setup: func(t *testing.T, src, dst string) {
				_, err := operation.Build(testContext(t), operation.Options{Source: src, Target: dst})
				require.NoError(t, err)
				writeTree(t, dst, map[string]string{"stale.js": "x"})
			},
			wantOutdated: true,
			wantCounts:   status.Counts{Deleted: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "src")
			dst := filepath.Join(dir, "dist")
			writeTree(t, src, map[string]string{
				"app.js":    removeSource,
				"style.css": "body {}",
			})
			tt.setup(t, src, dst)

			outdated, res, err := operation.Status(testContext(t), operation.Options{Source: src, Target: dst})
			require.NoError(t, err)

			assert.Equal(t, tt.wantOutdated, outdated)
			assert.Equal(t, tt.wantCounts, res.Counts)
			assert.Equal(t, tt.wantCreated, res.Created)
			assert.True(t, res.DryRun, "status never writes")
		})
	}
}

func TestStatus_DoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dist")
	writeTree(t, src, map[string]string{"app.js": removeSource})

	outdated, _, err := operation.Status(testContext(t), operation.Options{Source: src, Target: dst})
	require.NoError(t, err)
	assert.True(t, outdated)

	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestStatus_Error(t *testing.T) {
	dir := t.TempDir()

	_, _, err := operation.Status(testContext(t), operation.Options{
		Source: filepath.Join(dir, "missing"),
		Target: filepath.Join(dir, "dist"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checking status")
	assert.Contains(t, err.Error(), "does not exist")
}

func TestStatus_NewDirectoryIsBuilt(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dist")
	writeTree(t, src, map[string]string{"app.js": removeSource})

	_, err := operation.Build(testContext(t), operation.Options{Source: src, Target: dst})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(src, "newdir"), 0755))

	outdated, _, err := operation.Status(testContext(t), operation.Options{Source: src, Target: dst})
	require.NoError(t, err)
	require.True(t, outdated, "a directory to create means the target is out of date")

	res, err := operation.Build(testContext(t), operation.Options{Source: src, Target: dst})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)

	info, err := os.Stat(filepath.Join(dst, "newdir"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	outdated, _, err = operation.Status(testContext(t), operation.Options{Source: src, Target: dst})
	require.NoError(t, err)
	assert.False(t, outdated)
}
