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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithin(t *testing.T) {
	tests := []struct {
		name string
		root string
		path string
		want bool
	}{
		{name: "child", root: "/a", path: "/a/b", want: true},
		{name: "grandchild", root: "/a", path: "/a/b/c", want: true},
		{name: "same", root: "/a", path: "/a", want: false},
		{name: "parent", root: "/a/b", path: "/a", want: false},
		{name: "sibling", root: "/a/b", path: "/a/c", want: false},
		{name: "shared_prefix", root: "/a/b", path: "/a/bc", want: false},
		{name: "dotdot_name", root: "/a", path: "/a/..b", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := within(filepath.FromSlash(tt.root), filepath.FromSlash(tt.path))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, overlaps("/out", "/out"))
	assert.True(t, overlaps("/out", "/out/web"))
	assert.True(t, overlaps("/out/web", "/out"))
	assert.False(t, overlaps("/out/web", "/out/worker"))
}

func TestMirror(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		path string
		want string
	}{
		{name: "file", from: "/src", to: "/dist", path: "/src/a.js", want: "/dist/a.js"},
		{name: "nested", from: "/src", to: "/out/dist", path: "/src/x/y/z.css", want: "/out/dist/x/y/z.css"},
		{name: "back", from: "/dist", to: "/src", path: "/dist/x", want: "/src/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mirror(filepath.FromSlash(tt.from), filepath.FromSlash(tt.to), filepath.FromSlash(tt.path))
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestRelSlash(t *testing.T) {
	assert.Equal(t, "a/b/c.js", relSlash(filepath.FromSlash("/src"), filepath.FromSlash("/src/a/b/c.js")))
	assert.Equal(t, "top.js", relSlash(filepath.FromSlash("/src"), filepath.FromSlash("/src/top.js")))
}
