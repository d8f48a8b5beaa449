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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, dir string, cfg *Config)
	}{
		{
			name: "valid_yaml",
			file: "abjure.yaml",
			config: `
parallel: true
builds:
  - name: web
    source: src
    target: dist/web
    extensions: [js, .mjs]
    exclude:
      - "**/*.map"
  - name: abs
    source: /opt/src
    target: /opt/dist
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.True(t, cfg.Parallel, "parallel should be true")
				require.Len(t, cfg.Builds, 2, "should have 2 builds")

				web := cfg.Builds[0]
				assert.Equal(t, "web", web.Name)
				assert.Equal(t, filepath.Join(dir, "src"), web.Source, "relative source resolves against config dir")
				assert.Equal(t, filepath.Join(dir, "dist", "web"), web.Target, "relative target resolves against config dir")
				assert.Equal(t, []string{".js", ".mjs"}, web.Extensions, "extensions should be normalized")
				assert.Equal(t, []string{"**/*.map"}, web.Exclude)

				assert.Equal(t, "/opt/src", cfg.Builds[1].Source, "absolute paths are kept")
				assert.Equal(t, "/opt/dist", cfg.Builds[1].Target, "absolute paths are kept")
				assert.Equal(t, filepath.Join(dir, "abjure.yaml"), cfg.Location())
			},
		},
		{
			name: "valid_hcl",
			file: ".abjure.hcl",
			config: `
build "app" {
  source = "./lib/../src"
  target = "out"
}
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				require.Len(t, cfg.Builds, 1)
				assert.Equal(t, "app", cfg.Builds[0].Name)
				assert.Equal(t, filepath.Join(dir, "src"), cfg.Builds[0].Source)
				assert.Equal(t, filepath.Join(dir, "out"), cfg.Builds[0].Target)
				assert.False(t, cfg.Parallel)
				assert.Empty(t, cfg.Builds[0].Extensions)
			},
		},
		{
			name: "missing_builds",
			file: "abjure.yaml",
			config: `
parallel: false
`,
			wantErr:     true,
			errContains: "at least one build is required",
		},
		{
			name: "missing_source",
			file: "abjure.yaml",
			config: `
builds:
  - name: web
    target: dist
`,
			wantErr:     true,
			errContains: `build "web": source is required`,
		},
		{
			name: "missing_target_unnamed",
			file: "abjure.yaml",
			config: `
builds:
  - source: src
`,
			wantErr:     true,
			errContains: "build #1: target is required",
		},
		{
			name: "duplicate_names",
			file: "abjure.yaml",
			config: `
builds:
  - name: web
    source: a
    target: b
  - name: web
    source: c
    target: d
`,
			wantErr:     true,
			errContains: `build "web" is defined more than once`,
		},
		{
			name: "unknown_field",
			file: "abjure.yaml",
			config: `
builds:
  - name: web
    source: a
    target: b
    destination: c
`,
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unsupported_extension",
			file:        "abjure.toml",
			config:      `parallel = true`,
			wantErr:     true,
			errContains: "no parser found for file",
		},
	}

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary config file
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, tt.file)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			// Load config
			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, tmpDir, cfg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), ".abjure.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidate_Extensions(t *testing.T) {
	tests := []struct {
		name        string
		exts        []string
		want        []string
		errContains string
	}{
		{
			name: "adds_leading_dot",
			exts: []string{"js", "ts"},
			want: []string{".js", ".ts"},
		},
		{
			name: "keeps_dotted",
			exts: []string{".js", " .cjs "},
			want: []string{".js", ".cjs"},
		},
		{
			name:        "rejects_empty",
			exts:        []string{".js", ""},
			errContains: "empty extension",
		},
		{
			name:        "rejects_bare_dot",
			exts:        []string{"."},
			errContains: "empty extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Builds: []Build{{Source: "a", Target: "b", Extensions: tt.exts}}}
			err := cfg.Validate()
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Builds[0].Extensions)
		})
	}
}

func TestBuildString(t *testing.T) {
	tests := []struct {
		name  string
		build Build
		want  string
	}{
		{
			name:  "named",
			build: Build{Name: "web", Source: "src", Target: "dist"},
			want:  "web: src -> dist",
		},
		{
			name:  "unnamed",
			build: Build{Source: "src", Target: "dist"},
			want:  "src -> dist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.build.String(), "String() should match")
		})
	}
}
