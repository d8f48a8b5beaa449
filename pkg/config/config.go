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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultFile is the config file looked up when none is given
const DefaultFile = ".abjure.hcl"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses and validates the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🏗️ Build is one source tree mirrored into one target tree
type Build struct {
	Name       string   `hcl:"name,label" json:"name" yaml:"name"`
	Source     string   `hcl:"source" json:"source" yaml:"source"`
	Target     string   `hcl:"target" json:"target" yaml:"target"`
	Extensions []string `hcl:"extensions,optional" json:"extensions,omitempty" yaml:"extensions,omitempty"` // Processable extensions, ".js" when empty
	Exclude    []string `hcl:"exclude,optional" json:"exclude,omitempty" yaml:"exclude,omitempty"`          // doublestar patterns relative to the roots
	DryRun     bool     `hcl:"dry_run,optional" json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Parallel bool    `hcl:"parallel,optional" json:"parallel,omitempty" yaml:"parallel,omitempty"`
	Builds   []Build `hcl:"build,block" json:"builds" yaml:"builds"`

	location string
}

// Location is the file the config was loaded from, empty when parsed from bytes
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the configuration from a file. Relative build paths are
// resolved against the directory holding the file.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolving config path: %w", err)
	}
	cfg.location = abs
	cfg.ResolvePaths(filepath.Dir(abs))

	logger.Debug().Int("builds", len(cfg.Builds)).Bool("parallel", cfg.Parallel).Msg("configuration loaded")

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and normalizes it
func (cfg *Config) Validate() error {
	if len(cfg.Builds) == 0 {
		return errors.Errorf("at least one build is required")
	}

	seen := make(map[string]bool, len(cfg.Builds))
	for i := range cfg.Builds {
		b := &cfg.Builds[i]

		// Check required fields
		if b.Source == "" {
			return errors.Errorf("build %s: source is required", b.label(i))
		}
		if b.Target == "" {
			return errors.Errorf("build %s: target is required", b.label(i))
		}
		if b.Name != "" {
			if seen[b.Name] {
				return errors.Errorf("build %q is defined more than once", b.Name)
			}
			seen[b.Name] = true
		}

		// Clean up paths
		b.Source = filepath.Clean(b.Source)
		b.Target = filepath.Clean(b.Target)

		// Normalize extensions
		for j, ext := range b.Extensions {
			ext = strings.TrimSpace(ext)
			if ext == "" || ext == "." {
				return errors.Errorf("build %s: empty extension", b.label(i))
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			b.Extensions[j] = ext
		}
	}

	return nil
}

// ResolvePaths makes relative build paths relative to dir
func (cfg *Config) ResolvePaths(dir string) {
	for i := range cfg.Builds {
		b := &cfg.Builds[i]
		if !filepath.IsAbs(b.Source) {
			b.Source = filepath.Join(dir, b.Source)
		}
		if !filepath.IsAbs(b.Target) {
			b.Target = filepath.Join(dir, b.Target)
		}
	}
}

// 📝 String returns a string representation of the build
func (b Build) String() string {
	if b.Name == "" {
		return fmt.Sprintf("%s -> %s", b.Source, b.Target)
	}
	return fmt.Sprintf("%s: %s -> %s", b.Name, b.Source, b.Target)
}

func (b Build) label(i int) string {
	if b.Name != "" {
		return fmt.Sprintf("%q", b.Name)
	}
	return fmt.Sprintf("#%d", i+1)
}
