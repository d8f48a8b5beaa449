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
	"io"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/abjure/pkg/files"
	"github.com/walteh/abjure/pkg/status"
	"github.com/walteh/abjure/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// DefaultExtensions are the processable extensions used when none are given
var DefaultExtensions = []string{".js"}

// ✂️ Rewriter turns marked source into its rewritten form
type Rewriter interface {
	Rewrite(ctx context.Context, content io.Reader) (*text.RewriteResult, error)
}

// 🔧 Options contains configuration for one build
type Options struct {
	// Name labels the build in output, empty for ad hoc builds
	Name string
	// Source is the tree that is read
	Source string
	// Target is the tree that is made to mirror Source
	Target string
	// Extensions are the processable file extensions, DefaultExtensions when empty
	Extensions []string
	// Exclude holds doublestar patterns matched against slash separated
	// paths relative to either root
	Exclude []string
	// DryRun computes every decision without touching the target
	DryRun bool

	// Files is the filesystem, the native one when nil
	Files files.FileManager
	// Rewriter handles processable files, text.NewRewriter() when nil
	Rewriter Rewriter
	// Reporter is told about every action, may be nil
	Reporter status.Reporter
}

// 📊 Result holds what one build did
type Result struct {
	Name   string
	Source string // Resolved source root
	Target string // Resolved target root
	DryRun bool
	status.Counts

	// Created is the number of directories made, the target root included
	Created int
}

// UpToDate reports whether the build had nothing to create, write, copy or delete
func (r *Result) UpToDate() bool {
	return r.Total() == 0 && r.Created == 0
}

// 🏗️ Builder runs a single build
type Builder struct {
	opts     Options
	fm       files.FileManager
	rewriter Rewriter
	exts     []string
}

// 🏭 New creates a builder, filling in defaults and checking patterns
func New(opts Options) (*Builder, error) {
	if opts.Source == "" {
		return nil, errors.Errorf("source is required")
	}
	if opts.Target == "" {
		return nil, errors.Errorf("target is required")
	}
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	b := &Builder{
		opts:     opts,
		fm:       opts.Files,
		rewriter: opts.Rewriter,
		exts:     opts.Extensions,
	}
	if b.fm == nil {
		b.fm = files.NewOS()
	}
	if b.rewriter == nil {
		b.rewriter = text.NewRewriter()
	}
	if len(b.exts) == 0 {
		b.exts = DefaultExtensions
	}
	return b, nil
}

// 🎯 Build runs one build with the given options
func Build(ctx context.Context, opts Options) (*Result, error) {
	b, err := New(opts)
	if err != nil {
		return nil, err
	}
	return b.Run(ctx)
}

// 🏃 Run mirrors the source into the target, then removes target entries
// that no longer have a source counterpart. Any filesystem failure stops
// the run.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	src, dst, err := resolveRoots(b.fm, b.opts.Source, b.opts.Target)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().
		Str("build", b.opts.Name).
		Str("source", src).
		Str("target", dst).
		Bool("dry_run", b.opts.DryRun).
		Logger()
	ctx = logger.WithContext(ctx)

	res := &Result{
		Name:   b.opts.Name,
		Source: src,
		Target: dst,
		DryRun: b.opts.DryRun,
	}

	logger.Debug().Msg("starting build pass")
	if err := b.build(ctx, src, dst, res); err != nil {
		return nil, errors.Errorf("building %s: %w", src, err)
	}

	logger.Debug().Msg("starting cleanup pass")
	if err := b.clean(ctx, src, dst, res); err != nil {
		return nil, errors.Errorf("cleaning %s: %w", dst, err)
	}

	logger.Debug().
		Int("rewritten", res.Rewritten).
		Int("copied", res.Copied).
		Int("deleted", res.Deleted).
		Msg("build finished")

	return res, nil
}

// processable reports whether a file goes through the rewriter
func (b *Builder) processable(name string) bool {
	return slices.Contains(b.exts, filepath.Ext(name))
}

// 🔍 excluded checks a root relative, slash separated path against the patterns
func (b *Builder) excluded(ctx context.Context, rel string) bool {
	for _, pattern := range b.opts.Exclude {
		// patterns were validated in New
		if doublestar.MatchUnvalidated(pattern, rel) {
			zerolog.Ctx(ctx).Debug().Str("path", rel).Str("pattern", pattern).Msg("path excluded by pattern")
			return true
		}
	}
	return false
}

func (b *Builder) notify(ctx context.Context, ev status.Event) {
	status.Notify(ctx, b.opts.Reporter, ev)
}
