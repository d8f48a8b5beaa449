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
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes several builds
type Runner struct {
	parallel bool

	// Before is called right before build i starts, may be nil
	Before func(ctx context.Context, i int, opts Options)
	// After is called with the result of build i when it succeeded, may be nil
	After func(ctx context.Context, i int, res *Result)
}

// 🏗️ NewRunner creates a new runner
func NewRunner(parallel bool) *Runner {
	return &Runner{parallel: parallel}
}

// 🏃 Run executes every build and returns the results in build order.
// Builds whose targets overlap are rejected before anything runs.
func (r *Runner) Run(ctx context.Context, builds []Options) ([]*Result, error) {
	if err := checkTargets(builds); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int("builds", len(builds)).Bool("parallel", r.parallel).Msg("running builds")

	if r.parallel {
		return r.runParallel(ctx, builds)
	}
	return r.runSequential(ctx, builds)
}

// 🔄 runSequential runs builds one after the other, stopping at the first failure
func (r *Runner) runSequential(ctx context.Context, builds []Options) ([]*Result, error) {
	results := make([]*Result, 0, len(builds))
	for i, opts := range builds {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("operation cancelled: %w", err)
		}
		res, err := r.runOne(ctx, i, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// ⚡ runParallel runs every build in its own goroutine
func (r *Runner) runParallel(ctx context.Context, builds []Options) ([]*Result, error) {
	results := make([]*Result, len(builds))

	g, gctx := errgroup.WithContext(ctx)
	for i, opts := range builds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			res, err := r.runOne(gctx, i, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, i int, opts Options) (*Result, error) {
	if r.Before != nil {
		r.Before(ctx, i, opts)
	}
	res, err := Build(ctx, opts)
	if err != nil {
		return nil, errors.Errorf("build %s: %w", label(opts), err)
	}
	if r.After != nil {
		r.After(ctx, i, res)
	}
	return res, nil
}

// checkTargets rejects builds that would write into each other's target
func checkTargets(builds []Options) error {
	targets := make([]string, len(builds))
	for i, opts := range builds {
		abs, err := filepath.Abs(opts.Target)
		if err != nil {
			return errors.Errorf("resolving target of build %s: %w", label(opts), err)
		}
		targets[i] = abs
	}

	for i := range targets {
		for j := i + 1; j < len(targets); j++ {
			if overlaps(targets[i], targets[j]) {
				return errors.Errorf("targets of builds %s and %s overlap", label(builds[i]), label(builds[j]))
			}
		}
	}
	return nil
}

func label(opts Options) string {
	if opts.Name != "" {
		return opts.Name
	}
	return opts.Source
}
