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

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/walteh/abjure/cmd/abjure/opts"
	"github.com/walteh/abjure/pkg/log"
	"github.com/walteh/abjure/pkg/operation"
	"github.com/walteh/abjure/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewBuildCmd creates a new build command
func NewBuildCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [source target]",
		Short: "Build special comments from a source directory into a target directory",
		Long: `Build mirrors the source directory into the target directory.
It will:
1. Rewrite marked comments in processable files (.js by default)
2. Copy every other file that is missing or has a different modification time
3. Delete everything in the target that no longer exists in the source

Without arguments the builds are read from the config file.`,
		Args: cobra.MatchAll(cobra.MaximumNArgs(2), func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return errors.Errorf("build needs both a source and a target")
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := time.Now()

			builds, parallel, err := opts.Builds(ctx, args)
			if err != nil {
				return err
			}

			out := newConsoles(opts.Logger, builds, parallel)
			results, runErr := out.runner(parallel).Run(ctx, builds)
			if err := out.flush(); err != nil {
				return err
			}
			if runErr != nil {
				return errors.Errorf("running builds: %w", runErr)
			}

			if len(results) > 1 {
				var total status.Counts
				for _, res := range results {
					total = total.Add(res.Counts)
				}
				opts.Logger.Header(fmt.Sprintf("all %d builds", len(results)))
				opts.Logger.Summary(ctx, total)
			}

			opts.Logger.Elapsed(time.Since(start))
			return nil
		},
	}

	return cmd
}

// consoles holds the logger each build reports to, by build index. Builds
// running in parallel get buffered children so that every build's lines
// come out together, in build order.
type consoles []*log.Logger

// newConsoles picks a console per build and makes it the build's reporter
func newConsoles(logger *log.Logger, builds []operation.Options, parallel bool) consoles {
	c := make(consoles, len(builds))
	for i := range builds {
		c[i] = logger
		if parallel && len(builds) > 1 {
			c[i] = logger.Buffered()
		}
		builds[i].Reporter = c[i]
	}
	return c
}

// runner wires the runner hooks to the consoles
func (c consoles) runner(parallel bool) *operation.Runner {
	runner := operation.NewRunner(parallel)
	runner.Before = func(ctx context.Context, i int, b operation.Options) {
		c[i].StartBuild(ctx, log.BuildOperation{
			Name:   b.Name,
			Source: b.Source,
			Target: b.Target,
			DryRun: b.DryRun,
		})
	}
	runner.After = func(ctx context.Context, i int, res *operation.Result) {
		c[i].Summary(ctx, res.Counts)
	}
	return runner
}

// flush writes buffered build output in build order
func (c consoles) flush() error {
	for _, l := range c {
		if err := l.Flush(); err != nil {
			return err
		}
	}
	return nil
}
