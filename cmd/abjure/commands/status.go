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

	"github.com/spf13/cobra"
	"github.com/walteh/abjure/cmd/abjure/opts"
	"github.com/walteh/abjure/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrOutOfDate is returned by status when a build would change its target
var ErrOutOfDate = errors.Base("target is out of date")

// NewStatusCmd creates a new status command
func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [source target]",
		Short: "Check if targets need to be built",
		Long: `Status runs every build without touching the targets.
It will:
1. Walk the source and target exactly like build does
2. Report what would be rewritten, copied and deleted
3. Fail if any target is out of date`,
		Args: cobra.MatchAll(cobra.MaximumNArgs(2), func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return errors.Errorf("status needs both a source and a target")
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			builds, parallel, err := opts.Builds(ctx, args)
			if err != nil {
				return err
			}
			out := newConsoles(opts.Logger, builds, parallel)
			pending := newPendingChanges(status.NewDefaultFileFormatter(), len(builds))
			for i := range builds {
				builds[i].DryRun = true
				builds[i].Reporter = pending.wrap(i, builds[i].Reporter)
			}

			results, runErr := out.runner(parallel).Run(ctx, builds)
			if err := out.flush(); err != nil {
				return err
			}
			if runErr != nil {
				return errors.Errorf("checking status: %w", runErr)
			}

			outdated := 0
			for i, res := range results {
				if res.UpToDate() {
					continue
				}
				outdated++
				for _, line := range pending.lines[i] {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}

			// Log result
			if outdated > 0 {
				opts.Logger.Warningf("%d of %d target(s) need to be built", outdated, len(results))
				return ErrOutOfDate
			}
			opts.Logger.Success("All targets are up to date")
			return nil
		},
	}

	return cmd
}

// pendingChanges records what each dry run would do, in report order
type pendingChanges struct {
	formatter status.FileFormatter
	lines     [][]string // by build index
}

func newPendingChanges(formatter status.FileFormatter, builds int) *pendingChanges {
	return &pendingChanges{formatter: formatter, lines: make([][]string, builds)}
}

// wrap records the changes of build i before passing events on to next.
// A build reports from a single goroutine, so each slot has one writer.
func (p *pendingChanges) wrap(i int, next status.Reporter) status.Reporter {
	return status.ReporterFunc(func(ctx context.Context, ev status.Event) {
		status.Notify(ctx, next, ev)
		if ev.Action == status.ActionUnchanged {
			return
		}
		p.lines[i] = append(p.lines[i], p.formatter.FormatEvent(ev))
	})
}
