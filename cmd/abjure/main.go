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

package main

import (
	"context"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/abjure/pkg/log"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes the command line and reports a failure on errOut
func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	rootCmd := newRootCmd(out, errOut)
	rootCmd.SetArgs(args)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		reportFailure(cmd.Context(), errOut, err)
		return err
	}
	return nil
}

// reportFailure goes through the console logger once a command has set one
// up. Argument and flag errors happen before that and fall back to pterm.
func reportFailure(ctx context.Context, errOut io.Writer, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	zerolog.Ctx(ctx).Debug().Err(err).Msg("command failed")

	if logger := log.FromContext(ctx); logger != nil {
		logger.Error(err.Error())
		return
	}
	pterm.Error.WithWriter(errOut).Println(err.Error())
}
