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
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/abjure/cmd/abjure/commands"
	"github.com/walteh/abjure/cmd/abjure/opts"
	"github.com/walteh/abjure/pkg/config"
	"github.com/walteh/abjure/pkg/log"
)

// newRootCmd builds the command tree. Console output goes to out, structured
// logs to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "abjure",
		Short: "A build-time preprocessor for comment markers",
		Long: `abjure mirrors a source tree into a target tree. Files with a
processable extension have their marked comment regions toggled on the way,
so one source file can carry a development and a production variant.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zlog := setupLogging(errOut, rootOpts.Debug)

			rootOpts.Logger = log.New(out, zlog.GetLevel()).WithZerolog(zlog).WithErrorWriter(errOut)
			rootOpts.Logger.SetVerbose(rootOpts.Verbose)
			cmd.SetContext(log.NewContext(zlog.WithContext(cmd.Context()), rootOpts.Logger))

			if !rootOpts.Skip && cmd.Name() != "version" {
				greeting(out)
			}
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Add shared flags
	addRootFlags(rootCmd, rootOpts)

	// Add commands
	rootCmd.AddCommand(
		commands.NewBuildCmd(rootOpts),
		commands.NewStatusCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", config.DefaultFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "log", "l", false, "print a line for every file")
	cmd.PersistentFlags().BoolVarP(&o.Skip, "skip", "s", false, "skip greeting message")
	cmd.PersistentFlags().BoolVar(&o.DryRun, "dry-run", false, "report what would change without touching the target")
	cmd.PersistentFlags().BoolVar(&o.Parallel, "parallel", false, "run builds from the config file concurrently")
	cmd.PersistentFlags().StringSliceVar(&o.Extensions, "ext", nil, "processable file extension, repeatable (default .js)")
	cmd.PersistentFlags().StringArrayVar(&o.Exclude, "exclude", nil, "doublestar pattern of paths to leave out, repeatable")
}

// setupLogging configures zerolog based on flags
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
