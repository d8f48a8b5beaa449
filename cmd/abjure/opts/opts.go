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

package opts

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/abjure/pkg/config"
	"github.com/walteh/abjure/pkg/log"
	"github.com/walteh/abjure/pkg/operation"
	"github.com/walteh/abjure/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
	Verbose    bool
	Skip       bool
	DryRun     bool
	Parallel   bool
	Extensions []string
	Exclude    []string

	Logger *log.Logger
}

// Builds turns the positional arguments, or the config file when there are
// none, into build options. Flags override what the config file says. The
// second return value tells whether the builds may run in parallel.
func (o *RootOpts) Builds(ctx context.Context, args []string) ([]operation.Options, bool, error) {
	var cfg *config.Config

	switch len(args) {
	case 2:
		cfg = &config.Config{Builds: []config.Build{{Source: args[0], Target: args[1]}}}
	case 0:
		loaded, err := config.Load(ctx, o.ConfigFile)
		if err != nil {
			return nil, false, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
		if o.Logger != nil {
			n := len(cfg.Builds)
			o.Logger.Infof("Loaded %d build%s from %s", n, status.Pluralize(n, "", "s"), cfg.Location())
		}
	default:
		return nil, false, errors.Errorf("expected a source and a target, got %d argument(s)", len(args))
	}

	for i := range cfg.Builds {
		b := &cfg.Builds[i]
		if len(o.Extensions) > 0 {
			b.Extensions = append([]string{}, o.Extensions...)
		}
		b.Exclude = append(b.Exclude, o.Exclude...)
		b.DryRun = b.DryRun || o.DryRun
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, errors.Errorf("validating builds: %w", err)
	}

	logger := zerolog.Ctx(ctx)
	builds := make([]operation.Options, 0, len(cfg.Builds))
	for _, b := range cfg.Builds {
		logger.Debug().Stringer("build", b).Strs("extensions", b.Extensions).Strs("exclude", b.Exclude).Msg("configured build")
		builds = append(builds, operation.Options{
			Name:       b.Name,
			Source:     b.Source,
			Target:     b.Target,
			Extensions: b.Extensions,
			Exclude:    b.Exclude,
			DryRun:     b.DryRun,
			Reporter:   o.reporter(),
		})
	}

	return builds, cfg.Parallel || o.Parallel, nil
}

// reporter keeps a missing logger from turning into a non-nil interface
func (o *RootOpts) reporter() status.Reporter {
	if o.Logger == nil {
		return nil
	}
	return o.Logger
}
