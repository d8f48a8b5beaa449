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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Status runs the build as a dry run. It returns true when the target is
// out of date, along with what a real build would do.
func Status(ctx context.Context, opts Options) (bool, *Result, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("source", opts.Source).Str("target", opts.Target).Msg("checking status")

	opts.DryRun = true
	res, err := Build(ctx, opts)
	if err != nil {
		return false, nil, errors.Errorf("checking status: %w", err)
	}

	if !res.UpToDate() {
		logger.Debug().
			Int("rewritten", res.Rewritten).
			Int("copied", res.Copied).
			Int("deleted", res.Deleted).
			Int("created", res.Created).
			Msg("target is out of date")
		return true, res, nil
	}

	logger.Debug().Msg("no changes needed")
	return false, res, nil
}
