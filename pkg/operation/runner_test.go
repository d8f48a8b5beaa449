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

package operation_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/abjure/pkg/operation"
	"github.com/walteh/abjure/pkg/status"
)

func runnerBuilds(t *testing.T) []operation.Options {
	t.Helper()
	dir := t.TempDir()

	var builds []operation.Options
	for _, name := range []string{"web", "worker", "docs"} {
		src := filepath.Join(dir, "src", name)
		writeTree(t, src, map[string]string{
			"index.js":  insertSource,
			"readme.md": name,
		})
		builds = append(builds, operation.Options{
			Name:   name,
			Source: src,
			Target: filepath.Join(dir, "dist", name),
		})
	}
	return builds
}

func TestRunner(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		t.Run(name, func(t *testing.T) {
			builds := runnerBuilds(t)

			var mu sync.Mutex
			var started, finished []string
			runner := operation.NewRunner(parallel)
			runner.Before = func(ctx context.Context, i int, opts operation.Options) {
				mu.Lock()
				defer mu.Unlock()
				assert.Equal(t, builds[i].Name, opts.Name, "index matches the build")
				started = append(started, opts.Name)
			}
			runner.After = func(ctx context.Context, i int, res *operation.Result) {
				mu.Lock()
				defer mu.Unlock()
				assert.Equal(t, builds[i].Name, res.Name, "index matches the result")
				finished = append(finished, res.Name)
			}

			results, err := runner.Run(testContext(t), builds)
			require.NoError(t, err)
			require.Len(t, results, 3)

			for i, res := range results {
				assert.Equal(t, builds[i].Name, res.Name, "results keep build order")
				assert.Equal(t, status.Counts{Rewritten: 1, Copied: 1}, res.Counts)
				assert.Equal(t, insertOutput, readTree(t, builds[i].Target)["index.js"])
			}

			assert.ElementsMatch(t, []string{"web", "worker", "docs"}, started)
			assert.ElementsMatch(t, []string{"web", "worker", "docs"}, finished)
			if !parallel {
				assert.Equal(t, []string{"web", "worker", "docs"}, started)
			}
		})
	}
}

func TestRunner_OverlappingTargets(t *testing.T) {
	builds := runnerBuilds(t)
	builds[2].Target = filepath.Join(builds[0].Target, "nested")

	var ran bool
	runner := operation.NewRunner(true)
	runner.Before = func(ctx context.Context, i int, opts operation.Options) { ran = true }

	_, err := runner.Run(testContext(t), builds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "targets of builds web and docs overlap")
	assert.False(t, ran, "nothing should run when targets overlap")
}

func TestRunner_FailingBuild(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		builds := runnerBuilds(t)
		builds[1].Source = filepath.Join(filepath.Dir(builds[1].Source), "missing")

		_, err := operation.NewRunner(parallel).Run(testContext(t), builds)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "build worker")
		assert.Contains(t, err.Error(), "does not exist")
	}
}

func TestRunner_Cancelled(t *testing.T) {
	builds := runnerBuilds(t)

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	_, err := operation.NewRunner(false).Run(ctx, builds)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
