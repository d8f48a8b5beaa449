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

package status

import (
	"context"
	"fmt"
)

// 📊 Action is what a build did to one target path
type Action int

const (
	ActionUnknown   Action = iota
	ActionRewritten        // Marker rewrite written to target
	ActionCopied           // Plain copy to target
	ActionDeleted          // Removed from target, no source counterpart
	ActionCreated          // Directory created in target
	ActionUnchanged        // Target already up to date
)

// String returns a string representation of Action
func (a Action) String() string {
	switch a {
	case ActionRewritten:
		return "rewritten"
	case ActionCopied:
		return "copied"
	case ActionDeleted:
		return "deleted"
	case ActionCreated:
		return "created"
	case ActionUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// 📄 Event describes a single action on a target path
type Event struct {
	Action Action
	Path   string // Target path
	IsDir  bool
	Reason string // Short human readable cause, e.g. "missing", "newer"
}

// 📈 Reporter receives per-action notifications from a build
type Reporter interface {
	Report(ctx context.Context, ev Event)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(ctx context.Context, ev Event)

func (f ReporterFunc) Report(ctx context.Context, ev Event) {
	f(ctx, ev)
}

// Notify calls r if there is one. Builds work the same with notifications off.
func Notify(ctx context.Context, r Reporter, ev Event) {
	if r == nil {
		return
	}
	r.Report(ctx, ev)
}

// 🧮 Counts are the totals of one build
type Counts struct {
	Rewritten int
	Copied    int
	Deleted   int
}

// Total is the number of target paths touched
func (c Counts) Total() int {
	return c.Rewritten + c.Copied + c.Deleted
}

// Add sums two counts
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Rewritten: c.Rewritten + o.Rewritten,
		Copied:    c.Copied + o.Copied,
		Deleted:   c.Deleted + o.Deleted,
	}
}

// Pluralize returns singular for exactly one and plural otherwise
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// SummaryLines renders counts the way the build prints them
func SummaryLines(c Counts) []string {
	return []string{
		fmt.Sprintf("Edited %d file%s", c.Rewritten, Pluralize(c.Rewritten, "", "s")),
		fmt.Sprintf("Copied %d other file%s", c.Copied, Pluralize(c.Copied, "", "s")),
		fmt.Sprintf("Deleted %d item%s", c.Deleted, Pluralize(c.Deleted, "", "s")),
	}
}
