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
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 35 // Base width for filename
	actionWidth  = 10 // Width for the action column
	reasonWidth  = 15 // Width for the reason column
	folderSuffix = "/"
)

// FileFormatter defines how build events should be formatted
type FileFormatter interface {
	// FormatEvent formats a one line description of an event
	FormatEvent(ev Event) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatEvent formats an event with emojis
func (f *DefaultFileFormatter) FormatEvent(ev Event) string {
	path := displayPath(ev)
	switch ev.Action {
	case ActionRewritten:
		return fmt.Sprintf("✂️  Edited %s", path)
	case ActionCopied:
		return fmt.Sprintf("📄 Copied %s", path)
	case ActionDeleted:
		return fmt.Sprintf("🗑️  Deleted %s", path)
	case ActionCreated:
		return fmt.Sprintf("✨ Created %s", path)
	case ActionUnchanged:
		return fmt.Sprintf("👍 Unchanged %s", path)
	default:
		return fmt.Sprintf("❓ Unknown %s", path)
	}
}

// 🎯 FormatLine formats an event as an aligned, colored console line
func FormatLine(ev Event) string {
	var prefix string
	switch ev.Action {
	case ActionRewritten:
		prefix = color.YellowString("✂")
	case ActionCopied:
		prefix = color.GreenString("✓")
	case ActionCreated:
		prefix = color.CyanString("+")
	case ActionDeleted:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, displayPath(ev))
	actionPart := fmt.Sprintf("%-*s", actionWidth, ev.Action.String())
	reasonPart := fmt.Sprintf("%-*s", reasonWidth, ev.Reason)

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		actionPart,
		reasonPart,
	)
}

func displayPath(ev Event) string {
	if ev.IsDir {
		return ev.Path + folderSuffix
	}
	return ev.Path
}
