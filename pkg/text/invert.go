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

package text

import "strings"

// longest tokens first; the replacer tries pairs in argument order
var inverter = strings.NewReplacer(
	MultilineInsert, MultilineRemove,
	MultilineRemove, MultilineInsert,
	lineInsertToken, LineRemove,
	LineRemove, lineInsertToken,
	InlineInsert, InlineRemove,
	InlineRemove, InlineInsert,
)

// 🔁 Invert swaps every insert marker with its remove counterpart.
//
// Rewriting is one-directional per token, so Invert is how a rewritten file
// is turned back into a source: rewrite, invert, rewrite, invert restores
// the original text of well-formed regions.
func Invert(content string) string {
	return inverter.Replace(content)
}
