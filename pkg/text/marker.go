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

// 🏷️ Marker tokens. These are matched literally and are not configurable.
const (
	InlineInsert = `/*+*/`
	InlineRemove = `/*-*/`
	InlineEnd    = `/*.*/`

	LineInsert = `// /*++*/`
	LineRemove = `/*--*/`

	MultilineInsert = `/*+++*/`
	MultilineRemove = `/*---*/`
	MultilineEnd    = `/*...*/`

	// CommentPrefix is what gets added or stripped to toggle a line.
	CommentPrefix = `// `

	// BlockOpener is what gets added or stripped to toggle an inline region.
	BlockOpener = ` /*`
)

// lineInsertToken is the single-line insert marker once its comment prefix is gone.
const lineInsertToken = `/*++*/`
