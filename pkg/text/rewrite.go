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

import (
	"context"
	"io"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📄 RewriteResult is the output of a marker rewrite
type RewriteResult struct {
	Content string // Rewritten content
	Changed bool   // Whether any marker rule fired
	Edits   int    // Number of rule applications
}

// ✂️ Rewriter toggles comment markers in dual-purpose source files
type Rewriter struct{}

// NewRewriter creates a new Rewriter
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// Rewrite reads all of content and rewrites it. The only possible error comes
// from reading.
func (r *Rewriter) Rewrite(ctx context.Context, content io.Reader) (*RewriteResult, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := RewriteString(string(data))

	zerolog.Ctx(ctx).Trace().
		Bool("changed", result.Changed).
		Int("edits", result.Edits).
		Msg("rewrote markers")

	return &result, nil
}

// RewriteString runs the marker state machine over every line of content.
// Lines are split and rejoined on "\n" so the original separators survive.
func RewriteString(content string) RewriteResult {
	lines := strings.Split(content, "\n")

	var s scan
	for i, line := range lines {
		lines[i] = s.line(line)
	}

	return RewriteResult{
		Content: strings.Join(lines, "\n"),
		Changed: s.edits > 0,
		Edits:   s.edits,
	}
}

// scan holds the per-file multi-line state
type scan struct {
	inserting bool
	removing  bool
	edits     int
}

func (s *scan) line(line string) string {
	sentence := strings.TrimLeftFunc(line, isLeadingSpace)
	indent := line[:len(line)-len(sentence)]

	// ending first, so the end marker line itself is never toggled
	if strings.HasPrefix(sentence, MultilineEnd) {
		s.inserting = false
		s.removing = false
	}

	if s.inserting {
		s.edits++
		sentence = uncomment(sentence)
	}
	if s.removing {
		s.edits++
		sentence = comment(sentence)
	}

	// takes effect from the next line
	if strings.HasPrefix(sentence, MultilineInsert) {
		s.inserting = true
	}
	if strings.HasPrefix(sentence, MultilineRemove) {
		s.removing = true
	}

	if strings.HasPrefix(sentence, LineInsert) {
		s.edits++
		sentence = uncomment(sentence)
	}
	if strings.HasPrefix(sentence, LineRemove) {
		s.edits++
		sentence = comment(sentence)
	}

	sentence = s.inline(sentence, InlineInsert, func(seg string) string {
		return strings.TrimPrefix(seg, BlockOpener)
	})
	sentence = s.inline(sentence, InlineRemove, func(seg string) string {
		return BlockOpener + seg
	})

	return indent + sentence
}

// inline applies fn to every region that sits between start and the nearest
// following InlineEnd. The end token is left in the remainder so that a start
// token sharing its closing slash is still found.
func (s *scan) inline(sentence, start string, fn func(string) string) string {
	if !strings.Contains(sentence, start) {
		return sentence
	}

	var b strings.Builder
	rest := sentence
	for {
		i := strings.Index(rest, start)
		if i < 0 {
			break
		}
		open := i + len(start)
		j := strings.Index(rest[open:], InlineEnd)
		if j < 0 {
			break
		}

		s.edits++
		b.WriteString(rest[:open])
		b.WriteString(fn(rest[open : open+j]))
		rest = rest[open+j:]
	}
	b.WriteString(rest)

	return b.String()
}

func uncomment(sentence string) string {
	return strings.Replace(sentence, CommentPrefix, "", 1)
}

func comment(sentence string) string {
	return CommentPrefix + sentence
}

// byte order marks count as leading whitespace too
func isLeadingSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
