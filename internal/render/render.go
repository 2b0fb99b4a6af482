// Copyright 2025 Florian Zenker (flo@znkr.io)
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

// Package render turns opcodes over two token sequences into annotated HTML.
package render

import (
	"strings"

	"znkr.io/htmldiff/internal/byteview"
	"znkr.io/htmldiff/internal/config"
	"znkr.io/htmldiff/internal/seqmatch"
	"znkr.io/htmldiff/internal/token"
)

const endSpan = "</span>"

type renderer[T string | []byte] struct {
	b           byteview.Builder[T]
	startInsert string
	startDelete string
	dropTags    bool // drop tags in deleted ranges
}

// Render writes the annotated HTML for ops, which must transform a into b.
//
// Matching ranges are copied from a. Deleted and inserted text is wrapped in spans with the
// classes "<prefix>-delete" and "<prefix>-insert". Tags are never wrapped. A replaced range that
// differs only in tags or in the form of whitespace is rendered as b without any spans.
func Render[T string | []byte](a, b []token.Token, ops []seqmatch.Opcode, cfg config.Config) T {
	r := renderer[T]{
		startInsert: `<span class="` + cfg.ClassPrefix + `-insert">`,
		startDelete: `<span class="` + cfg.ClassPrefix + `-delete">`,
		dropTags:    cfg.DropDeletedTags,
	}
	r.b.Grow(size(a) + size(b)/4)
	for _, op := range ops {
		switch op.Op {
		case seqmatch.Equal:
			r.verbatim(a[op.I1:op.I2])
		case seqmatch.Delete:
			r.wrapped(a[op.I1:op.I2], r.startDelete, r.dropTags)
		case seqmatch.Insert:
			r.wrapped(b[op.J1:op.J2], r.startInsert, false)
		case seqmatch.Replace:
			x, y := a[op.I1:op.I2], b[op.J1:op.J2]
			if InvisibleChange(x, y) {
				r.verbatim(y)
				continue
			}
			r.wrapped(x, r.startDelete, r.dropTags)
			r.wrapped(y, r.startInsert, false)
		default:
			panic("never reached")
		}
	}
	return r.b.Build()
}

func (r *renderer[T]) verbatim(tokens []token.Token) {
	for _, t := range tokens {
		r.b.WriteString(t.Text)
	}
}

// wrapped writes tokens, wrapping every run of text between tags in a span that starts with start.
func (r *renderer[T]) wrapped(tokens []token.Token, start string, dropTags bool) {
	text := 0 // start of the pending text run
	for i, t := range tokens {
		if !t.IsTag() {
			continue
		}
		r.text(tokens[text:i], start)
		if !dropTags {
			r.b.WriteString(t.Text)
		}
		text = i + 1
	}
	r.text(tokens[text:], start)
}

// text writes a run of text tokens. Blank runs are written without a span.
func (r *renderer[T]) text(tokens []token.Token, start string) {
	if len(tokens) == 0 {
		return
	}
	if blank(tokens) {
		r.verbatim(tokens)
		return
	}
	r.b.WriteString(start)
	r.verbatim(tokens)
	r.b.WriteString(endSpan)
}

// blank reports whether the concatenated text of tokens is empty after trimming whitespace.
func blank(tokens []token.Token) bool {
	for _, t := range tokens {
		if strings.TrimSpace(t.Text) != "" {
			return false
		}
	}
	return true
}

// InvisibleChange reports whether replacing x with y makes no visible difference: both have the
// same length and, position by position, either both tokens are tags, both are whitespace, or
// they are identical.
//
// Any two tags are considered equivalent, so that attribute churn doesn't show up in the diff.
func InvisibleChange(x, y []token.Token) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		switch {
		case x[i].IsTag() && y[i].IsTag():
		case token.IsWhitespace(x[i].Text) && token.IsWhitespace(y[i].Text):
		case x[i] == y[i]:
		default:
			return false
		}
	}
	return true
}

func size(tokens []token.Token) int {
	n := 0
	for _, t := range tokens {
		n += len(t.Text)
	}
	return n
}
