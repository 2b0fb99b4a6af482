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

// Package token splits HTML documents into the tokens that are compared by the matcher.
//
// A document is a sequence of tags and text runs. Tags (including whole <script> blocks) are
// opaque tokens. Text runs are split further into whitespace, words and punctuation so that a diff
// has word granularity.
package token

import (
	"strings"
	"unicode/utf8"
)

// Kind describes what a token represents.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind
type Kind uint8

const (
	Tag   Kind = iota // A markup tag or a complete <script> element
	Space             // A run of whitespace, including &nbsp; entities
	Word              // A run of word characters
	Punct             // A single punctuation character
)

// Token is a single unit of a tokenized document.
//
// Two tokens are equal if and only if their texts are equal: a text token can only start with
// '<' if there's no '>' after it in the document, while every tag ends with '>'.
type Token struct {
	Kind Kind
	Text string
}

// IsTag reports whether t is a tag token.
func (t Token) IsTag() bool { return t.Kind == Tag }

// IsSpace reports whether t is a whitespace token.
func (t Token) IsSpace() bool { return t.Kind == Space }

const (
	scriptOpen  = "<script"
	scriptClose = "</script>"
	nbsp        = "&nbsp;"
)

// Tokenize splits s into tags and text tokens.
//
// Concatenating the text of all tokens reproduces s.
func Tokenize(s string) []Token {
	var out []Token
	for pos := 0; pos < len(s); {
		start, end, ok := nextTag(s, pos)
		if !ok {
			out = appendWords(out, s[pos:])
			break
		}
		out = appendWords(out, s[pos:start])
		out = append(out, Token{Tag, s[start:end]})
		pos = end
	}
	return out
}

// nextTag finds the next tag in s at or after pos and returns its bounds. It returns false if
// there are no more tags.
func nextTag(s string, pos int) (start, end int, ok bool) {
	i := strings.IndexByte(s[pos:], '<')
	if i < 0 {
		return 0, 0, false
	}
	start = pos + i
	gt := strings.IndexByte(s[start:], '>')
	if gt < 0 {
		// Without a '>' after this '<', no later '<' can start a tag either.
		return 0, 0, false
	}
	end = start + gt + 1
	if strings.HasPrefix(s[start:], scriptOpen) {
		if c := strings.Index(s[end:], scriptClose); c >= 0 {
			end += c + len(scriptClose)
		}
	}
	return start, end, true
}

// Words splits a text run into whitespace, word and punctuation tokens.
func Words(s string) []Token {
	return appendWords(nil, s)
}

func appendWords(out []Token, s string) []Token {
	for i := 0; i < len(s); {
		if n := spaceLen(s[i:]); n > 0 {
			out = append(out, Token{Space, s[i : i+n]})
			i += n
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if isPunct(r) {
			out = append(out, Token{Punct, s[i : i+size]})
			i += size
			continue
		}
		j := i + size
		for j < len(s) && !startsBoundary(s[j:]) {
			_, size := utf8.DecodeRuneInString(s[j:])
			j += size
		}
		out = append(out, Token{Word, s[i:j]})
		i = j
	}
	return out
}

// spaceLen returns the length of the whitespace run at the start of s.
func spaceLen(s string) int {
	n := 0
	for n < len(s) {
		switch {
		case isSpaceByte(s[n]):
			n++
		case strings.HasPrefix(s[n:], nbsp):
			n += len(nbsp)
		default:
			return n
		}
	}
	return n
}

// startsBoundary reports whether a word ends right before s.
func startsBoundary(s string) bool {
	if isSpaceByte(s[0]) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s)
	return isPunct(r)
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isPunct(r rune) bool {
	switch r {
	case ',', '.', '&', ';', ':', '!', '?', '"', '\'', '“', '”', '‘', '’', '«', '»', '‹', '›',
		'/', '#', '=', '(', ')', '-':
		return true
	}
	return false
}

// IsWhitespace reports whether s consists only of whitespace characters and &nbsp; entities.
// The empty string is not whitespace.
func IsWhitespace(s string) bool {
	return s != "" && spaceLen(s) == len(s)
}

// Text concatenates the text of tokens.
func Text(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}
