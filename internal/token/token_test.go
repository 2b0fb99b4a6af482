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

package token

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Token
	}{
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "paragraph",
			in:   "<p>Hello world</p>",
			want: []Token{
				{Tag, "<p>"},
				{Word, "Hello"},
				{Space, " "},
				{Word, "world"},
				{Tag, "</p>"},
			},
		},
		{
			name: "adjacent-tags",
			in:   "<div><b>x</b></div>",
			want: []Token{
				{Tag, "<div>"},
				{Tag, "<b>"},
				{Word, "x"},
				{Tag, "</b>"},
				{Tag, "</div>"},
			},
		},
		{
			name: "multiline-tag",
			in:   "<a\n  href=\"x\">link</a>",
			want: []Token{
				{Tag, "<a\n  href=\"x\">"},
				{Word, "link"},
				{Tag, "</a>"},
			},
		},
		{
			name: "script-is-opaque",
			in:   `a<script type="x">if (a < b) { s = "<p>"; }</script>b`,
			want: []Token{
				{Word, "a"},
				{Tag, `<script type="x">if (a < b) { s = "<p>"; }</script>`},
				{Word, "b"},
			},
		},
		{
			name: "unclosed-script",
			in:   "<script>no close",
			want: []Token{
				{Tag, "<script>"},
				{Word, "no"},
				{Space, " "},
				{Word, "close"},
			},
		},
		{
			name: "unterminated-tag",
			in:   "x <b",
			want: []Token{
				{Word, "x"},
				{Space, " "},
				{Word, "<b"},
			},
		},
		{
			name: "empty-tag",
			in:   "<>",
			want: []Token{
				{Tag, "<>"},
			},
		},
		{
			name: "nbsp",
			in:   "a&nbsp; \tb",
			want: []Token{
				{Word, "a"},
				{Space, "&nbsp; \t"},
				{Word, "b"},
			},
		},
		{
			name: "entity",
			in:   "&amp;",
			want: []Token{
				{Punct, "&"},
				{Word, "amp"},
				{Punct, ";"},
			},
		},
		{
			name: "unicode-punctuation",
			in:   "Hi, “you”—ok.",
			want: []Token{
				{Word, "Hi"},
				{Punct, ","},
				{Space, " "},
				{Punct, "“"},
				{Word, "you"},
				{Punct, "”"},
				{Word, "—ok"},
				{Punct, "."},
			},
		},
		{
			name: "punctuation-runs",
			in:   "a--b=(c)",
			want: []Token{
				{Word, "a"},
				{Punct, "-"},
				{Punct, "-"},
				{Word, "b"},
				{Punct, "="},
				{Punct, "("},
				{Word, "c"},
				{Punct, ")"},
			},
		},
		{
			name: "crlf",
			in:   "<br>\r\n",
			want: []Token{
				{Tag, "<br>"},
				{Space, "\r\n"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) result is different (-want, +got):\n%s", tt.in, diff)
			}
			if text := Text(got); text != tt.in {
				t.Errorf("Text(Tokenize(%q)) = %q, want input", tt.in, text)
			}
		})
	}
}

func TestIsJunk(t *testing.T) {
	tests := []struct {
		tok  Token
		want bool
	}{
		{Token{Space, " "}, true},
		{Token{Space, "&nbsp;"}, true},
		{Token{Word, "the"}, true},
		{Token{Word, "The"}, true},
		{Token{Word, "AND"}, true},
		{Token{Word, "theme"}, false},
		{Token{Punct, ","}, false},
		{Token{Tag, "<p>"}, false},
	}
	for _, tt := range tests {
		if got := IsJunk(tt.tok); got != tt.want {
			t.Errorf("IsJunk(%v) = %v, want %v", tt.tok, got, tt.want)
		}
	}
}

func TestIsWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{" ", true},
		{"\t\r\n", true},
		{"&nbsp;&nbsp;", true},
		{" &nbsp ", false},
		{"x", false},
	}
	for _, tt := range tests {
		if got := IsWhitespace(tt.in); got != tt.want {
			t.Errorf("IsWhitespace(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func FuzzTokenize(f *testing.F) {
	f.Add("<p>Hello world</p>")
	f.Add("<script>x<y</script>&nbsp;z")
	f.Add("a <b")
	f.Add("«quoted» text‹›")
	f.Fuzz(func(t *testing.T, in string) {
		tokens := Tokenize(in)
		if got := Text(tokens); got != in {
			t.Fatalf("tokens don't reproduce input: got %q, want %q", got, in)
		}
		for i, tok := range tokens {
			if tok.Text == "" {
				t.Fatalf("token %d is empty", i)
			}
			if i > 0 && tok.Kind == Space && tokens[i-1].Kind == Space {
				t.Fatalf("adjacent whitespace tokens at %d: %q %q", i, tokens[i-1].Text, tok.Text)
			}
		}
	})
}
