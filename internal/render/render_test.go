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

package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/htmldiff/internal/config"
	"znkr.io/htmldiff/internal/seqmatch"
	"znkr.io/htmldiff/internal/token"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		cfg  func(*config.Config)
		want string
	}{
		{
			name: "identical",
			x:    "<p>Hello world</p>",
			y:    "<p>Hello world</p>",
			want: "<p>Hello world</p>",
		},
		{
			name: "insert-word",
			x:    "<p>Hello world</p>",
			y:    "<p>Hello there world</p>",
			want: `<p>Hello <span class="htmldiff-insert">there </span>world</p>`,
		},
		{
			name: "tag-attribute-change",
			x:    `<div class="a">X</div>`,
			y:    `<div class="b">X</div>`,
			want: `<div class="b">X</div>`,
		},
		{
			name: "whitespace-change",
			x:    "one  two",
			y:    "one\ttwo",
			want: "one\ttwo",
		},
		{
			name: "x-empty",
			x:    "",
			y:    "<p>new</p>",
			want: `<p><span class="htmldiff-insert">new</span></p>`,
		},
		{
			name: "y-empty",
			x:    "<p>old</p>",
			y:    "",
			want: `<p><span class="htmldiff-delete">old</span></p>`,
		},
		{
			name: "replace-word",
			x:    "<p>Foo Bar</p>",
			y:    "<p>Baz Bar</p>",
			want: `<p><span class="htmldiff-delete">Foo</span><span class="htmldiff-insert">Baz</span> Bar</p>`,
		},
		{
			name: "delete-paragraph",
			x:    "<p>a</p><p>b</p>",
			y:    "<p>a</p>",
			want: `<p>a</p><p><span class="htmldiff-delete">b</span></p>`,
		},
		{
			name: "delete-paragraph-drop-tags",
			x:    "<p>a</p><p>b</p>",
			y:    "<p>a</p>",
			cfg:  func(cfg *config.Config) { cfg.DropDeletedTags = true },
			want: `<p>a</p><span class="htmldiff-delete">b</span>`,
		},
		{
			name: "insert-whitespace-only",
			x:    "a",
			y:    "a \n",
			want: "a \n",
		},
		{
			name: "class-prefix",
			x:    "<p>Hello world</p>",
			y:    "<p>Hello there world</p>",
			cfg:  func(cfg *config.Config) { cfg.ClassPrefix = "x" },
			want: `<p>Hello <span class="x-insert">there </span>world</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			a, b := token.Tokenize(tt.x), token.Tokenize(tt.y)
			ops := seqmatch.Opcodes(a, b, nil)

			got := Render[string](a, b, ops, cfg)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render(...) result is different (-want, +got):\n%s", diff)
			}
			if gotBytes := Render[[]byte](a, b, ops, cfg); string(gotBytes) != got {
				t.Errorf("Render[[]byte](...) = %q, want %q", gotBytes, got)
			}
		})
	}
}

func TestInvisibleChange(t *testing.T) {
	tests := []struct {
		name string
		x, y []token.Token
		want bool
	}{
		{
			name: "empty",
			want: true,
		},
		{
			name: "different-tags",
			x:    []token.Token{{Kind: token.Tag, Text: "<b>"}},
			y:    []token.Token{{Kind: token.Tag, Text: "<i class=\"x\">"}},
			want: true,
		},
		{
			name: "different-whitespace",
			x:    []token.Token{{Kind: token.Word, Text: "a"}, {Kind: token.Space, Text: "  "}},
			y:    []token.Token{{Kind: token.Word, Text: "a"}, {Kind: token.Space, Text: "&nbsp;"}},
			want: true,
		},
		{
			name: "different-words",
			x:    []token.Token{{Kind: token.Word, Text: "a"}},
			y:    []token.Token{{Kind: token.Word, Text: "b"}},
			want: false,
		},
		{
			name: "tag-and-word",
			x:    []token.Token{{Kind: token.Tag, Text: "<br>"}},
			y:    []token.Token{{Kind: token.Word, Text: "br"}},
			want: false,
		},
		{
			name: "different-length",
			x:    []token.Token{{Kind: token.Tag, Text: "<br>"}},
			y:    []token.Token{{Kind: token.Tag, Text: "<br>"}, {Kind: token.Tag, Text: "<br>"}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InvisibleChange(tt.x, tt.y); got != tt.want {
				t.Errorf("InvisibleChange(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
