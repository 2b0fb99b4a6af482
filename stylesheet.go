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

package htmldiff

import (
	"regexp"
	"strings"

	"znkr.io/htmldiff/internal/byteview"
)

var headRE = regexp.MustCompile(`(?i)<\s*head(\s[^>]*)?>`)

const (
	styleOpen  = "\n<style type=\"text/css\">\n"
	styleClose = "</style>"
)

// DefaultStylesheet returns the stylesheet that is injected by [Diff] for the given class
// prefix: a green background for inserted text and a red, struck-through background for deleted
// text.
func DefaultStylesheet(prefix string) string {
	var sb strings.Builder
	sb.WriteString("." + prefix + "-insert {\n\tbackground-color: #AFA\n}\n")
	sb.WriteString("." + prefix + "-delete {\n\tbackground-color: #F88;\n\ttext-decoration: line-through;\n}\n")
	return sb.String()
}

// InjectStylesheet inserts a <style> element with css into html. The element is inserted right
// after the <head> tag or at the start of html if there is no <head> tag.
func InjectStylesheet(html, css string) string {
	return injectStylesheet[string](html, css)
}

func injectStylesheet[T string | []byte](html, css string) T {
	pos := 0
	if loc := headRE.FindStringIndex(html); loc != nil {
		pos = loc[1]
	}
	var b byteview.Builder[T]
	b.Grow(len(html) + len(styleOpen) + len(css) + len(styleClose))
	b.WriteString(html[:pos])
	b.WriteString(styleOpen)
	b.WriteString(css)
	b.WriteString(styleClose)
	b.WriteString(html[pos:])
	return b.Build()
}
