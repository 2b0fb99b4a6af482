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

import "strings"

const (
	commentOpen  = "<!--"
	commentClose = "-->"
)

// StripComments removes all HTML comments from s. An unterminated comment is left in place.
func StripComments(s string) string {
	i := strings.Index(s, commentOpen)
	if i < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i >= 0 {
		end := strings.Index(s[i+len(commentOpen):], commentClose)
		if end < 0 {
			break
		}
		sb.WriteString(s[:i])
		s = s[i+len(commentOpen)+end+len(commentClose):]
		i = strings.Index(s, commentOpen)
	}
	sb.WriteString(s)
	return sb.String()
}
