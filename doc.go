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

// Package htmldiff computes visual diffs of HTML documents.
//
// Both documents are split into tags and words, the two token sequences are aligned, and the
// result is rendered as the new document with deleted and inserted text wrapped in
// <span class="htmldiff-delete"> and <span class="htmldiff-insert"> elements. A stylesheet for
// these classes is injected into the document head.
//
// Changes that aren't visible are not flagged: if a replaced region differs only in tag
// attributes or in the form of whitespace, the new version is rendered without any markup.
//
// The alignment finds the longest common run of tokens and recurses into the regions before and
// after it. This doesn't produce minimal diffs, but it produces diffs that look natural to
// people. Worst case complexity is O(N·M) for inputs of N and M tokens, but documents that share
// most of their structure are much faster than that. Use [Fast] to speed up large documents at
// some cost of diff quality.
//
// HTML comments are not handled specially, use [StripComments] to remove them before diffing.
package htmldiff
