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
	"znkr.io/htmldiff/internal/decode"
	"znkr.io/htmldiff/internal/seqmatch"
)

// DecodeError is returned by [DiffBytes] if an input isn't valid text in its encoding.
type DecodeError = decode.Error

// AlignmentError is returned if the alignment of two documents violates its invariants. This
// indicates a bug in this package.
type AlignmentError = seqmatch.AlignmentError
