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

package seqmatch

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func chars(s string) []string { return strings.Split(s, "") }

func isSpace(s string) bool { return s == " " }

func TestMatchingBlocks(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		isJunk func(string) bool
		want   []Match
	}{
		{
			name: "empty",
			a:    "",
			b:    "",
			want: []Match{{0, 0, 0}},
		},
		{
			name: "a-empty",
			a:    "",
			b:    "abc",
			want: []Match{{0, 3, 0}},
		},
		{
			name: "nothing-in-common",
			a:    "abc",
			b:    "xyz",
			want: []Match{{3, 3, 0}},
		},
		{
			name: "deletion",
			a:    "abxcd",
			b:    "abcd",
			want: []Match{{0, 0, 2}, {3, 2, 2}, {5, 4, 0}},
		},
		{
			name: "earliest-in-a-wins",
			a:    "ab",
			b:    "ba",
			want: []Match{{0, 1, 1}, {2, 2, 0}},
		},
		{
			name: "identical",
			a:    "abcabba",
			b:    "abcabba",
			want: []Match{{0, 0, 7}, {7, 7, 0}},
		},
		{
			name:   "identical-with-junk",
			a:      "x y z",
			b:      "x y z",
			isJunk: isSpace,
			want:   []Match{{0, 0, 5}, {5, 5, 0}},
		},
		{
			name:   "junk-does-not-anchor",
			a:      " abcd",
			b:      "abcd abcd",
			isJunk: isSpace,
			want:   []Match{{1, 0, 4}, {5, 9, 0}},
		},
		{
			name: "without-junk",
			a:    " abcd",
			b:    "abcd abcd",
			want: []Match{{0, 4, 5}, {5, 9, 0}},
		},
		{
			name:   "junk-extends-empty-match",
			a:      "  ",
			b:      " x ",
			isJunk: isSpace,
			want:   []Match{{0, 0, 1}, {2, 3, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchingBlocks(chars(tt.a), chars(tt.b), tt.isJunk)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MatchingBlocks(%q, %q) result is different (-want, +got):\n%s", tt.a, tt.b, diff)
			}
		})
	}
}

func TestOpcodes(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want []Opcode
	}{
		{
			name: "empty",
			a:    "",
			b:    "",
			want: nil,
		},
		{
			name: "a-empty",
			a:    "",
			b:    "abc",
			want: []Opcode{{Insert, 0, 0, 0, 3}},
		},
		{
			name: "b-empty",
			a:    "abc",
			b:    "",
			want: []Opcode{{Delete, 0, 3, 0, 0}},
		},
		{
			name: "nothing-in-common",
			a:    "abc",
			b:    "xy",
			want: []Opcode{{Replace, 0, 3, 0, 2}},
		},
		{
			name: "identical",
			a:    "abc",
			b:    "abc",
			want: []Opcode{{Equal, 0, 3, 0, 3}},
		},
		{
			name: "all-kinds",
			a:    "qabxcd",
			b:    "abycdf",
			want: []Opcode{
				{Delete, 0, 1, 0, 0},
				{Equal, 1, 3, 0, 2},
				{Replace, 3, 4, 2, 3},
				{Equal, 4, 6, 3, 5},
				{Insert, 6, 6, 5, 6},
			},
		},
		{
			name: "earliest-in-a-wins",
			a:    "ab",
			b:    "ba",
			want: []Opcode{
				{Insert, 0, 0, 0, 1},
				{Equal, 0, 1, 1, 2},
				{Delete, 1, 2, 2, 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := chars(tt.a), chars(tt.b)
			got := Opcodes(a, b, nil)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Opcodes(%q, %q) result is different (-want, +got):\n%s", tt.a, tt.b, diff)
			}
			if err := Validate(a, b, got); err != nil {
				t.Errorf("Validate(...) = %v, want nil", err)
			}
		})
	}
}

func TestOpcodesSymmetry(t *testing.T) {
	mirror := func(ops []Opcode) []Opcode {
		out := make([]Opcode, len(ops))
		for i, op := range ops {
			switch op.Op {
			case Delete:
				op.Op = Insert
			case Insert:
				op.Op = Delete
			}
			out[i] = Opcode{op.Op, op.J1, op.J2, op.I1, op.I2}
		}
		return out
	}

	for _, in := range [][2]string{
		{"qabxcd", "abycdf"},
		{"abxcd", "abcd"},
		{"the quick fox", "a quick brown fox"},
	} {
		a, b := strings.Fields(in[0]), strings.Fields(in[1])
		if len(a) == 1 {
			a, b = chars(in[0]), chars(in[1])
		}
		forward := Opcodes(a, b, nil)
		backward := Opcodes(b, a, nil)
		if diff := cmp.Diff(mirror(forward), backward); diff != "" {
			t.Errorf("Opcodes(%q, %q) is not the mirror of the reverse (-want, +got):\n%s", in[0], in[1], diff)
		}
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abcd", "abcd", 1},
		{"abcd", "wxyz", 0},
		{"abcd", "bcde", 0.75},
	}
	for _, tt := range tests {
		blocks := MatchingBlocks(chars(tt.a), chars(tt.b), nil)
		if got := Ratio(blocks, len(tt.a), len(tt.b)); got != tt.want {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	a, b := chars("qabxcd"), chars("abycdf")
	valid := Opcodes(a, b, nil)

	tests := []struct {
		name      string
		ops       []Opcode
		wantIndex int
	}{
		{
			name:      "gap",
			ops:       []Opcode{{Delete, 0, 1, 0, 0}, {Equal, 2, 3, 1, 2}},
			wantIndex: 1,
		},
		{
			name:      "unequal-equal",
			ops:       []Opcode{{Equal, 0, 1, 0, 1}},
			wantIndex: 0,
		},
		{
			name:      "equal-length-mismatch",
			ops:       []Opcode{{Delete, 0, 1, 0, 0}, {Equal, 1, 3, 0, 1}},
			wantIndex: 1,
		},
		{
			name:      "delete-with-b-range",
			ops:       []Opcode{{Delete, 0, 1, 0, 1}},
			wantIndex: 0,
		},
		{
			name:      "empty-insert",
			ops:       []Opcode{{Insert, 0, 0, 0, 0}},
			wantIndex: 0,
		},
		{
			name:      "replace-of-equal-ranges",
			ops:       []Opcode{{Delete, 0, 1, 0, 0}, {Replace, 1, 3, 0, 2}},
			wantIndex: 1,
		},
		{
			name:      "out-of-bounds",
			ops:       []Opcode{{Replace, 0, 7, 0, 6}},
			wantIndex: 0,
		},
		{
			name:      "unknown-op",
			ops:       []Opcode{{Op(42), 0, 1, 0, 0}},
			wantIndex: 0,
		},
		{
			name:      "truncated",
			ops:       valid[:len(valid)-1],
			wantIndex: len(valid) - 1,
		},
		{
			name:      "nil",
			ops:       nil,
			wantIndex: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(a, b, tt.ops)
			var aerr *AlignmentError
			if !errors.As(err, &aerr) {
				t.Fatalf("Validate(...) = %v, want *AlignmentError", err)
			}
			if aerr.Index != tt.wantIndex {
				t.Errorf("Validate(...) reported opcode %d, want %d: %v", aerr.Index, tt.wantIndex, err)
			}
		})
	}
}

func FuzzOpcodes(f *testing.F) {
	f.Add([]byte("qabxcd"), []byte("abycdf"), false)
	f.Add([]byte(" abcd"), []byte("abcd abcd"), true)
	f.Add([]byte(""), []byte("x"), true)
	f.Fuzz(func(t *testing.T, x, y []byte, junk bool) {
		var isJunk func(byte) bool
		if junk {
			isJunk = func(c byte) bool { return c == ' ' || c == 'e' }
		}

		ops := Opcodes(x, y, isJunk)
		if err := Validate(x, y, ops); err != nil {
			t.Fatalf("Opcodes(%q, %q) produced an invalid alignment: %v", x, y, err)
		}

		var gotX, gotY []byte
		for _, op := range ops {
			gotX = append(gotX, x[op.I1:op.I2]...)
			gotY = append(gotY, y[op.J1:op.J2]...)
		}
		if string(gotX) != string(x) || string(gotY) != string(y) {
			t.Fatalf("opcodes don't cover the inputs: got %q, %q", gotX, gotY)
		}

		ident := Opcodes(x, x, isJunk)
		if len(x) > 0 {
			want := []Opcode{{Equal, 0, len(x), 0, len(x)}}
			if diff := cmp.Diff(want, ident); diff != "" {
				t.Fatalf("Opcodes(%q, %q) is not a single match (-want, +got):\n%s", x, x, diff)
			}
		} else if len(ident) != 0 {
			t.Fatalf("Opcodes of empty inputs = %v, want none", ident)
		}
	})
}
