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

// Package seqmatch finds matching blocks between two sequences and turns them into opcodes.
//
// The algorithm is the one popularized by Ratcliff and Obershelp: find the longest contiguous
// matching block, then recursively do the same in the regions to the left and to the right of it.
// It doesn't produce minimal edit scripts, but it produces edit scripts that "look right" to
// people, because long common runs always anchor the result.
//
// An optional junk predicate deprioritizes elements: junk never seeds a matching block, but a
// block may be extended through equal junk on either side.
package seqmatch

import (
	"cmp"
	"slices"
)

// Match describes a matching block: a[A:A+Size] == b[B:B+Size].
type Match struct {
	A, B int
	Size int
}

// Op describes the kind of an opcode.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op uint8

const (
	Equal   Op = iota // a[I1:I2] == b[J1:J2]
	Delete            // a[I1:I2] is deleted, J1 == J2
	Insert            // b[J1:J2] is inserted, I1 == I2
	Replace           // a[I1:I2] is replaced by b[J1:J2]
)

// Opcode describes how a[I1:I2] corresponds to b[J1:J2].
type Opcode struct {
	Op     Op
	I1, I2 int
	J1, J2 int
}

type matcher[T comparable] struct {
	a, b []T
	b2j  map[T][]int   // positions of non-junk elements in b
	junk map[T]struct{} // junk elements of b
}

func newMatcher[T comparable](a, b []T, isJunk func(T) bool) *matcher[T] {
	m := &matcher[T]{
		a:    a,
		b:    b,
		b2j:  make(map[T][]int, len(b)),
		junk: make(map[T]struct{}),
	}
	for j, e := range b {
		if isJunk != nil {
			if _, ok := m.junk[e]; ok {
				continue
			}
			if isJunk(e) {
				m.junk[e] = struct{}{}
				continue
			}
		}
		m.b2j[e] = append(m.b2j[e], j)
	}
	return m
}

func (m *matcher[T]) isJunk(e T) bool {
	_, ok := m.junk[e]
	return ok
}

// findLongestMatch finds the longest matching block in a[alo:ahi] and b[blo:bhi].
//
// Of all maximal junk-free blocks, it returns the one that starts earliest in a, and of those the
// one that starts earliest in b. That block is then extended as far as possible, first by equal
// non-junk elements, then by equal junk elements on each side. If there's no match, the result
// is (alo, blo, 0).
func (m *matcher[T]) findLongestMatch(alo, ahi, blo, bhi int) Match {
	besti, bestj, bestsize := alo, blo, 0

	// During an iteration of the loop, j2len[j] is the length of the longest junk-free match
	// ending with a[i-1] and b[j].
	j2len := map[int]int{}
	newj2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		// Junk isn't indexed, so junk elements of a never find a candidate here.
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len, newj2len = newj2len, j2len
		clear(newj2len)
	}

	for besti > alo && bestj > blo && !m.isJunk(m.b[bestj-1]) && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi && !m.isJunk(m.b[bestj+bestsize]) &&
		m.a[besti+bestsize] == m.b[bestj+bestsize] {
		bestsize++
	}

	for besti > alo && bestj > blo && m.isJunk(m.b[bestj-1]) && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi && m.isJunk(m.b[bestj+bestsize]) &&
		m.a[besti+bestsize] == m.b[bestj+bestsize] {
		bestsize++
	}

	return Match{A: besti, B: bestj, Size: bestsize}
}

// matchingBlocks returns all matching blocks in increasing order, with adjacent blocks merged and
// terminated by the sentinel (len(a), len(b), 0).
func (m *matcher[T]) matchingBlocks() []Match {
	type region struct{ alo, ahi, blo, bhi int }

	// Regions still to be searched.
	var blocks []Match
	stack := []region{{0, len(m.a), 0, len(m.b)}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		match := m.findLongestMatch(r.alo, r.ahi, r.blo, r.bhi)
		i, j, k := match.A, match.B, match.Size
		if k == 0 {
			continue
		}
		blocks = append(blocks, match)
		if r.alo < i && r.blo < j {
			stack = append(stack, region{r.alo, i, r.blo, j})
		}
		if i+k < r.ahi && j+k < r.bhi {
			stack = append(stack, region{i + k, r.ahi, j + k, r.bhi})
		}
	}
	slices.SortFunc(blocks, func(x, y Match) int {
		return cmp.Or(cmp.Compare(x.A, y.A), cmp.Compare(x.B, y.B))
	})

	// Collapse adjacent blocks.
	merged := make([]Match, 0, len(blocks)+1)
	i1, j1, k1 := 0, 0, 0
	for _, b := range blocks {
		if i1+k1 == b.A && j1+k1 == b.B {
			k1 += b.Size
			continue
		}
		if k1 > 0 {
			merged = append(merged, Match{i1, j1, k1})
		}
		i1, j1, k1 = b.A, b.B, b.Size
	}
	if k1 > 0 {
		merged = append(merged, Match{i1, j1, k1})
	}
	return append(merged, Match{len(m.a), len(m.b), 0})
}

// MatchingBlocks returns the matching blocks of a and b.
//
// The blocks are strictly increasing in both A and B, adjacent blocks are merged and the last
// block is always the sentinel (len(a), len(b), 0). A nil isJunk treats no element as junk.
func MatchingBlocks[T comparable](a, b []T, isJunk func(T) bool) []Match {
	return newMatcher(a, b, isJunk).matchingBlocks()
}

// Opcodes returns the opcodes that describe how to turn a into b.
//
// The opcodes partition both a and b: the first opcode starts at I1 == J1 == 0, every opcode
// starts where the previous one ended and the last one ends at len(a), len(b). A nil isJunk
// treats no element as junk.
func Opcodes[T comparable](a, b []T, isJunk func(T) bool) []Opcode {
	return FromBlocks(MatchingBlocks(a, b, isJunk))
}

// FromBlocks converts matching blocks, as returned by [MatchingBlocks], to opcodes.
func FromBlocks(blocks []Match) []Opcode {
	var ops []Opcode
	i, j := 0, 0
	for _, b := range blocks {
		var op Op
		switch {
		case i < b.A && j < b.B:
			op = Replace
		case i < b.A:
			op = Delete
		case j < b.B:
			op = Insert
		}
		if i < b.A || j < b.B {
			ops = append(ops, Opcode{op, i, b.A, j, b.B})
		}
		i, j = b.A+b.Size, b.B+b.Size
		if b.Size > 0 {
			ops = append(ops, Opcode{Equal, b.A, i, b.B, j})
		}
	}
	return ops
}

// Ratio returns a measure of similarity of two sequences of length n and m in [0, 1], given
// their matching blocks. Identical sequences have a ratio of 1, sequences with nothing in
// common a ratio of 0.
func Ratio(blocks []Match, n, m int) float64 {
	if n+m == 0 {
		return 1
	}
	matches := 0
	for _, b := range blocks {
		matches += b.Size
	}
	return 2 * float64(matches) / float64(n+m)
}
