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
	"fmt"
	"slices"
)

// AlignmentError reports opcodes that don't describe a valid transformation of one sequence
// into another.
type AlignmentError struct {
	Index  int    // Index of the offending opcode, or len(opcodes) if the opcodes end early.
	Opcode Opcode // The offending opcode, zero if Index == len(opcodes).
	Reason string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("invalid alignment at opcode %d %v [%d:%d] [%d:%d]: %s",
		e.Index, e.Opcode.Op, e.Opcode.I1, e.Opcode.I2, e.Opcode.J1, e.Opcode.J2, e.Reason)
}

// Validate checks that ops transform a into b. It returns an *AlignmentError if they don't.
func Validate[T comparable](a, b []T, ops []Opcode) error {
	i, j := 0, 0
	for n, op := range ops {
		fail := func(format string, args ...any) error {
			return &AlignmentError{Index: n, Opcode: op, Reason: fmt.Sprintf(format, args...)}
		}
		if op.I1 != i || op.J1 != j {
			return fail("expected start at [%d:] [%d:]", i, j)
		}
		if op.I2 < op.I1 || op.J2 < op.J1 || op.I2 > len(a) || op.J2 > len(b) {
			return fail("range out of bounds for lengths %d, %d", len(a), len(b))
		}
		switch op.Op {
		case Equal:
			if op.I2-op.I1 != op.J2-op.J1 {
				return fail("ranges of different length")
			}
			if !slices.Equal(a[op.I1:op.I2], b[op.J1:op.J2]) {
				return fail("ranges are not equal")
			}
		case Delete:
			if op.I1 == op.I2 || op.J1 != op.J2 {
				return fail("delete must have an empty range in b and a non-empty range in a")
			}
		case Insert:
			if op.J1 == op.J2 || op.I1 != op.I2 {
				return fail("insert must have an empty range in a and a non-empty range in b")
			}
		case Replace:
			if op.I1 == op.I2 || op.J1 == op.J2 {
				return fail("replace must have non-empty ranges")
			}
			if slices.Equal(a[op.I1:op.I2], b[op.J1:op.J2]) {
				return fail("replaced ranges are equal")
			}
		default:
			return fail("unknown op")
		}
		i, j = op.I2, op.J2
	}
	if i != len(a) || j != len(b) {
		return &AlignmentError{
			Index:  len(ops),
			Reason: fmt.Sprintf("opcodes end at [%d:] [%d:], want [%d:] [%d:]", i, j, len(a), len(b)),
		}
	}
	return nil
}
