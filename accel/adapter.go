// Copyright 2025 go-accelerate Authors
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

package accel

import (
	"runtime"
	"unsafe"
)

// This file is the marshaling boundary between slice-typed entry points
// and raw-pointer kernels. Every length invariant is checked here, before
// any native call; a violation panics with *PreconditionError rather than
// reaching the backend as out-of-bounds pointer arithmetic.

// UnaryFunc is an allocating unary entry point: it returns a fresh vector
// of len(x) and never mutates x.
type UnaryFunc[T Floats] func(x []T) []T

// UnaryInPlaceFunc writes f(x) into dst and returns dst. dst and x must
// have equal length; dst may alias x. Panics with *PreconditionError on a
// length mismatch.
type UnaryInPlaceFunc[T Floats] func(dst, x []T) []T

// BinaryFunc is an allocating binary entry point: it returns a fresh
// vector of len(x) and never mutates x or y. Operand order is the caller's:
// Sub(x, y) is x - y and Div(x, y) is x / y.
type BinaryFunc[T Floats] func(x, y []T) []T

// BinaryInPlaceFunc writes f(x, y) into dst and returns dst. All three
// must have equal length; dst may alias either input. Panics with
// *PreconditionError on a length mismatch.
type BinaryInPlaceFunc[T Floats] func(dst, x, y []T) []T

// ReduceFunc collapses x to one scalar. Reductions have no
// allocating/in-place split.
type ReduceFunc[T Floats] func(x []T) T

// ReduceIndexFunc collapses x to one scalar and the 1-based index of the
// contributing element (first occurrence on ties). Panics with
// *PreconditionError when x is empty; there is no valid index to return.
type ReduceIndexFunc[T Floats] func(x []T) (T, int)

func basePtr[T Floats](s []T) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(s))
}

func makeUnary[T Floats](op Operation, k UnaryKernel) (UnaryFunc[T], UnaryInPlaceFunc[T]) {
	inPlace := func(dst, x []T) []T {
		if len(dst) != len(x) {
			panic(lengthMismatch(op.Name, len(x), len(dst)))
		}
		if n := len(x); n > 0 {
			k(basePtr(dst), basePtr(x), n)
			runtime.KeepAlive(dst)
			runtime.KeepAlive(x)
		}
		return dst
	}
	alloc := func(x []T) []T {
		return inPlace(make([]T, len(x)), x)
	}
	return alloc, inPlace
}

func makeBinary[T Floats](op Operation, k BinaryKernel) (BinaryFunc[T], BinaryInPlaceFunc[T]) {
	inPlace := func(dst, x, y []T) []T {
		if len(y) != len(x) {
			panic(lengthMismatch(op.Name, len(x), len(y)))
		}
		if len(dst) != len(x) {
			panic(lengthMismatch(op.Name, len(x), len(dst)))
		}
		if n := len(x); n > 0 {
			a, b := x, y
			if op.ReverseOperands {
				// The symbol takes its logical second operand first
				// (vDSP_vsub computes C = A - B with B leading). Swapping
				// here keeps the public contract in caller order.
				a, b = y, x
			}
			k(basePtr(a), 1, basePtr(b), 1, basePtr(dst), 1, n)
			runtime.KeepAlive(dst)
			runtime.KeepAlive(x)
			runtime.KeepAlive(y)
		}
		return dst
	}
	alloc := func(x, y []T) []T {
		return inPlace(make([]T, len(x)), x, y)
	}
	return alloc, inPlace
}

func makeReduce[T Floats](op Operation, k ReduceKernel) ReduceFunc[T] {
	return func(x []T) T {
		n := len(x)
		if n == 0 {
			return T(op.Empty)
		}
		var out T
		k(basePtr(x), 1, unsafe.Pointer(&out), n)
		runtime.KeepAlive(x)
		return out
	}
}

func makeReduceIndex[T Floats](op Operation, k ReduceIndexKernel) ReduceIndexFunc[T] {
	return func(x []T) (T, int) {
		n := len(x)
		if n == 0 {
			panic(&PreconditionError{Op: op.Name, Reason: "empty vector has no extremum index"})
		}
		var out T
		var index uint
		k(basePtr(x), 1, unsafe.Pointer(&out), &index, n)
		runtime.KeepAlive(x)
		// Native index is 0-based; the public contract is 1-based.
		return out, int(index) + 1
	}
}
