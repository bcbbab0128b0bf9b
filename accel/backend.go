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
	"os"
	"strconv"
	"unsafe"
)

// Kernel function types are the normalized Go side of the native ABI, one
// per operation category. Pointers are borrowed raw storage; lengths are
// element counts, strides are in elements.

// UnaryKernel computes out[i] = f(in[i]) for i in [0, n). Unit stride is
// implicit in the vForce family.
type UnaryKernel func(out, in unsafe.Pointer, n int)

// BinaryKernel is a vDSP-layout pointwise routine over two strided input
// vectors and one strided output vector. The positional meaning of the two
// inputs is a property of the symbol; see Operation.ReverseOperands.
type BinaryKernel func(a unsafe.Pointer, strideA int, b unsafe.Pointer, strideB int, out unsafe.Pointer, strideOut int, n int)

// ReduceKernel collapses a strided vector into the scalar at out.
type ReduceKernel func(in unsafe.Pointer, stride int, out unsafe.Pointer, n int)

// ReduceIndexKernel collapses a strided vector into the scalar at out and
// writes the native 0-based index of the contributing element to index.
type ReduceIndexKernel func(in unsafe.Pointer, stride int, out unsafe.Pointer, index *uint, n int)

// Backend resolves assembled symbol names to callable kernels.
//
// Resolution is the failure boundary of the whole package: Bind calls
// Resolve* for every catalog symbol up front and aborts on the first
// error, so a backend must report a missing or wrongly-shaped symbol here
// rather than deferring to call time.
type Backend interface {
	Name() string
	ResolveUnary(symbol string) (UnaryKernel, error)
	ResolveBinary(symbol string) (BinaryKernel, error)
	ResolveReduce(symbol string) (ReduceKernel, error)
	ResolveReduceIndex(symbol string) (ReduceIndexKernel, error)
}

// NoNativeEnv checks if the ACCEL_NO_NATIVE environment variable is set.
// When set, DefaultBackend skips the native framework and uses the
// portable fallback regardless of platform. This is useful for testing
// and for ruling the native library in or out when debugging numeric
// differences.
func NoNativeEnv() bool {
	val := os.Getenv("ACCEL_NO_NATIVE")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// DefaultBackend returns the native Accelerate backend where available,
// and the portable fallback everywhere else.
func DefaultBackend() Backend {
	if !NoNativeEnv() {
		if b, err := Accelerate(); err == nil {
			return b
		}
	}
	return Fallback()
}
