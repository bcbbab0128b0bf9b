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
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// This file provides the portable pure-Go backend. It implements the exact
// symbol table and ABI semantics of the native library, positional operand
// order of vsub/vdiv included, so the binding machinery above it behaves
// identically on every platform and the symbol assembly rules can be
// validated against a real export list.

var (
	errSymbolNotFound  = errors.New("symbol not found")
	errSymbolWrongKind = errors.New("symbol resolved to a different category")
)

type fallbackBackend struct {
	symbols map[string]any
}

var fallbackInstance = &fallbackBackend{symbols: fallbackSymbols()}

// Fallback returns the portable reference backend. It is safe for
// concurrent use; the symbol table is built once and never mutated.
func Fallback() Backend {
	return fallbackInstance
}

func (b *fallbackBackend) Name() string { return "fallback" }

func resolveAs[K any](b *fallbackBackend, symbol string) (K, error) {
	var zero K
	v, ok := b.symbols[symbol]
	if !ok {
		return zero, fmt.Errorf("%q: %w", symbol, errSymbolNotFound)
	}
	k, ok := v.(K)
	if !ok {
		return zero, fmt.Errorf("%q: %w", symbol, errSymbolWrongKind)
	}
	return k, nil
}

func (b *fallbackBackend) ResolveUnary(symbol string) (UnaryKernel, error) {
	return resolveAs[UnaryKernel](b, symbol)
}

func (b *fallbackBackend) ResolveBinary(symbol string) (BinaryKernel, error) {
	return resolveAs[BinaryKernel](b, symbol)
}

func (b *fallbackBackend) ResolveReduce(symbol string) (ReduceKernel, error) {
	return resolveAs[ReduceKernel](b, symbol)
}

func (b *fallbackBackend) ResolveReduceIndex(symbol string) (ReduceIndexKernel, error) {
	return resolveAs[ReduceIndexKernel](b, symbol)
}

// strided reinterprets raw storage as a []T long enough to address
// elements 0, stride, ..., (n-1)*stride. Callers guarantee n > 0.
func strided[T Floats](p unsafe.Pointer, stride, n int) []T {
	return unsafe.Slice((*T)(p), (n-1)*stride+1)
}

// unaryKernel adapts a scalar function to the vForce layout. float32
// routines compute through float64, which is exact for the rounding ops
// and well within the tolerance the real library guarantees for the
// transcendental ones.
func unaryKernel[T Floats](f func(float64) float64) UnaryKernel {
	return func(out, in unsafe.Pointer, n int) {
		if n <= 0 {
			return
		}
		y := unsafe.Slice((*T)(out), n)
		x := unsafe.Slice((*T)(in), n)
		for i, v := range x {
			y[i] = T(f(float64(v)))
		}
	}
}

// binaryKernel adapts a positional two-operand function to the vDSP
// layout. f receives the first and second pointer operands in call order;
// symbol-specific operand reversal lives in the per-symbol functions.
func binaryKernel[T Floats](f func(p1, p2 T) T) BinaryKernel {
	return func(pa unsafe.Pointer, ia int, pb unsafe.Pointer, ib int, po unsafe.Pointer, io int, n int) {
		if n <= 0 {
			return
		}
		a := strided[T](pa, ia, n)
		b := strided[T](pb, ib, n)
		o := strided[T](po, io, n)
		for i := 0; i < n; i++ {
			o[i*io] = f(a[i*ia], b[i*ib])
		}
	}
}

func reduceKernel[T Floats](f func(x []T, stride, n int) T) ReduceKernel {
	return func(pin unsafe.Pointer, stride int, pout unsafe.Pointer, n int) {
		var x []T
		if n > 0 {
			x = strided[T](pin, stride, n)
		}
		*(*T)(pout) = f(x, stride, n)
	}
}

// extremumIndex scans forward with a strict comparison, so the first
// occurrence wins on ties, matching the native routines. The reported
// index is the array offset of the winner (a multiple of the stride),
// 0-based as in the native convention.
func extremumIndex[T Floats](better func(v, best T) bool, empty float64) ReduceIndexKernel {
	return func(pin unsafe.Pointer, stride int, pout unsafe.Pointer, index *uint, n int) {
		if n <= 0 {
			*(*T)(pout) = T(empty)
			*index = 0
			return
		}
		x := strided[T](pin, stride, n)
		best := x[0]
		bestIdx := 0
		for i := 1; i < n; i++ {
			if v := x[i*stride]; better(v, best) {
				best = v
				bestIdx = i
			}
		}
		*(*T)(pout) = best
		*index = uint(bestIdx * stride)
	}
}

func sumOf[T Floats](x []T, stride, n int) T {
	var s T
	for i := 0; i < n; i++ {
		s += x[i*stride]
	}
	return s
}

func meanOf[T Floats](x []T, stride, n int) T {
	if n == 0 {
		return T(math.NaN())
	}
	return sumOf(x, stride, n) / T(n)
}

func sumSqOf[T Floats](x []T, stride, n int) T {
	var s T
	for i := 0; i < n; i++ {
		v := x[i*stride]
		s += v * v
	}
	return s
}

func meanSqOf[T Floats](x []T, stride, n int) T {
	if n == 0 {
		return T(math.NaN())
	}
	return sumSqOf(x, stride, n) / T(n)
}

func maxOf[T Floats](x []T, stride, n int) T {
	if n == 0 {
		return T(math.Inf(-1))
	}
	best := x[0]
	for i := 1; i < n; i++ {
		if v := x[i*stride]; v > best {
			best = v
		}
	}
	return best
}

func minOf[T Floats](x []T, stride, n int) T {
	if n == 0 {
		return T(math.Inf(1))
	}
	best := x[0]
	for i := 1; i < n; i++ {
		if v := x[i*stride]; v < best {
			best = v
		}
	}
	return best
}

// Positional binary operand functions. vDSP_vsub computes C = A - B with B
// as the first pointer argument, and vDSP_vdiv computes C = A / B with
// divisor B first; both are therefore "second op first" here.
func addPos[T Floats](p1, p2 T) T { return p1 + p2 }
func subPos[T Floats](p1, p2 T) T { return p2 - p1 }
func mulPos[T Floats](p1, p2 T) T { return p1 * p2 }
func divPos[T Floats](p1, p2 T) T { return p2 / p1 }

func minPos[T Floats](p1, p2 T) T {
	if p2 < p1 {
		return p2
	}
	return p1
}

func maxPos[T Floats](p1, p2 T) T {
	if p2 > p1 {
		return p2
	}
	return p1
}

func greater[T Floats](v, best T) bool { return v > best }
func less[T Floats](v, best T) bool    { return v < best }

// fallbackSymbols builds the export table, keyed by exact native symbol
// name for both precisions of every catalog operation.
func fallbackSymbols() map[string]any {
	s := make(map[string]any)

	// Family A: vForce unary, float64 unsuffixed.
	unary := func(stem string, f func(float64) float64) {
		s[forcePrefix+stem] = unaryKernel[float64](f)
		s[forcePrefix+stem+"f"] = unaryKernel[float32](f)
	}
	unary("ceil", math.Ceil)
	unary("floor", math.Floor)
	unary("int", math.Trunc)
	unary("nint", math.RoundToEven)
	unary("fabs", math.Abs)
	unary("rec", func(x float64) float64 { return 1 / x })
	unary("sqrt", math.Sqrt)
	unary("rsqrt", func(x float64) float64 { return 1 / math.Sqrt(x) })
	unary("exp", math.Exp)
	unary("expm1", math.Expm1)
	unary("log", math.Log)
	unary("log1p", math.Log1p)
	unary("log10", math.Log10)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("atan", math.Atan)
	unary("sinh", math.Sinh)
	unary("cosh", math.Cosh)
	unary("tanh", math.Tanh)

	// Family B: vDSP, float32 unsuffixed.
	s[dspPrefix+"vadd"] = binaryKernel[float32](addPos[float32])
	s[dspPrefix+"vaddD"] = binaryKernel[float64](addPos[float64])
	s[dspPrefix+"vsub"] = binaryKernel[float32](subPos[float32])
	s[dspPrefix+"vsubD"] = binaryKernel[float64](subPos[float64])
	s[dspPrefix+"vmul"] = binaryKernel[float32](mulPos[float32])
	s[dspPrefix+"vmulD"] = binaryKernel[float64](mulPos[float64])
	s[dspPrefix+"vdiv"] = binaryKernel[float32](divPos[float32])
	s[dspPrefix+"vdivD"] = binaryKernel[float64](divPos[float64])
	s[dspPrefix+"vmin"] = binaryKernel[float32](minPos[float32])
	s[dspPrefix+"vminD"] = binaryKernel[float64](minPos[float64])
	s[dspPrefix+"vmax"] = binaryKernel[float32](maxPos[float32])
	s[dspPrefix+"vmaxD"] = binaryKernel[float64](maxPos[float64])

	s[dspPrefix+"sve"] = reduceKernel[float32](sumOf[float32])
	s[dspPrefix+"sveD"] = reduceKernel[float64](sumOf[float64])
	s[dspPrefix+"meanv"] = reduceKernel[float32](meanOf[float32])
	s[dspPrefix+"meanvD"] = reduceKernel[float64](meanOf[float64])
	s[dspPrefix+"svesq"] = reduceKernel[float32](sumSqOf[float32])
	s[dspPrefix+"svesqD"] = reduceKernel[float64](sumSqOf[float64])
	s[dspPrefix+"measqv"] = reduceKernel[float32](meanSqOf[float32])
	s[dspPrefix+"measqvD"] = reduceKernel[float64](meanSqOf[float64])
	s[dspPrefix+"maxv"] = reduceKernel[float32](maxOf[float32])
	s[dspPrefix+"maxvD"] = reduceKernel[float64](maxOf[float64])
	s[dspPrefix+"minv"] = reduceKernel[float32](minOf[float32])
	s[dspPrefix+"minvD"] = reduceKernel[float64](minOf[float64])

	s[dspPrefix+"maxvi"] = extremumIndex[float32](greater[float32], math.Inf(-1))
	s[dspPrefix+"maxviD"] = extremumIndex[float64](greater[float64], math.Inf(-1))
	s[dspPrefix+"minvi"] = extremumIndex[float32](less[float32], math.Inf(1))
	s[dspPrefix+"minviD"] = extremumIndex[float64](less[float64], math.Inf(1))

	return s
}
