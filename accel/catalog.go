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
	"fmt"
	"math"
)

// Floats constrains element types to the two widths the native backend
// supports. Named types satisfying this constraint are rejected with a
// *ConfigError at bind time; the backend has no symbols for them.
type Floats interface {
	~float32 | ~float64
}

// ElemType identifies a supported numeric element width.
type ElemType int

const (
	Float64 ElemType = iota
	Float32
)

func (e ElemType) String() string {
	switch e {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	}
	return "unknown"
}

// elemTypeOf maps a type parameter to its ElemType. Only the exact types
// float64 and float32 are supported; anything else (including named types
// based on them) has no native symbols.
func elemTypeOf[T Floats]() (ElemType, error) {
	var zero T
	switch any(zero).(type) {
	case float64:
		return Float64, nil
	case float32:
		return Float32, nil
	}
	return 0, fmt.Errorf("unsupported element type %T", zero)
}

// Precision maps an element type to the symbol suffix each of the
// backend's two naming families uses for it.
//
// The two families run in opposite directions: vForce treats float64 as
// the unsuffixed default (vvsqrt, vvsqrtf), while vDSP treats float32 as
// the default (vDSP_vadd, vDSP_vaddD). This reversal is a property of the
// backend, not a typo.
type Precision struct {
	Type        ElemType
	ForceSuffix string // family A, vForce unary routines
	DSPSuffix   string // family B, vDSP pointwise and reduction routines
}

// precisionTable is the fixed set of supported precisions, in binding
// order: float64 first, then float32.
var precisionTable = [...]Precision{
	{Type: Float64, ForceSuffix: "", DSPSuffix: "D"},
	{Type: Float32, ForceSuffix: "f", DSPSuffix: ""},
}

// Precisions returns the supported precisions in binding order.
func Precisions() []Precision {
	out := make([]Precision, len(precisionTable))
	copy(out, precisionTable[:])
	return out
}

func precisionFor(e ElemType) (Precision, bool) {
	for _, p := range precisionTable {
		if p.Type == e {
			return p, true
		}
	}
	return Precision{}, false
}

// Category classifies an operation by its arity and result shape.
type Category int

const (
	// CategoryUnary is a pointwise operation of one vector.
	CategoryUnary Category = iota

	// CategoryBinary is a pointwise operation of two vectors.
	CategoryBinary

	// CategoryReduce collapses a vector to one scalar.
	CategoryReduce

	// CategoryReduceIndexed collapses a vector to one scalar plus the
	// 1-based index of the contributing element.
	CategoryReduceIndexed
)

func (c Category) String() string {
	switch c {
	case CategoryUnary:
		return "unary"
	case CategoryBinary:
		return "binary"
	case CategoryReduce:
		return "reduce"
	case CategoryReduceIndexed:
		return "reduce-indexed"
	}
	return "unknown"
}

// Operation describes one logical operation of the catalog.
type Operation struct {
	// Name is the logical operation name used as the registry key.
	Name string

	Category Category

	// Stem is the backend symbol stem the naming families decorate.
	Stem string

	// Label is a human-readable description.
	Label string

	// ReverseOperands marks vDSP routines whose two vector operands are
	// passed in reversed positional order: vDSP_vsub computes C = A - B
	// with B as the first pointer argument, and vDSP_vdiv computes
	// C = A / B with divisor B first. The adapter compensates so the
	// public contract is always caller order.
	ReverseOperands bool

	// Empty is the result a scalar reduction yields for a zero-length
	// input, following the backend's conventions.
	Empty float64
}

// Symbol assembles the native symbol name for this operation at the given
// precision. Unary operations use the vForce family (prefix "vv", float64
// unsuffixed); everything else uses the vDSP family (prefix "vDSP_",
// float32 unsuffixed).
func (op Operation) Symbol(p Precision) string {
	if op.Category == CategoryUnary {
		return forcePrefix + op.Stem + p.ForceSuffix
	}
	return dspPrefix + op.Stem + p.DSPSuffix
}

const (
	forcePrefix = "vv"
	dspPrefix   = "vDSP_"
)

// catalog is the fixed operation set, walked in order during Bind.
var catalog = []Operation{
	// Unary pointwise (vForce).
	{Name: "ceil", Category: CategoryUnary, Stem: "ceil", Label: "round toward +Inf"},
	{Name: "floor", Category: CategoryUnary, Stem: "floor", Label: "round toward -Inf"},
	{Name: "trunc", Category: CategoryUnary, Stem: "int", Label: "round toward zero"},
	{Name: "round", Category: CategoryUnary, Stem: "nint", Label: "round to nearest integer"},
	{Name: "abs", Category: CategoryUnary, Stem: "fabs", Label: "absolute value"},
	{Name: "rec", Category: CategoryUnary, Stem: "rec", Label: "reciprocal"},
	{Name: "sqrt", Category: CategoryUnary, Stem: "sqrt", Label: "square root"},
	{Name: "rsqrt", Category: CategoryUnary, Stem: "rsqrt", Label: "reciprocal square root"},
	{Name: "exp", Category: CategoryUnary, Stem: "exp", Label: "base-e exponential"},
	{Name: "expm1", Category: CategoryUnary, Stem: "expm1", Label: "exp(x)-1"},
	{Name: "log", Category: CategoryUnary, Stem: "log", Label: "natural logarithm"},
	{Name: "log1p", Category: CategoryUnary, Stem: "log1p", Label: "log(1+x)"},
	{Name: "log10", Category: CategoryUnary, Stem: "log10", Label: "base-10 logarithm"},
	{Name: "sin", Category: CategoryUnary, Stem: "sin", Label: "sine"},
	{Name: "cos", Category: CategoryUnary, Stem: "cos", Label: "cosine"},
	{Name: "tan", Category: CategoryUnary, Stem: "tan", Label: "tangent"},
	{Name: "asin", Category: CategoryUnary, Stem: "asin", Label: "arcsine"},
	{Name: "acos", Category: CategoryUnary, Stem: "acos", Label: "arccosine"},
	{Name: "atan", Category: CategoryUnary, Stem: "atan", Label: "arctangent"},
	{Name: "sinh", Category: CategoryUnary, Stem: "sinh", Label: "hyperbolic sine"},
	{Name: "cosh", Category: CategoryUnary, Stem: "cosh", Label: "hyperbolic cosine"},
	{Name: "tanh", Category: CategoryUnary, Stem: "tanh", Label: "hyperbolic tangent"},

	// Binary pointwise (vDSP).
	{Name: "add", Category: CategoryBinary, Stem: "vadd", Label: "elementwise addition"},
	{Name: "sub", Category: CategoryBinary, Stem: "vsub", Label: "elementwise subtraction", ReverseOperands: true},
	{Name: "mul", Category: CategoryBinary, Stem: "vmul", Label: "elementwise multiplication"},
	{Name: "div", Category: CategoryBinary, Stem: "vdiv", Label: "elementwise division", ReverseOperands: true},
	{Name: "min", Category: CategoryBinary, Stem: "vmin", Label: "elementwise minimum"},
	{Name: "max", Category: CategoryBinary, Stem: "vmax", Label: "elementwise maximum"},

	// Reductions to scalar (vDSP).
	{Name: "sum", Category: CategoryReduce, Stem: "sve", Label: "sum of elements", Empty: 0},
	{Name: "mean", Category: CategoryReduce, Stem: "meanv", Label: "arithmetic mean", Empty: math.NaN()},
	{Name: "sumsqr", Category: CategoryReduce, Stem: "svesq", Label: "sum of squares", Empty: 0},
	{Name: "meansqr", Category: CategoryReduce, Stem: "measqv", Label: "mean of squares", Empty: math.NaN()},
	{Name: "maximum", Category: CategoryReduce, Stem: "maxv", Label: "largest element", Empty: math.Inf(-1)},
	{Name: "minimum", Category: CategoryReduce, Stem: "minv", Label: "smallest element", Empty: math.Inf(1)},

	// Indexed reductions (vDSP). Public indices are 1-based.
	{Name: "findmax", Category: CategoryReduceIndexed, Stem: "maxvi", Label: "largest element with index"},
	{Name: "findmin", Category: CategoryReduceIndexed, Stem: "minvi", Label: "smallest element with index"},
}

// Operations returns the full operation catalog in binding order.
func Operations() []Operation {
	out := make([]Operation, len(catalog))
	copy(out, catalog)
	return out
}
