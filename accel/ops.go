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

// Ops holds the generated entry points for one element type. Every field
// is populated by a successful Bind; fields are plain function values, so
// callers can hold and invoke them directly with no lookup in the hot
// path.
type Ops[T Floats] struct {
	// Unary pointwise, allocating: y = f(x), fresh output of len(x).
	Ceil  UnaryFunc[T]
	Floor UnaryFunc[T]
	Trunc UnaryFunc[T]
	Round UnaryFunc[T]
	Abs   UnaryFunc[T]
	Rec   UnaryFunc[T]
	Sqrt  UnaryFunc[T]
	Rsqrt UnaryFunc[T]
	Exp   UnaryFunc[T]
	Expm1 UnaryFunc[T]
	Log   UnaryFunc[T]
	Log1p UnaryFunc[T]
	Log10 UnaryFunc[T]
	Sin   UnaryFunc[T]
	Cos   UnaryFunc[T]
	Tan   UnaryFunc[T]
	Asin  UnaryFunc[T]
	Acos  UnaryFunc[T]
	Atan  UnaryFunc[T]
	Sinh  UnaryFunc[T]
	Cosh  UnaryFunc[T]
	Tanh  UnaryFunc[T]

	// Unary pointwise, in-place: dst = f(x), returns dst.
	CeilInPlace  UnaryInPlaceFunc[T]
	FloorInPlace UnaryInPlaceFunc[T]
	TruncInPlace UnaryInPlaceFunc[T]
	RoundInPlace UnaryInPlaceFunc[T]
	AbsInPlace   UnaryInPlaceFunc[T]
	RecInPlace   UnaryInPlaceFunc[T]
	SqrtInPlace  UnaryInPlaceFunc[T]
	RsqrtInPlace UnaryInPlaceFunc[T]
	ExpInPlace   UnaryInPlaceFunc[T]
	Expm1InPlace UnaryInPlaceFunc[T]
	LogInPlace   UnaryInPlaceFunc[T]
	Log1pInPlace UnaryInPlaceFunc[T]
	Log10InPlace UnaryInPlaceFunc[T]
	SinInPlace   UnaryInPlaceFunc[T]
	CosInPlace   UnaryInPlaceFunc[T]
	TanInPlace   UnaryInPlaceFunc[T]
	AsinInPlace  UnaryInPlaceFunc[T]
	AcosInPlace  UnaryInPlaceFunc[T]
	AtanInPlace  UnaryInPlaceFunc[T]
	SinhInPlace  UnaryInPlaceFunc[T]
	CoshInPlace  UnaryInPlaceFunc[T]
	TanhInPlace  UnaryInPlaceFunc[T]

	// Binary pointwise, caller operand order: Sub(x, y) = x - y.
	Add BinaryFunc[T]
	Sub BinaryFunc[T]
	Mul BinaryFunc[T]
	Div BinaryFunc[T]
	Min BinaryFunc[T]
	Max BinaryFunc[T]

	AddInPlace BinaryInPlaceFunc[T]
	SubInPlace BinaryInPlaceFunc[T]
	MulInPlace BinaryInPlaceFunc[T]
	DivInPlace BinaryInPlaceFunc[T]
	MinInPlace BinaryInPlaceFunc[T]
	MaxInPlace BinaryInPlaceFunc[T]

	// Reductions to scalar.
	Sum         ReduceFunc[T]
	Mean        ReduceFunc[T]
	SumSquares  ReduceFunc[T]
	MeanSquares ReduceFunc[T]
	Maximum     ReduceFunc[T]
	Minimum     ReduceFunc[T]

	// Indexed reductions; the returned index is 1-based, first occurrence
	// on ties.
	FindMax ReduceIndexFunc[T]
	FindMin ReduceIndexFunc[T]
}

// Slot mapping from catalog names to struct fields. The binding generator
// drives these; a catalog entry without a slot is a ConfigError at bind
// time, which keeps the catalog and this struct honest against each other.

func (o *Ops[T]) unarySlots(name string) (*UnaryFunc[T], *UnaryInPlaceFunc[T]) {
	switch name {
	case "ceil":
		return &o.Ceil, &o.CeilInPlace
	case "floor":
		return &o.Floor, &o.FloorInPlace
	case "trunc":
		return &o.Trunc, &o.TruncInPlace
	case "round":
		return &o.Round, &o.RoundInPlace
	case "abs":
		return &o.Abs, &o.AbsInPlace
	case "rec":
		return &o.Rec, &o.RecInPlace
	case "sqrt":
		return &o.Sqrt, &o.SqrtInPlace
	case "rsqrt":
		return &o.Rsqrt, &o.RsqrtInPlace
	case "exp":
		return &o.Exp, &o.ExpInPlace
	case "expm1":
		return &o.Expm1, &o.Expm1InPlace
	case "log":
		return &o.Log, &o.LogInPlace
	case "log1p":
		return &o.Log1p, &o.Log1pInPlace
	case "log10":
		return &o.Log10, &o.Log10InPlace
	case "sin":
		return &o.Sin, &o.SinInPlace
	case "cos":
		return &o.Cos, &o.CosInPlace
	case "tan":
		return &o.Tan, &o.TanInPlace
	case "asin":
		return &o.Asin, &o.AsinInPlace
	case "acos":
		return &o.Acos, &o.AcosInPlace
	case "atan":
		return &o.Atan, &o.AtanInPlace
	case "sinh":
		return &o.Sinh, &o.SinhInPlace
	case "cosh":
		return &o.Cosh, &o.CoshInPlace
	case "tanh":
		return &o.Tanh, &o.TanhInPlace
	}
	return nil, nil
}

func (o *Ops[T]) binarySlots(name string) (*BinaryFunc[T], *BinaryInPlaceFunc[T]) {
	switch name {
	case "add":
		return &o.Add, &o.AddInPlace
	case "sub":
		return &o.Sub, &o.SubInPlace
	case "mul":
		return &o.Mul, &o.MulInPlace
	case "div":
		return &o.Div, &o.DivInPlace
	case "min":
		return &o.Min, &o.MinInPlace
	case "max":
		return &o.Max, &o.MaxInPlace
	}
	return nil, nil
}

func (o *Ops[T]) reduceSlot(name string) *ReduceFunc[T] {
	switch name {
	case "sum":
		return &o.Sum
	case "mean":
		return &o.Mean
	case "sumsqr":
		return &o.SumSquares
	case "meansqr":
		return &o.MeanSquares
	case "maximum":
		return &o.Maximum
	case "minimum":
		return &o.Minimum
	}
	return nil
}

func (o *Ops[T]) reduceIndexSlot(name string) *ReduceIndexFunc[T] {
	switch name {
	case "findmax":
		return &o.FindMax
	case "findmin":
		return &o.FindMin
	}
	return nil
}
