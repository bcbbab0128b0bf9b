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

// Package accel binds vectorized elementwise and reduction math to a
// precompiled native backend (Apple Accelerate's vForce and vDSP symbol
// families), with a portable pure-Go reference backend for every other
// platform.
//
// The package is a binding generator, not a math library: an operation
// catalog and a precision table describe every logical operation, and Bind
// walks their product, resolves each native symbol through a Backend,
// wraps it in allocating and in-place entry points, and records each entry
// point in a Registry for cross-backend discovery.
//
// Basic usage:
//
//	lib, err := accel.Bind(accel.DefaultBackend(), accel.NewRegistry())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	y := lib.F64.Sqrt([]float64{1, 4, 9})       // allocating: [1 2 3]
//	lib.F64.AddInPlace(dst, x, y)               // in-place: dst[i] = x[i]+y[i]
//	total := lib.F64.Sum(x)                     // reduction to scalar
//	v, i := lib.F64.FindMax(x)                  // value and 1-based index
//
// Entry points are plain function values; fetch them once and call them
// directly in hot paths. The Registry exists for external dispatch layers
// that select among competing backends, not for per-call lookup.
//
// Symbol resolution happens entirely inside Bind. A catalog entry whose
// symbol the backend cannot resolve fails the whole bind with a
// *ConfigError before any entry point becomes callable.
package accel
