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

//go:build darwin

package accel

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// The Accelerate backend resolves vForce and vDSP symbols dynamically via
// dlopen/dlsym, so a missing routine surfaces as a bind-time ConfigError
// rather than a link failure or a call-time crash. No cgo is involved.
//
// ABI notes, which must match the framework headers exactly:
//   - vForce:  void vvsqrt(double *y, const double *x, const int *n)
//     The element count is passed by pointer, as a C int.
//   - vDSP:    strides are vDSP_Stride (long), counts are vDSP_Length
//     (unsigned long), indices are returned as vDSP_Length.

const acceleratePath = "/System/Library/Frameworks/Accelerate.framework/Versions/Current/Accelerate"

type accelerateBackend struct {
	handle uintptr
}

var (
	accelOnce    sync.Once
	accelBackend *accelerateBackend
	accelErr     error
)

// Accelerate returns the native Accelerate framework backend, opening the
// framework on first use.
func Accelerate() (Backend, error) {
	accelOnce.Do(func() {
		h, err := purego.Dlopen(acceleratePath, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			accelErr = fmt.Errorf("accel: opening Accelerate framework: %w", err)
			return
		}
		accelBackend = &accelerateBackend{handle: h}
	})
	if accelErr != nil {
		return nil, accelErr
	}
	return accelBackend, nil
}

func (b *accelerateBackend) Name() string { return "accelerate" }

func (b *accelerateBackend) addr(symbol string) (uintptr, error) {
	p, err := purego.Dlsym(b.handle, symbol)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", symbol, err)
	}
	if p == 0 {
		return 0, fmt.Errorf("%q: %w", symbol, errSymbolNotFound)
	}
	return p, nil
}

func (b *accelerateBackend) ResolveUnary(symbol string) (UnaryKernel, error) {
	p, err := b.addr(symbol)
	if err != nil {
		return nil, err
	}
	var fn func(out, in unsafe.Pointer, n *int32)
	purego.RegisterFunc(&fn, p)
	return func(out, in unsafe.Pointer, n int) {
		n32 := int32(n)
		fn(out, in, &n32)
	}, nil
}

func (b *accelerateBackend) ResolveBinary(symbol string) (BinaryKernel, error) {
	p, err := b.addr(symbol)
	if err != nil {
		return nil, err
	}
	var fn func(p1 unsafe.Pointer, s1 int, p2 unsafe.Pointer, s2 int, out unsafe.Pointer, so int, n uint)
	purego.RegisterFunc(&fn, p)
	return func(a unsafe.Pointer, strideA int, bp unsafe.Pointer, strideB int, out unsafe.Pointer, strideOut int, n int) {
		fn(a, strideA, bp, strideB, out, strideOut, uint(n))
	}, nil
}

func (b *accelerateBackend) ResolveReduce(symbol string) (ReduceKernel, error) {
	p, err := b.addr(symbol)
	if err != nil {
		return nil, err
	}
	var fn func(in unsafe.Pointer, stride int, out unsafe.Pointer, n uint)
	purego.RegisterFunc(&fn, p)
	return func(in unsafe.Pointer, stride int, out unsafe.Pointer, n int) {
		fn(in, stride, out, uint(n))
	}, nil
}

func (b *accelerateBackend) ResolveReduceIndex(symbol string) (ReduceIndexKernel, error) {
	p, err := b.addr(symbol)
	if err != nil {
		return nil, err
	}
	var fn func(in unsafe.Pointer, stride int, out unsafe.Pointer, index *uint, n uint)
	purego.RegisterFunc(&fn, p)
	return func(in unsafe.Pointer, stride int, out unsafe.Pointer, index *uint, n int) {
		fn(in, stride, out, index, uint(n))
	}, nil
}
