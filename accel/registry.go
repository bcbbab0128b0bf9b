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
	"strings"
	"sync"
)

// Key identifies one registered entry point: the logical operation name
// plus the ordered argument element-type signature, e.g.
// ("sub", "(float64, float64)").
type Key struct {
	Name      string
	Signature string
}

// Entry associates a Key with the generated entry point backing it. Ref is
// a qualified identifier ("backend:symbol") for external dispatch layers
// that select among competing backends; Impl holds the typed function
// value itself.
type Entry struct {
	Key  Key
	Ref  string
	Impl any
}

// Registry is the table mapping (operation, signature) to implementations.
//
// Discipline is write-during-init-then-freeze: Bind populates a registry
// in one deterministic pass (catalog order, float64 before float32), and
// afterwards the registry is treated as read-only. Lookup and Enumerate
// are safe for concurrent callers once binding has completed.
//
// A second Register under an identical key overwrites the earlier
// implementation (last writer wins) but keeps the key's original position
// in the enumeration order.
type Registry struct {
	mu      sync.RWMutex
	entries map[Key]Entry
	order   []Key
}

// Global is the default registry, populated by Default. Construct separate
// instances with NewRegistry when the lifecycle must be explicit, e.g. in
// tests.
var Global = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Key]Entry)}
}

// Register records impl under (name, signature).
func (r *Registry) Register(name, signature, ref string, impl any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := Key{Name: name, Signature: signature}
	if _, exists := r.entries[k]; !exists {
		r.order = append(r.order, k)
	}
	r.entries[k] = Entry{Key: k, Ref: ref, Impl: impl}
}

// Lookup returns the entry registered under (name, signature), or
// ErrNotFound.
func (r *Registry) Lookup(name, signature string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[Key{Name: name, Signature: signature}]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Enumerate returns all entries in registration order.
func (r *Registry) Enumerate() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.entries[k])
	}
	return out
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Reset clears the registry. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[Key]Entry)
	r.order = nil
}

func signatureOf(types ...ElemType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func lookupAs[F any](r *Registry, name string, types ...ElemType) (F, error) {
	var zero F
	sig := signatureOf(types...)
	e, err := r.Lookup(name, sig)
	if err != nil {
		return zero, err
	}
	fn, ok := e.Impl.(F)
	if !ok {
		return zero, &ArgumentError{
			Name:      name,
			Signature: sig,
			Want:      typeName[F](),
			Got:       typeNameOf(e.Impl),
		}
	}
	return fn, nil
}

func typeName[F any]() string {
	var zero F
	return fmt.Sprintf("%T", zero)
}

func typeNameOf(v any) string {
	return fmt.Sprintf("%T", v)
}

// Typed accessors for the type-erased registry boundary. These exist for
// external dispatch layers; direct callers should hold the Lib's function
// values instead.

// elemTypeFor reports the ElemType of T for an accessor named name.
// Named floating-point types have no native symbols; that is an
// *ArgumentError here, like any other type mismatch at this boundary.
func elemTypeFor[T Floats](name string) (ElemType, error) {
	et, err := elemTypeOf[T]()
	if err != nil {
		return 0, &ArgumentError{
			Name: name,
			Want: "float64 or float32",
			Got:  typeName[T](),
		}
	}
	return et, nil
}

// UnaryOf returns the allocating unary entry point registered under name
// for element type T.
func UnaryOf[T Floats](r *Registry, name string) (UnaryFunc[T], error) {
	et, err := elemTypeFor[T](name)
	if err != nil {
		return nil, err
	}
	return lookupAs[UnaryFunc[T]](r, name, et)
}

// UnaryInPlaceOf returns the in-place unary entry point registered under
// name for element type T.
func UnaryInPlaceOf[T Floats](r *Registry, name string) (UnaryInPlaceFunc[T], error) {
	et, err := elemTypeFor[T](name)
	if err != nil {
		return nil, err
	}
	return lookupAs[UnaryInPlaceFunc[T]](r, name, et, et)
}

// BinaryOf returns the allocating binary entry point registered under name
// for element type T.
func BinaryOf[T Floats](r *Registry, name string) (BinaryFunc[T], error) {
	et, err := elemTypeFor[T](name)
	if err != nil {
		return nil, err
	}
	return lookupAs[BinaryFunc[T]](r, name, et, et)
}

// BinaryInPlaceOf returns the in-place binary entry point registered under
// name for element type T.
func BinaryInPlaceOf[T Floats](r *Registry, name string) (BinaryInPlaceFunc[T], error) {
	et, err := elemTypeFor[T](name)
	if err != nil {
		return nil, err
	}
	return lookupAs[BinaryInPlaceFunc[T]](r, name, et, et, et)
}

// ReduceOf returns the scalar reduction registered under name for element
// type T.
func ReduceOf[T Floats](r *Registry, name string) (ReduceFunc[T], error) {
	et, err := elemTypeFor[T](name)
	if err != nil {
		return nil, err
	}
	return lookupAs[ReduceFunc[T]](r, name, et)
}

// ReduceIndexOf returns the indexed reduction registered under name for
// element type T.
func ReduceIndexOf[T Floats](r *Registry, name string) (ReduceIndexFunc[T], error) {
	et, err := elemTypeFor[T](name)
	if err != nil {
		return nil, err
	}
	return lookupAs[ReduceIndexFunc[T]](r, name, et)
}
