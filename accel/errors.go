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
)

var (
	// ErrNotFound is returned by Registry.Lookup when no implementation is
	// registered under the requested key.
	ErrNotFound = errors.New("accel: no implementation registered")

	// ErrBackendUnavailable is returned by Accelerate on platforms without
	// the native framework.
	ErrBackendUnavailable = errors.New("accel: native backend unavailable on this platform")
)

// ConfigError indicates that a (operation, precision) pair could not be
// bound: its native symbol did not resolve, or the element type is not one
// the backend supports. It is fatal to the whole bind; a partial binding
// set is a correctness hazard for downstream dispatch.
//
// The underlying resolution error (if any) can be accessed via errors.Unwrap.
type ConfigError struct {
	Backend string
	Op      string
	Symbol  string
	cause   error
}

func (e *ConfigError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("accel: binding %q on backend %q: %v", e.Op, e.Backend, e.cause)
	}
	return fmt.Sprintf("accel: binding %q: symbol %q via backend %q: %v", e.Op, e.Symbol, e.Backend, e.cause)
}

func (e *ConfigError) Unwrap() error { return e.cause }

// PreconditionError indicates an entry point was invoked with vectors that
// violate its length contract. It is raised as a panic value before any
// native call is made; passing mismatched lengths through would be
// out-of-bounds memory access inside the backend.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("accel: %s: %s", e.Op, e.Reason)
}

func lengthMismatch(op string, want, got int) *PreconditionError {
	return &PreconditionError{
		Op:     op,
		Reason: fmt.Sprintf("vector length mismatch: want %d, got %d", want, got),
	}
}

// ArgumentError indicates a type-erased registry boundary was asked for a
// type it was not generated for: either the registered implementation does
// not have the requested function type, or the requested element type is
// not one the catalog supports. Signature is empty in the latter case.
type ArgumentError struct {
	Name      string
	Signature string
	Want      string
	Got       string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("accel: %s%s: have %s, want %s",
		e.Name, e.Signature, e.Got, e.Want)
}
