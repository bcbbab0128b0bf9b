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
	"io"
	"log/slog"
)

// Lib holds the generated entry points for every (operation, precision)
// pair of the catalog. A Lib is immutable after Bind returns and safe for
// concurrent use.
type Lib struct {
	backend  Backend
	registry *Registry

	F64 Ops[float64]
	F32 Ops[float32]
}

// Backend returns the backend this Lib was bound against.
func (l *Lib) Backend() Backend { return l.backend }

// Registry returns the registry this Lib populated.
func (l *Lib) Registry() *Registry { return l.registry }

// Option configures a Bind call.
type Option func(*bindConfig)

type bindConfig struct {
	logger *slog.Logger
}

// WithLogger routes bind-time diagnostics (one debug line per bound
// symbol, an info summary) to l. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(c *bindConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Bind walks the operation catalog against both supported precisions,
// resolves every native symbol through b, wraps each in its entry points,
// assigns them to the returned Lib, and registers them in reg.
//
// Binding is a single-threaded, run-once pass: it fails fast with a
// *ConfigError on the first unresolvable symbol. Registrations are staged
// and committed to reg only after the whole catalog has resolved, so a
// failed bind leaves neither callable state in the Lib nor entries in reg.
// Iteration order is deterministic (catalog order, float64 before float32)
// so enumeration of reg is reproducible.
func Bind(b Backend, reg *Registry, opts ...Option) (*Lib, error) {
	cfg := bindConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	lib := &Lib{backend: b, registry: reg}
	var staged []stagedEntry
	for _, op := range catalog {
		if err := bindOp(b, &staged, &lib.F64, op, cfg.logger); err != nil {
			return nil, err
		}
		if err := bindOp(b, &staged, &lib.F32, op, cfg.logger); err != nil {
			return nil, err
		}
	}
	for _, s := range staged {
		reg.Register(s.name, s.signature, s.ref, s.impl)
	}
	cfg.logger.Info("accel: bind complete",
		"backend", b.Name(),
		"host", CurrentName(),
		"operations", len(catalog),
		"entries", reg.Len())
	return lib, nil
}

var errNoSlot = errors.New("operation has no slot in Ops")

// stagedEntry is a registry registration held back until the whole bind
// succeeds. A partial binding set must never become visible to dispatch.
type stagedEntry struct {
	name      string
	signature string
	ref       string
	impl      any
}

func bindOp[T Floats](b Backend, stage *[]stagedEntry, ops *Ops[T], op Operation, log *slog.Logger) error {
	et, err := elemTypeOf[T]()
	if err != nil {
		return &ConfigError{Backend: b.Name(), Op: op.Name, cause: err}
	}
	p, ok := precisionFor(et)
	if !ok {
		return &ConfigError{Backend: b.Name(), Op: op.Name, cause: errors.New("element type missing from precision table")}
	}
	sym := op.Symbol(p)
	ref := b.Name() + ":" + sym

	switch op.Category {
	case CategoryUnary:
		k, err := b.ResolveUnary(sym)
		if err != nil {
			return &ConfigError{Backend: b.Name(), Op: op.Name, Symbol: sym, cause: err}
		}
		allocSlot, inPlaceSlot := ops.unarySlots(op.Name)
		if allocSlot == nil {
			return &ConfigError{Backend: b.Name(), Op: op.Name, Symbol: sym, cause: errNoSlot}
		}
		alloc, inPlace := makeUnary[T](op, k)
		*allocSlot, *inPlaceSlot = alloc, inPlace
		*stage = append(*stage,
			stagedEntry{op.Name, signatureOf(et), ref, alloc},
			stagedEntry{op.Name, signatureOf(et, et), ref, inPlace})

	case CategoryBinary:
		k, err := b.ResolveBinary(sym)
		if err != nil {
			return &ConfigError{Backend: b.Name(), Op: op.Name, Symbol: sym, cause: err}
		}
		allocSlot, inPlaceSlot := ops.binarySlots(op.Name)
		if allocSlot == nil {
			return &ConfigError{Backend: b.Name(), Op: op.Name, Symbol: sym, cause: errNoSlot}
		}
		alloc, inPlace := makeBinary[T](op, k)
		*allocSlot, *inPlaceSlot = alloc, inPlace
		*stage = append(*stage,
			stagedEntry{op.Name, signatureOf(et, et), ref, alloc},
			stagedEntry{op.Name, signatureOf(et, et, et), ref, inPlace})

	case CategoryReduce:
		k, err := b.ResolveReduce(sym)
		if err != nil {
			return &ConfigError{Backend: b.Name(), Op: op.Name, Symbol: sym, cause: err}
		}
		slot := ops.reduceSlot(op.Name)
		if slot == nil {
			return &ConfigError{Backend: b.Name(), Op: op.Name, Symbol: sym, cause: errNoSlot}
		}
		fn := makeReduce[T](op, k)
		*slot = fn
		*stage = append(*stage, stagedEntry{op.Name, signatureOf(et), ref, fn})

	case CategoryReduceIndexed:
		k, err := b.ResolveReduceIndex(sym)
		if err != nil {
			return &ConfigError{Backend: b.Name(), Op: op.Name, Symbol: sym, cause: err}
		}
		slot := ops.reduceIndexSlot(op.Name)
		if slot == nil {
			return &ConfigError{Backend: b.Name(), Op: op.Name, Symbol: sym, cause: errNoSlot}
		}
		fn := makeReduceIndex[T](op, k)
		*slot = fn
		*stage = append(*stage, stagedEntry{op.Name, signatureOf(et), ref, fn})
	}

	log.Debug("accel: bound", "op", op.Name, "type", et.String(), "symbol", sym)
	return nil
}
