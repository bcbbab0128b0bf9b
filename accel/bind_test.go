package accel

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindRegistersEveryPair(t *testing.T) {
	reg := NewRegistry()
	_, err := Bind(Fallback(), reg)
	require.NoError(t, err)

	// Pointwise ops contribute two entries per precision (allocating and
	// in-place); reductions one.
	want := 0
	for _, op := range Operations() {
		switch op.Category {
		case CategoryUnary, CategoryBinary:
			want += 4
		default:
			want += 2
		}
	}
	assert.Equal(t, want, reg.Len())

	for _, op := range Operations() {
		for _, et := range []ElemType{Float64, Float32} {
			var sigs []string
			switch op.Category {
			case CategoryUnary:
				sigs = []string{signatureOf(et), signatureOf(et, et)}
			case CategoryBinary:
				sigs = []string{signatureOf(et, et), signatureOf(et, et, et)}
			default:
				sigs = []string{signatureOf(et)}
			}
			for _, sig := range sigs {
				e, err := reg.Lookup(op.Name, sig)
				require.NoError(t, err, "missing %s %s", op.Name, sig)
				assert.NotNil(t, e.Impl)
				assert.Contains(t, e.Ref, "fallback:")
			}
		}
	}
}

func TestBindEnumerationOrderDeterministic(t *testing.T) {
	reg := NewRegistry()
	_, err := Bind(Fallback(), reg)
	require.NoError(t, err)

	entries := reg.Enumerate()
	require.Greater(t, len(entries), 4)

	// Operation-major, float64 before float32, allocating before in-place.
	first := Operations()[0]
	assert.Equal(t, Key{Name: first.Name, Signature: "(float64)"}, entries[0].Key)
	assert.Equal(t, Key{Name: first.Name, Signature: "(float64, float64)"}, entries[1].Key)
	assert.Equal(t, Key{Name: first.Name, Signature: "(float32)"}, entries[2].Key)
	assert.Equal(t, Key{Name: first.Name, Signature: "(float32, float32)"}, entries[3].Key)

	// A second bind into a fresh registry produces the identical sequence.
	reg2 := NewRegistry()
	_, err = Bind(Fallback(), reg2)
	require.NoError(t, err)
	entries2 := reg2.Enumerate()
	require.Equal(t, len(entries), len(entries2))
	for i := range entries {
		assert.Equal(t, entries[i].Key, entries2[i].Key)
	}
}

// missingBackend hides one symbol from an otherwise complete backend.
type missingBackend struct {
	Backend
	symbol string
}

func (m *missingBackend) ResolveUnary(symbol string) (UnaryKernel, error) {
	if symbol == m.symbol {
		return nil, fmt.Errorf("%q: %w", symbol, errSymbolNotFound)
	}
	return m.Backend.ResolveUnary(symbol)
}

func (m *missingBackend) ResolveBinary(symbol string) (BinaryKernel, error) {
	if symbol == m.symbol {
		return nil, fmt.Errorf("%q: %w", symbol, errSymbolNotFound)
	}
	return m.Backend.ResolveBinary(symbol)
}

func TestBindFailsFastOnUnresolvableSymbol(t *testing.T) {
	reg := NewRegistry()
	lib, err := Bind(&missingBackend{Backend: Fallback(), symbol: "vvsqrtf"}, reg)

	assert.Nil(t, lib)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "sqrt", cfgErr.Op)
	assert.Equal(t, "vvsqrtf", cfgErr.Symbol)
	assert.ErrorIs(t, err, errSymbolNotFound)
	assert.Equal(t, 0, reg.Len())
}

func TestFailedBindLeavesRegistryEmpty(t *testing.T) {
	// The failing symbol sits well into the catalog, so many operations
	// resolve before the failure. None of them may leak into the registry;
	// a partial binding set is a correctness hazard for dispatch.
	reg := NewRegistry()
	lib, err := Bind(&missingBackend{Backend: Fallback(), symbol: "vDSP_vsubD"}, reg)

	assert.Nil(t, lib)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "sub", cfgErr.Op)

	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Enumerate())
	_, err = reg.Lookup("add", "(float64, float64)")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = reg.Lookup("sqrt", "(float64)")
	assert.ErrorIs(t, err, ErrNotFound)
}

// countingBackend counts kernel invocations, not resolutions.
type countingBackend struct {
	inner Backend
	calls int
}

func (c *countingBackend) Name() string { return "counting" }

func (c *countingBackend) ResolveUnary(symbol string) (UnaryKernel, error) {
	k, err := c.inner.ResolveUnary(symbol)
	if err != nil {
		return nil, err
	}
	return func(out, in unsafe.Pointer, n int) {
		c.calls++
		k(out, in, n)
	}, nil
}

func (c *countingBackend) ResolveBinary(symbol string) (BinaryKernel, error) {
	k, err := c.inner.ResolveBinary(symbol)
	if err != nil {
		return nil, err
	}
	return func(a unsafe.Pointer, sa int, b unsafe.Pointer, sb int, out unsafe.Pointer, so int, n int) {
		c.calls++
		k(a, sa, b, sb, out, so, n)
	}, nil
}

func (c *countingBackend) ResolveReduce(symbol string) (ReduceKernel, error) {
	k, err := c.inner.ResolveReduce(symbol)
	if err != nil {
		return nil, err
	}
	return func(in unsafe.Pointer, stride int, out unsafe.Pointer, n int) {
		c.calls++
		k(in, stride, out, n)
	}, nil
}

func (c *countingBackend) ResolveReduceIndex(symbol string) (ReduceIndexKernel, error) {
	k, err := c.inner.ResolveReduceIndex(symbol)
	if err != nil {
		return nil, err
	}
	return func(in unsafe.Pointer, stride int, out unsafe.Pointer, index *uint, n int) {
		c.calls++
		k(in, stride, out, index, n)
	}, nil
}

func TestPreconditionRejectedBeforeNativeCall(t *testing.T) {
	cb := &countingBackend{inner: Fallback()}
	lib, err := Bind(cb, NewRegistry())
	require.NoError(t, err)
	cb.calls = 0

	assert.PanicsWithError(t, "accel: sqrt: vector length mismatch: want 3, got 2", func() {
		lib.F64.SqrtInPlace(make([]float64, 2), []float64{1, 4, 9})
	})
	assert.PanicsWithError(t, "accel: add: vector length mismatch: want 2, got 3", func() {
		lib.F64.AddInPlace(make([]float64, 2), []float64{1, 2}, []float64{1, 2, 3})
	})
	assert.PanicsWithError(t, "accel: findmax: empty vector has no extremum index", func() {
		lib.F64.FindMax(nil)
	})
	assert.Equal(t, 0, cb.calls, "native kernel reached despite precondition violation")

	lib.F64.SqrtInPlace(make([]float64, 3), []float64{1, 4, 9})
	assert.Equal(t, 1, cb.calls)
}

func TestPreconditionErrorType(t *testing.T) {
	lib, err := Bind(Fallback(), NewRegistry())
	require.NoError(t, err)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		var pe *PreconditionError
		require.True(t, errors.As(r.(error), &pe))
		assert.Equal(t, "mul", pe.Op)
	}()
	lib.F64.MulInPlace(make([]float64, 1), []float64{1, 2}, []float64{3, 4})
}

func TestAllocatingOutputLengthAndNoMutation(t *testing.T) {
	lib, err := Bind(Fallback(), NewRegistry())
	require.NoError(t, err)

	for _, n := range []int{0, 1, 5, 128} {
		x := make([]float64, n)
		y := make([]float64, n)
		for i := range x {
			x[i] = float64(i + 1)
			y[i] = float64(2 * (i + 1))
		}
		xOrig := make([]float64, n)
		yOrig := make([]float64, n)
		copy(xOrig, x)
		copy(yOrig, y)

		assert.Len(t, lib.F64.Sqrt(x), n)
		assert.Len(t, lib.F64.Add(x, y), n)
		assert.Len(t, lib.F64.Sub(x, y), n)

		assert.Equal(t, xOrig, x, "input mutated at n=%d", n)
		assert.Equal(t, yOrig, y, "input mutated at n=%d", n)
	}
}

func TestInPlaceReturnsSameStorage(t *testing.T) {
	lib, err := Bind(Fallback(), NewRegistry())
	require.NoError(t, err)

	dst := make([]float64, 3)
	got := lib.F64.SqrtInPlace(dst, []float64{1, 4, 9})
	assert.Equal(t, &dst[0], &got[0], "in-place result must share storage with dst")
	assert.Equal(t, []float64{1, 2, 3}, dst)

	got2 := lib.F64.AddInPlace(dst, []float64{1, 2, 3}, []float64{1, 2, 3})
	assert.Equal(t, &dst[0], &got2[0])
	assert.Equal(t, []float64{2, 4, 6}, dst)
}

func TestBindLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Bind(Fallback(), NewRegistry(), WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "bind complete")
	assert.Contains(t, out, "vvsqrt")
	assert.Contains(t, out, "vDSP_maxviD")
}

func TestDefaultIsSingleton(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Greater(t, Global.Len(), 0)
	assert.Same(t, Global, a.Registry())
}
