package accel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterLookup(t *testing.T) {
	r := NewRegistry()
	fn := UnaryFunc[float64](func(x []float64) []float64 { return x })
	r.Register("sqrt", "(float64)", "fallback:vvsqrt", fn)

	e, err := r.Lookup("sqrt", "(float64)")
	require.NoError(t, err)
	assert.Equal(t, "fallback:vvsqrt", e.Ref)
	assert.NotNil(t, e.Impl)

	_, err = r.Lookup("sqrt", "(float32)")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Lookup("nope", "(float64)")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryLastWriterWins(t *testing.T) {
	r := NewRegistry()
	r.Register("sum", "(float64)", "backend-a:vDSP_sveD", 1)
	r.Register("mean", "(float64)", "backend-a:vDSP_meanvD", 2)
	r.Register("sum", "(float64)", "backend-b:vDSP_sveD", 3)

	e, err := r.Lookup("sum", "(float64)")
	require.NoError(t, err)
	assert.Equal(t, "backend-b:vDSP_sveD", e.Ref)
	assert.Equal(t, 3, e.Impl)

	// The overwritten key keeps its original enumeration position.
	entries := r.Enumerate()
	require.Len(t, entries, 2)
	assert.Equal(t, "sum", entries[0].Key.Name)
	assert.Equal(t, "backend-b:vDSP_sveD", entries[0].Ref)
	assert.Equal(t, "mean", entries[1].Key.Name)
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry()
	r.Register("sum", "(float64)", "x", 1)
	require.Equal(t, 1, r.Len())
	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Enumerate())
	_, err := r.Lookup("sum", "(float64)")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry()
	_, err := Bind(Fallback(), reg)
	require.NoError(t, err)

	// Post-bind readers racing a competing backend re-registering the same
	// key. Run under the race detector.
	const iters = 200
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				e, err := reg.Lookup("sqrt", "(float64)")
				if err != nil {
					t.Errorf("Lookup: %v", err)
					return
				}
				if e.Impl == nil {
					t.Error("Lookup returned nil Impl")
					return
				}
				if len(reg.Enumerate()) != reg.Len() {
					t.Error("Enumerate and Len disagree")
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		override := UnaryFunc[float64](func(x []float64) []float64 { return x })
		for i := 0; i < iters; i++ {
			reg.Register("sqrt", "(float64)", "other:vvsqrt", override)
		}
	}()
	wg.Wait()

	e, err := reg.Lookup("sqrt", "(float64)")
	require.NoError(t, err)
	assert.Equal(t, "other:vvsqrt", e.Ref)
}

func TestSignatureOf(t *testing.T) {
	assert.Equal(t, "(float64)", signatureOf(Float64))
	assert.Equal(t, "(float32, float32)", signatureOf(Float32, Float32))
	assert.Equal(t, "(float64, float64, float64)", signatureOf(Float64, Float64, Float64))
}

func TestTypedAccessors(t *testing.T) {
	reg := NewRegistry()
	lib, err := Bind(Fallback(), reg)
	require.NoError(t, err)

	sqrt, err := UnaryOf[float64](reg, "sqrt")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, sqrt([]float64{1, 4, 9}))

	sqrtIP, err := UnaryInPlaceOf[float32](reg, "sqrt")
	require.NoError(t, err)
	dst := make([]float32, 2)
	assert.Equal(t, []float32{2, 3}, sqrtIP(dst, []float32{4, 9}))

	sub, err := BinaryOf[float64](reg, "sub")
	require.NoError(t, err)
	assert.Equal(t, []float64{4}, sub([]float64{9}, []float64{5}))

	subIP, err := BinaryInPlaceOf[float64](reg, "sub")
	require.NoError(t, err)
	d := make([]float64, 1)
	assert.Equal(t, []float64{4}, subIP(d, []float64{9}, []float64{5}))

	sum, err := ReduceOf[float64](reg, "sum")
	require.NoError(t, err)
	assert.Equal(t, float64(10), sum([]float64{1, 2, 3, 4}))

	findmax, err := ReduceIndexOf[float64](reg, "findmax")
	require.NoError(t, err)
	v, i := findmax([]float64{3, 1, 4, 1, 5})
	assert.Equal(t, float64(5), v)
	assert.Equal(t, 5, i)

	// Same lookups resolve through the lib's fields too.
	assert.NotNil(t, lib.F64.Sqrt)
}

func TestTypedAccessorWrongKind(t *testing.T) {
	reg := NewRegistry()
	_, err := Bind(Fallback(), reg)
	require.NoError(t, err)

	// "findmax" is registered under "(float64)" as an indexed reduction;
	// asking for it as a plain reduction crosses the type-erased boundary
	// with the wrong type.
	_, err = ReduceOf[float64](reg, "findmax")
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "findmax", argErr.Name)

	// "add" has no single-argument form at all.
	_, err = UnaryOf[float64](reg, "add")
	assert.ErrorIs(t, err, ErrNotFound)
}

type metres float64

func TestTypedAccessorUnsupportedElementType(t *testing.T) {
	reg := NewRegistry()
	_, err := Bind(Fallback(), reg)
	require.NoError(t, err)

	// Named floating-point types have no native symbols; the rejection is
	// typed like any other mismatch at the type-erased boundary.
	_, err = UnaryOf[metres](reg, "sqrt")
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "sqrt", argErr.Name)
	assert.Contains(t, argErr.Got, "metres")
	assert.Equal(t, "float64 or float32", argErr.Want)

	_, err = ReduceOf[metres](reg, "sum")
	assert.ErrorAs(t, err, &argErr)
}
