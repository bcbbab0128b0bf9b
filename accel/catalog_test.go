package accel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolAssemblyFamilies(t *testing.T) {
	f64, ok := precisionFor(Float64)
	require.True(t, ok)
	f32, ok := precisionFor(Float32)
	require.True(t, ok)

	// Family A (vForce): float64 is the unsuffixed default.
	sqrt := Operation{Name: "sqrt", Category: CategoryUnary, Stem: "sqrt"}
	assert.Equal(t, "vvsqrt", sqrt.Symbol(f64))
	assert.Equal(t, "vvsqrtf", sqrt.Symbol(f32))

	// Family B (vDSP): float32 is the unsuffixed default. The suffix
	// direction reverses between the families.
	add := Operation{Name: "add", Category: CategoryBinary, Stem: "vadd"}
	assert.Equal(t, "vDSP_vaddD", add.Symbol(f64))
	assert.Equal(t, "vDSP_vadd", add.Symbol(f32))

	sum := Operation{Name: "sum", Category: CategoryReduce, Stem: "sve"}
	assert.Equal(t, "vDSP_sveD", sum.Symbol(f64))
	assert.Equal(t, "vDSP_sve", sum.Symbol(f32))

	maxvi := Operation{Name: "findmax", Category: CategoryReduceIndexed, Stem: "maxvi"}
	assert.Equal(t, "vDSP_maxviD", maxvi.Symbol(f64))
	assert.Equal(t, "vDSP_maxvi", maxvi.Symbol(f32))
}

func TestCatalogSymbolsCoveredByFallback(t *testing.T) {
	// The fallback's symbol table doubles as the export list the assembly
	// rules are validated against: every catalog symbol must resolve, at
	// both precisions, in the category the catalog claims.
	b := Fallback()
	for _, op := range Operations() {
		for _, p := range Precisions() {
			sym := op.Symbol(p)
			var err error
			switch op.Category {
			case CategoryUnary:
				_, err = b.ResolveUnary(sym)
			case CategoryBinary:
				_, err = b.ResolveBinary(sym)
			case CategoryReduce:
				_, err = b.ResolveReduce(sym)
			case CategoryReduceIndexed:
				_, err = b.ResolveReduceIndex(sym)
			}
			assert.NoError(t, err, "op %s (%s) symbol %s", op.Name, p.Type, sym)
		}
	}
}

func TestFallbackTableHasNoStraySymbols(t *testing.T) {
	want := make(map[string]bool)
	for _, op := range Operations() {
		for _, p := range Precisions() {
			want[op.Symbol(p)] = true
		}
	}
	for sym := range fallbackSymbols() {
		assert.True(t, want[sym], "fallback exports %s, not in catalog", sym)
	}
	assert.Len(t, fallbackSymbols(), len(want))
}

func TestResolveWrongCategory(t *testing.T) {
	b := Fallback()

	// vvsqrt exists, but not as a binary routine.
	_, err := b.ResolveBinary("vvsqrt")
	require.ErrorIs(t, err, errSymbolWrongKind)

	_, err = b.ResolveUnary("no_such_symbol")
	require.ErrorIs(t, err, errSymbolNotFound)
}

func TestOperationsAndPrecisionsAreCopies(t *testing.T) {
	ops := Operations()
	ops[0].Name = "clobbered"
	assert.NotEqual(t, "clobbered", Operations()[0].Name)

	ps := Precisions()
	ps[0].DSPSuffix = "clobbered"
	assert.NotEqual(t, "clobbered", Precisions()[0].DSPSuffix)
}

func TestOperandReversalFlags(t *testing.T) {
	reversed := map[string]bool{"sub": true, "div": true}
	for _, op := range Operations() {
		if op.Category != CategoryBinary {
			assert.False(t, op.ReverseOperands, "op %s", op.Name)
			continue
		}
		assert.Equal(t, reversed[op.Name], op.ReverseOperands, "op %s", op.Name)
	}
}
