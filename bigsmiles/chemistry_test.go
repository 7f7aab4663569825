package bigsmiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBondOrderTable(t *testing.T) {
	tests := []struct {
		symbol string
		order  float64
	}{
		{".", 0},
		{"", 1},
		{"-", 1},
		{"/", 1},
		{"\\", 1},
		{":", 1.5},
		{"=", 2},
		{"#", 3},
		{"$", 4},
	}
	for _, tt := range tests {
		order, ok := BondOrder(tt.symbol)
		require.True(t, ok, "symbol: %q", tt.symbol)
		assert.Equal(t, tt.order, order, "symbol: %q", tt.symbol)
	}

	_, ok := BondOrder("~")
	assert.False(t, ok)
}

func TestSymbolPredicates(t *testing.T) {
	assert.True(t, IsElement("Fe"))
	assert.False(t, IsElement("Fx"))
	assert.True(t, IsOrganicSubset("Cl"))
	assert.False(t, IsOrganicSubset("Fe"))
	assert.True(t, IsAromaticSymbol("c"))
	assert.False(t, IsAromaticSymbol("C"))
}

func TestAtomValenceHelpers(t *testing.T) {
	g := mustParse(t, "C=C")
	a := g.Atoms()[0]
	assert.Equal(t, 2, a.BondsAvailable())
	assert.True(t, a.FullValence())

	g = mustParse(t, "[N]1CC1")
	n := g.Atoms()[0]
	assert.Equal(t, 1, n.BondsAvailable())
	assert.False(t, n.FullValence())
}
