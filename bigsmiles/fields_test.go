package bigsmiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeAtomSymbolFullBracket(t *testing.T) {
	fields, err := TokenizeAtomSymbol("[13C@H+:1]")
	require.NoError(t, err)
	require.NotNil(t, fields.Isotope)
	assert.Equal(t, 13, *fields.Isotope)
	assert.Equal(t, "C", fields.Symbol)
	assert.Equal(t, "@", fields.Stereo)
	require.NotNil(t, fields.Hydrogens)
	assert.Equal(t, 1, *fields.Hydrogens)
	assert.Equal(t, 1, fields.Charge)
	require.NotNil(t, fields.Class)
	assert.Equal(t, 1, *fields.Class)
}

func TestTokenizeAtomSymbolBare(t *testing.T) {
	fields, err := TokenizeAtomSymbol("C")
	require.NoError(t, err)
	assert.Equal(t, "C", fields.Symbol)
	assert.False(t, fields.Aromatic)
	assert.Nil(t, fields.Hydrogens)
	assert.Nil(t, fields.Isotope)

	fields, err = TokenizeAtomSymbol("c")
	require.NoError(t, err)
	assert.Equal(t, "C", fields.Symbol)
	assert.True(t, fields.Aromatic)
}

func TestTokenizeAtomSymbolBareElementRejected(t *testing.T) {
	_, err := TokenizeAtomSymbol("Fe")
	require.Error(t, err)
	assert.IsType(t, &FieldError{}, err)
	assert.Contains(t, err.Error(), "requires brackets")
}

func TestTokenizeAtomSymbolCharges(t *testing.T) {
	tests := []struct {
		input  string
		charge int
	}{
		{"[N+]", 1},
		{"[O-]", -1},
		{"[Fe++]", 2},
		{"[Fe+2]", 2},
		{"[Ti+++]", 3},
		{"[S--]", -2},
		{"[S-2]", -2},
	}
	for _, tt := range tests {
		fields, err := TokenizeAtomSymbol(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.charge, fields.Charge, "input: %s", tt.input)
	}
}

func TestTokenizeAtomSymbolHydrogenCounts(t *testing.T) {
	tests := []struct {
		input string
		count int
	}{
		{"[C]", 0},
		{"[CH]", 1},
		{"[CH3]", 3},
		{"[ClH1]", 1},
	}
	for _, tt := range tests {
		fields, err := TokenizeAtomSymbol(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		require.NotNil(t, fields.Hydrogens, "input: %s", tt.input)
		assert.Equal(t, tt.count, *fields.Hydrogens, "input: %s", tt.input)
	}
}

func TestTokenizeAtomSymbolTwoLetterElement(t *testing.T) {
	fields, err := TokenizeAtomSymbol("[Zn+2]")
	require.NoError(t, err)
	assert.Equal(t, "Zn", fields.Symbol)
	assert.Equal(t, 2, fields.Charge)
}

func TestTokenizeAtomSymbolStereo(t *testing.T) {
	fields, err := TokenizeAtomSymbol("[C@@H]")
	require.NoError(t, err)
	assert.Equal(t, "@@", fields.Stereo)
	require.NotNil(t, fields.Hydrogens)
	assert.Equal(t, 1, *fields.Hydrogens)
}

func TestTokenizeAtomSymbolErrors(t *testing.T) {
	inputs := []string{
		"",
		"[.]",
		"[]",
		"[Xx]",
		"[C+-]",
		"[C++++]",
		"[C:]",
		"[Cqq]",
		"Dy2",
	}
	for _, input := range inputs {
		_, err := TokenizeAtomSymbol(input)
		require.Error(t, err, "input: %q", input)
		assert.IsType(t, &FieldError{}, err, "input: %q", input)
	}
}

func TestTokenizeBondingDescriptor(t *testing.T) {
	tests := []struct {
		input  string
		symbol string
		index  int
	}{
		{"[$1]", "$", 1},
		{"[>22]", ">", 22},
		{"[<]", "<", 1},
		{"[$]", "$", 1},
		{"[]", "", 1},
	}
	for _, tt := range tests {
		symbol, index, err := TokenizeBondingDescriptor(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.symbol, symbol, "input: %s", tt.input)
		assert.Equal(t, tt.index, index, "input: %s", tt.input)
	}
}

func TestTokenizeBondingDescriptorInvalid(t *testing.T) {
	_, _, err := TokenizeBondingDescriptor("[x1]")
	require.Error(t, err)
	assert.IsType(t, &FieldError{}, err)
}
