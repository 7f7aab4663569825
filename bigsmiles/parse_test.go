package bigsmiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string, opts ...ParseOption) *Graph {
	t.Helper()
	g, err := Parse(src, opts...)
	require.NoError(t, err, "input: %q", src)
	return g
}

func diagsByRule(g *Graph, rule string) []Diagnostic {
	var out []Diagnostic
	for _, d := range g.Diagnostics {
		if d.Rule == rule {
			out = append(out, d)
		}
	}
	return out
}

func hasRule(g *Graph, rule string) bool {
	return len(diagsByRule(g, rule)) > 0
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t"} {
		g, err := Parse(input)
		require.NoError(t, err, "input: %q", input)
		assert.True(t, g.Empty(), "input: %q", input)
	}
}

func TestParseSingleAtom(t *testing.T) {
	g := mustParse(t, "C")
	atoms := g.Atoms()
	require.Len(t, atoms, 1)
	assert.Equal(t, "C", atoms[0].Symbol)
	assert.Equal(t, 4, atoms[0].ImplicitHydrogens())
}

func TestParseDoubleBondHydrogens(t *testing.T) {
	g := mustParse(t, "C=C")
	atoms := g.Atoms()
	require.Len(t, atoms, 2)
	assert.Equal(t, 2, atoms[0].ImplicitHydrogens())
	assert.Equal(t, 2, atoms[1].ImplicitHydrogens())
}

func TestParseRingClosure(t *testing.T) {
	g := mustParse(t, "C1CCCCC1")
	atoms := g.Atoms()
	require.Len(t, atoms, 6)
	require.Len(t, g.Rings, 1)
	ring := g.Rings[0]
	assert.Equal(t, 1, ring.RingID)
	assert.Same(t, atoms[0], ring.Atom1)
	assert.Same(t, atoms[5], ring.Atom2)
	assert.Len(t, g.Bonds(), 6)
}

func TestParseBenzene(t *testing.T) {
	g := mustParse(t, "c1ccccc1")
	atoms := g.Atoms()
	require.Len(t, atoms, 6)
	for i, a := range atoms {
		assert.True(t, a.Aromatic, "atom %d", i)
		assert.Equal(t, 1, a.ImplicitHydrogens(), "atom %d", i)
	}
	for _, bond := range g.Bonds() {
		assert.Equal(t, 1.5, bond.Order())
	}
	assert.False(t, hasRule(g, "valence"))
}

func TestParseStochasticObject(t *testing.T) {
	g := mustParse(t, "CC{[>][<]CC(C)[>][<]}CC(C)=C")
	objects := g.StochasticObjects()
	require.Len(t, objects, 1)
	so := objects[0]
	require.Len(t, so.Fragments, 1)
	assert.Equal(t, ">", so.LeftDescriptor.Symbol)
	assert.Equal(t, "<", so.RightDescriptor.Symbol)
	require.NotNil(t, so.LeftBond)
	require.NotNil(t, so.RightBond)
	assert.Len(t, so.Fragments[0].Descriptors, 2)
	assert.False(t, hasRule(g, "descriptor-pairing"))
}

func TestParseRingClosureOnStochasticObject(t *testing.T) {
	g := mustParse(t, "C1{[$][$]CC[$][$]}1")
	assert.Equal(t, "C1{[$][$]CC[$][$]}1", g.String())

	objects := g.StochasticObjects()
	require.Len(t, objects, 1)
	so := objects[0]
	require.NotNil(t, so.RightBond)
	assert.NotZero(t, so.RightBond.RingID)
	assert.NotSame(t, so.LeftBond, so.RightBond)

	// The ring becomes the object's right end bond; no end-group hydrogen
	// is inserted and nothing merges into the left joining bond.
	atoms := g.Atoms()
	require.Len(t, atoms, 3)
	assert.Same(t, atoms[0], so.RightBond.Atom1)
	assert.False(t, hasRule(g, "ring-duplicate"))
}

func TestParseRingThroughStochasticObjectRoundTrip(t *testing.T) {
	inputs := []string{
		"C1{[$][$]CC[$][$]}1",
		"C1{[>][<]CCO[>][<]}CO1",
	}
	for _, input := range inputs {
		g := mustParse(t, input)
		assert.Equal(t, input, g.String(), "input: %q", input)
	}
}

func TestParseStochasticSeparator(t *testing.T) {
	g := mustParse(t, "{[][$]CC[$],[$]CC(C)[$][]}")
	objects := g.StochasticObjects()
	require.Len(t, objects, 1)
	assert.Len(t, objects[0].Fragments, 2)
	assert.Equal(t, ",", objects[0].Separator)
}

func TestParseMixedSeparatorsFatal(t *testing.T) {
	_, err := Parse("{[][$]CC[$],[$]CC[$];[$]OO[$][]}")
	require.Error(t, err)
	var se *SyntaxError
	assert.ErrorAs(t, err, &se)
}

func TestParseImplicitEndGroupHydrogens(t *testing.T) {
	g := mustParse(t, "{[$][$]CC[$][$]}")
	assert.Equal(t, "[H]{[$][$]CC[$][$]}[H]", g.String())
	atoms := g.Atoms()
	require.Len(t, atoms, 4)
	assert.Equal(t, "H", atoms[0].Symbol)
	assert.Equal(t, "H", atoms[3].Symbol)

	g = mustParse(t, "C{[$][$]CC[$][$]}")
	assert.Equal(t, "C{[$][$]CC[$][$]}[H]", g.String())
}

func TestParseRingReuseRenumbers(t *testing.T) {
	g := mustParse(t, "O1CCCCC1N1CCCCC1")
	assert.Equal(t, "O1CCCCC1N2CCCCC2", g.String())
	assert.True(t, hasRule(g, "ring-reuse"))
}

func TestParseDuplicateRingMerges(t *testing.T) {
	g := mustParse(t, "C12CCCCC12")
	assert.Equal(t, "C=1CCCCC1", g.String())
	assert.True(t, hasRule(g, "ring-duplicate"))
}

func TestParseDisconnectRingPairCollapses(t *testing.T) {
	g := mustParse(t, "C1.C1")
	assert.Equal(t, "CC", g.String())
}

func TestParseValenceWarnings(t *testing.T) {
	for _, input := range []string{"[N]1CC1", "O=n1ccccc1"} {
		g := mustParse(t, input)
		assert.Equal(t, input, g.String(), "input: %q", input)
		assert.True(t, hasRule(g, "valence"), "input: %q", input)
	}
}

func TestParseDescriptorPairingWarning(t *testing.T) {
	g := mustParse(t, "{[][<]CC[<][]}")
	diags := diagsByRule(g, "descriptor-pairing")
	require.NotEmpty(t, diags)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
}

func TestParseRoundTripCanonical(t *testing.T) {
	inputs := []string{
		"CC",
		"C=C",
		"CC(C)CC",
		"C1CCCCC1",
		"c1ccccc1",
		"C=1CCCCC1",
		"F/C=C/F",
		"C.C",
		"[Na+].[Cl-]",
		"[13C@H+:1]",
		"[CH3:1][CH2:2]O",
		"CC{[>][<]CC(C)[>][<]}CC(C)=C",
		"{[][$]CC[$][]}",
		"{[][<]CC(C)[>][]}",
	}
	for _, input := range inputs {
		g := mustParse(t, input)
		assert.Equal(t, input, g.String(), "input: %q", input)
	}
}

func TestParseNormalizingFixedPoint(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[ClH1]", "[ClH]"},
		{"[Fe++]", "[Fe+2]"},
		{"CC(CC)(CC)", "CC(CC)CC"},
		{"C{[$1][$1]CC[$1][$1]}C", "C{[$][$]CC[$][$]}C"},
		{"{[$][$]CC[$][$]}", "[H]{[$][$]CC[$][$]}[H]"},
	}
	for _, tt := range tests {
		g := mustParse(t, tt.input)
		require.Equal(t, tt.want, g.String(), "input: %q", tt.input)
		again := mustParse(t, g.String())
		assert.Equal(t, tt.want, again.String(), "re-parse of %q", tt.want)
	}
}

func TestParseWithoutSyntaxFixes(t *testing.T) {
	g := mustParse(t, "CC(CC)(CC)", WithoutSyntaxFixes())
	assert.Equal(t, "CC(CC)(CC)", g.String())
}

func TestParseWithoutValidation(t *testing.T) {
	g := mustParse(t, "[N]1CC1", WithoutValidation())
	assert.False(t, hasRule(g, "valence"))
}

func TestParseFatalInputs(t *testing.T) {
	tests := []struct {
		input  string
		target any
	}{
		{"DJW", new(*TokenizeError)},
		{"[C", new(*ScopeError)},
		{"[C]]", new(*ScopeError)},
		{"[]", new(*SyntaxError)},
		{"[.]", new(*FieldError)},
		{"CCCCC1", new(*RingError)},
		{"CCCC(", new(*ScopeError)},
		{"CCCC)", new(*ScopeError)},
		{"((CC))", new(*SyntaxError)},
		{"C((C)C)", new(*SyntaxError)},
		{"CCC,C", new(*SyntaxError)},
		{"CC}CC", new(*ScopeError)},
		{"CC{CC", new(*ScopeError)},
		{"{CC}", new(*SyntaxError)},
		{"{[]CC[]}", new(*SyntaxError)},
		{"CC({[][$]CC[]})CC", new(*SyntaxError)},
	}
	for _, tt := range tests {
		_, err := Parse(tt.input)
		require.Error(t, err, "input: %q", tt.input)
		assert.ErrorAs(t, err, tt.target, "input: %q", tt.input)
	}
}

func TestParseBareElementNeedsBrackets(t *testing.T) {
	_, err := Parse("CCAu")
	require.Error(t, err)
	var ee *ElementError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "Au", ee.Symbol)
}

func TestParseReactionArrowRejected(t *testing.T) {
	_, err := Parse("CC>>CC")
	require.Error(t, err)
	var se *SyntaxError
	assert.ErrorAs(t, err, &se)
}

func TestParseLadderDescriptorRejected(t *testing.T) {
	_, err := Parse("{[$1[$2]1]CC[$1[$2]1]}")
	require.Error(t, err)
	var se *SyntaxError
	assert.ErrorAs(t, err, &se)
}

func TestParseUnclosedRingInFragment(t *testing.T) {
	_, err := Parse("{[][$]C1CC[$][]}")
	require.Error(t, err)
	var re *RingError
	assert.ErrorAs(t, err, &re)
}

func TestParseErrorMentionsInput(t *testing.T) {
	_, err := Parse("CCC,C")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"CCC,C"`)
}
