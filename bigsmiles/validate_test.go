package bigsmiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCleanGraph(t *testing.T) {
	g := mustParse(t, "CC{[>][<]CC[>][<]}CC")
	assert.Empty(t, Validate(g))
}

func TestValidateDescriptorPairing(t *testing.T) {
	g := mustParse(t, "{[][<]CC[<][]}", WithoutValidation())
	diags := Validate(g)
	require.NotEmpty(t, diags)
	assert.Equal(t, "descriptor-pairing", diags[0].Rule)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "[<1]")
	assert.Contains(t, diags[0].Message, "[>1]")
}

func TestValidateDollarNeedsTwoInstances(t *testing.T) {
	g := mustParse(t, "{[][$]CC[$2][]}", WithoutValidation())
	diags := Validate(g)
	rules := map[string]int{}
	for _, d := range diags {
		rules[d.Rule]++
	}
	assert.Equal(t, 2, rules["descriptor-pairing"], "both lone $ descriptors flagged")
}

func TestValidateIncompleteValence(t *testing.T) {
	g := mustParse(t, "[N]1CC1", WithoutValidation())
	diags := Validate(g)
	require.NotEmpty(t, diags)
	assert.Equal(t, "valence", diags[0].Rule)
	assert.Contains(t, diags[0].Message, "incomplete")
	assert.Equal(t, NodeAtom, diags[0].Node.Kind)
	assert.Equal(t, 0, diags[0].Node.Index)
}

func TestValidateValenceOverflow(t *testing.T) {
	g := mustParse(t, "O=n1ccccc1", WithoutValidation())
	diags := Validate(g)
	require.NotEmpty(t, diags)
	assert.Equal(t, "valence", diags[0].Rule)
	assert.Contains(t, diags[0].Message, "exceeds")
}

func TestValidateUnknownValenceSkipped(t *testing.T) {
	g := mustParse(t, "[Fe+2]", WithoutValidation())
	assert.Empty(t, Validate(g))
}

func TestValidateOrError(t *testing.T) {
	g := mustParse(t, "[N]1CC1", WithoutValidation())
	diags, err := ValidateOrError(g)
	require.NoError(t, err, "warnings are not errors")
	assert.NotEmpty(t, diags)
}

type failEverythingRule struct{}

func (failEverythingRule) Name() string { return "fail-everything" }

func (failEverythingRule) Apply(g *Graph) []Diagnostic {
	return []Diagnostic{{Rule: "fail-everything", Severity: SeverityError, Message: "no graph is good enough"}}
}

func TestValidateOrErrorWithExtraRule(t *testing.T) {
	g := mustParse(t, "CC")
	diags, err := ValidateOrError(g, failEverythingRule{})
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Diagnostics, 1)
	assert.Equal(t, "fail-everything", ve.Diagnostics[0].Rule)
	assert.NotEmpty(t, diags)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Rule: "valence", Severity: SeverityWarning, Message: "atom 0 (N) has an incomplete valence: 2 of 3 filled", Fix: "add hydrogens"}
	s := d.String()
	assert.Contains(t, s, "[WARNING]")
	assert.Contains(t, s, "valence:")
	assert.Contains(t, s, "-- fix: add hydrogens")
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "ERROR", SeverityError.String())
	assert.Equal(t, "WARNING", SeverityWarning.String())
	assert.Equal(t, "INFO", SeverityInfo.String())
}
