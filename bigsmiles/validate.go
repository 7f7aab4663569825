package bigsmiles

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a validation diagnostic.
type Severity int

const (
	// SeverityError means the notation does not describe a usable molecule.
	SeverityError Severity = iota
	// SeverityWarning means the notation parses but is chemically suspect.
	SeverityWarning
	// SeverityInfo is an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Rule     string   // rule identifier (e.g., "valence")
	Severity Severity // ERROR, WARNING, or INFO
	Message  string   // human-readable description
	Node     NodeRef  // related node (optional)
	Fix      string   // suggested fix (optional)
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Rule, d.Message)
	if d.Fix != "" {
		fmt.Fprintf(&b, " -- fix: %s", d.Fix)
	}
	return b.String()
}

// LintRule is the interface for a single validation rule.
type LintRule interface {
	Name() string
	Apply(g *Graph) []Diagnostic
}

// ValidationError is returned by ValidateOrError when error-severity
// diagnostics exist.
type ValidationError struct {
	Diagnostics []Diagnostic
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, d := range e.Diagnostics {
		msgs = append(msgs, d.String())
	}
	return fmt.Sprintf("validation failed with %d error(s):\n  %s", len(e.Diagnostics), strings.Join(msgs, "\n  "))
}

// Validate runs all built-in rules (and any extra rules) against the graph.
// Returns all diagnostics regardless of severity.
func Validate(g *Graph, extraRules ...LintRule) []Diagnostic {
	rules := builtInRules()
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(g)...)
	}
	return diagnostics
}

// ValidateOrError runs Validate and returns an error if any error-severity
// diagnostics are found. Non-error diagnostics are still returned.
func ValidateOrError(g *Graph, extraRules ...LintRule) ([]Diagnostic, error) {
	diagnostics := Validate(g, extraRules...)

	var errors []Diagnostic
	for _, d := range diagnostics {
		if d.Severity == SeverityError {
			errors = append(errors, d)
		}
	}
	if len(errors) > 0 {
		return diagnostics, &ValidationError{Diagnostics: errors}
	}
	return diagnostics, nil
}

func builtInRules() []LintRule {
	return []LintRule{
		descriptorPairingRule{},
		valenceRule{},
	}
}

// descriptor-pairing: every directional descriptor needs a complementary
// partner in its object, and a '$' descriptor needs at least two instances.
type descriptorPairingRule struct{}

func (descriptorPairingRule) Name() string { return "descriptor-pairing" }

func (descriptorPairingRule) Apply(g *Graph) []Diagnostic {
	var diags []Diagnostic
	for i, so := range g.StochasticObjects() {
		for _, d := range so.Registry {
			if d.Symbol == "" || d.IsPaired(so.Registry) {
				continue
			}
			var msg, fix string
			if d.Symbol == "$" {
				msg = fmt.Sprintf("bonding descriptor [$%d] has fewer than two instances", d.Index)
				fix = fmt.Sprintf("add a second [$%d] or switch to a directional descriptor pair", d.Index)
			} else {
				partner := ">"
				if d.Symbol == ">" {
					partner = "<"
				}
				msg = fmt.Sprintf("bonding descriptor [%s%d] has no complementary [%s%d] partner", d.Symbol, d.Index, partner, d.Index)
				fix = fmt.Sprintf("add a [%s%d] descriptor to the stochastic object", partner, d.Index)
			}
			diags = append(diags, Diagnostic{
				Rule:     "descriptor-pairing",
				Severity: SeverityWarning,
				Message:  msg,
				Node:     NodeRef{Kind: NodeStochasticObject, Index: i},
				Fix:      fix,
			})
		}
	}
	return diags
}

// valence: an atom's bonds, explicit hydrogens, and charge should fit its
// tabulated valence exactly. Bare atoms absorb the slack as implicit
// hydrogens, so only overflow is reportable on them; bracket atoms declare
// their hydrogens and are flagged when under-filled too.
type valenceRule struct{}

func (valenceRule) Name() string { return "valence" }

func (valenceRule) Apply(g *Graph) []Diagnostic {
	var diags []Diagnostic
	for i, a := range g.Atoms() {
		if !a.ValenceKnown || a.FullValence() {
			continue
		}
		used := int(a.bondOrderSum()) + a.explicitHydrogens() + abs(a.Charge)
		switch {
		case a.BondsAvailable() == 0:
			diags = append(diags, Diagnostic{
				Rule:     "valence",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("atom %d (%s) exceeds its valence: %d bonds against a valence of %d", i, a.Symbol, used, a.Valence),
				Node:     NodeRef{Kind: NodeAtom, Index: i},
			})
		case a.Bracket:
			diags = append(diags, Diagnostic{
				Rule:     "valence",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("atom %d (%s) has an incomplete valence: %d of %d filled", i, a.Symbol, used, a.Valence),
				Node:     NodeRef{Kind: NodeAtom, Index: i},
				Fix:      "add hydrogens or bonds to complete the valence",
			})
		}
	}
	return diags
}
