package bigsmiles

import (
	"fmt"
	"sort"
	"strings"
)

// ColorMode selects plain or ANSI-colored rendering.
type ColorMode int

const (
	ColorOff ColorMode = iota
	ColorOn
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
)

// RenderConfig controls string rendering. The zero value is the canonical
// compact form.
type RenderConfig struct {
	// ShowDescriptorIndexOne renders [<1] instead of [<].
	ShowDescriptorIndexOne bool
	// ShowAromaticBonds renders ':' aromatic bonds explicitly.
	ShowAromaticBonds bool
	// ShowRingBondOnBothAtoms renders the ring bond symbol at both ring
	// closure digits. Graphs containing a stochastic object always do.
	ShowRingBondOnBothAtoms bool
	Color                   ColorMode
}

// String renders the graph with the default configuration.
func (g *Graph) String() string {
	return Render(g, RenderConfig{})
}

// Render writes the graph back out as notation. Parsing canonical notation
// and rendering it returns the input; normalizing inputs round-trip to a
// fixed point.
func Render(g *Graph, cfg RenderConfig) string {
	r := renderer{cfg: cfg, ringOnBoth: cfg.ShowRingBondOnBothAtoms || len(g.StochasticObjects()) > 0}
	var sb strings.Builder
	r.nodes(&sb, g.Nodes)
	return sb.String()
}

type renderer struct {
	cfg        RenderConfig
	ringOnBoth bool
}

func (r *renderer) color(s, code string) string {
	if s == "" || r.cfg.Color != ColorOn {
		return s
	}
	return code + s + ansiReset
}

func (r *renderer) nodes(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *Atom:
			sb.WriteString(r.atom(v))
			sb.WriteString(r.ringClosures(v, v.Bonds))
		case *Bond:
			sb.WriteString(r.color(r.bondSymbol(v.Symbol), ansiBlue))
		case *BondingDescriptorAtom:
			sb.WriteString(r.color(r.descriptor(v.Descriptor), ansiGreen))
		case *Branch:
			sb.WriteString("(")
			r.nodes(sb, v.Nodes)
			sb.WriteString(")")
		case *StochasticObject:
			r.stochasticObject(sb, v)
		}
	}
}

func (r *renderer) bondSymbol(symbol string) string {
	if symbol == ":" && !r.cfg.ShowAromaticBonds {
		return ""
	}
	return symbol
}

// ringClosures renders the ring digits owned by a node, sorted by ring id.
// The bond symbol prints at the opening end; at the closing end only when
// ring bonds render on both ends. A stochastic object owns a ring digit
// through its right end bond, written after the closing brace.
func (r *renderer) ringClosures(owner Node, bonds []*Bond) string {
	type closure struct {
		id     int
		symbol string
	}
	var closures []closure
	for _, bond := range bonds {
		if bond == nil || bond.RingID == 0 {
			continue
		}
		symbol := r.bondSymbol(bond.Symbol)
		if bond.Atom2 == owner && !r.ringOnBoth {
			symbol = ""
		}
		closures = append(closures, closure{id: bond.RingID, symbol: symbol})
	}
	sort.Slice(closures, func(i, j int) bool { return closures[i].id < closures[j].id })

	var sb strings.Builder
	for _, c := range closures {
		sb.WriteString(r.color(c.symbol, ansiBlue))
		if c.id >= 10 {
			fmt.Fprintf(&sb, "%%%02d", c.id)
		} else {
			fmt.Fprintf(&sb, "%d", c.id)
		}
	}
	return sb.String()
}

func (r *renderer) atom(a *Atom) string {
	symbol := a.Symbol
	if a.Aromatic {
		symbol = strings.ToLower(symbol)
	}
	if !a.Bracket {
		return symbol
	}

	var sb strings.Builder
	sb.WriteString("[")
	if a.Isotope != nil {
		fmt.Fprintf(&sb, "%d", *a.Isotope)
	}
	sb.WriteString(symbol)
	sb.WriteString(a.Stereo)
	if h := a.explicitHydrogens(); h > 0 {
		sb.WriteString("H")
		if h > 1 {
			fmt.Fprintf(&sb, "%d", h)
		}
	}
	sb.WriteString(chargeText(a.Charge))
	if a.Class > 0 {
		fmt.Fprintf(&sb, ":%d", a.Class)
	}
	sb.WriteString("]")
	return sb.String()
}

func chargeText(charge int) string {
	switch {
	case charge == 0:
		return ""
	case charge == 1:
		return "+"
	case charge == -1:
		return "-"
	case charge > 1:
		return fmt.Sprintf("+%d", charge)
	default:
		return fmt.Sprintf("-%d", -charge)
	}
}

func (r *renderer) descriptor(d *BondingDescriptor) string {
	if d == nil || d.Symbol == "" {
		return "[]"
	}
	if d.Index > 1 || r.cfg.ShowDescriptorIndexOne {
		return fmt.Sprintf("[%s%d]", d.Symbol, d.Index)
	}
	return "[" + d.Symbol + "]"
}

func (r *renderer) stochasticObject(sb *strings.Builder, so *StochasticObject) {
	separator := so.Separator
	if separator == "" {
		separator = ","
	}
	sb.WriteString(r.color("{", ansiRed))
	sb.WriteString(r.color(r.descriptor(so.LeftDescriptor), ansiGreen))
	for i, frag := range so.Fragments {
		if i > 0 {
			sb.WriteString(separator)
		}
		r.nodes(sb, frag.Nodes)
	}
	sb.WriteString(r.color(r.descriptor(so.RightDescriptor), ansiGreen))
	sb.WriteString(r.color("}", ansiRed))
	sb.WriteString(r.ringClosures(so, []*Bond{so.RightBond}))
}
