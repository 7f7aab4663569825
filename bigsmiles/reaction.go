package bigsmiles

import (
	"fmt"
	"strings"
)

// Reaction is a parsed reaction notation: reactants and products, with
// optional agents for the two-arrow form.
type Reaction struct {
	Reactants []*Graph
	Agents    []*Graph
	Products  []*Graph
}

// ParseReaction parses "reactants >> products" or
// "reactants > agents > products". Each side is a comma-separated list of
// molecules; disconnected molecules written with '.' split into separate
// graphs when the pieces are truly independent.
func ParseReaction(src string) (*Reaction, error) {
	trimmed := strings.TrimSpace(src)
	sides, doubleArrow, err := splitArrows(trimmed)
	if err != nil {
		return nil, err
	}

	rxn := &Reaction{}
	assign := []*[]*Graph{&rxn.Reactants, &rxn.Products}
	if !doubleArrow {
		assign = []*[]*Graph{&rxn.Reactants, &rxn.Agents, &rxn.Products}
	}
	for i, side := range sides {
		graphs, err := parseReactionSide(side)
		if err != nil {
			return nil, err
		}
		*assign[i] = graphs
	}
	return rxn, nil
}

// splitArrows splits on reaction arrows, skipping '>' inside bonding
// descriptors (always preceded by '[').
func splitArrows(src string) ([]string, bool, error) {
	var sides []string
	var arrows []string
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] != '>' || (i > 0 && src[i-1] == '[') {
			continue
		}
		sides = append(sides, src[start:i])
		if i+1 < len(src) && src[i+1] == '>' {
			arrows = append(arrows, ">>")
			i++
		} else {
			arrows = append(arrows, ">")
		}
		start = i + 1
	}
	sides = append(sides, src[start:])

	switch {
	case len(arrows) == 1 && arrows[0] == ">>":
		return sides, true, nil
	case len(arrows) == 2 && arrows[0] == ">" && arrows[1] == ">":
		return sides, false, nil
	}
	return nil, false, newSyntaxError("reaction must be 'reactants >> products' or 'reactants > agents > products'")
}

func parseReactionSide(side string) ([]*Graph, error) {
	var graphs []*Graph
	for _, chunk := range splitTopLevelCommas(side) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			return nil, newSyntaxError("reaction side has an empty molecule")
		}
		g, err := Parse(chunk)
		if err != nil {
			return nil, err
		}
		split, err := splitDisconnected(g)
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, split...)
	}
	if len(graphs) == 0 {
		return nil, newSyntaxError("reaction side is empty")
	}
	return graphs, nil
}

// splitTopLevelCommas splits on commas outside braces and brackets, where
// commas separate molecules rather than stochastic fragments.
func splitTopLevelCommas(src string) []string {
	var chunks []string
	depth := 0
	start := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		case ',':
			if depth == 0 {
				chunks = append(chunks, src[start:i])
				start = i + 1
			}
		}
	}
	return append(chunks, src[start:])
}

// splitDisconnected breaks a graph at its top-level disconnect bonds. A cut
// is taken only when nothing crosses it: no ring bond bridges the two sides
// and the accumulated formal charge to the left is zero, so an ion pair like
// [Na+].[Cl-] stays one species.
func splitDisconnected(g *Graph) ([]*Graph, error) {
	var cuts []int
	for i, n := range g.Nodes {
		bond, ok := n.(*Bond)
		if !ok || bond.Order() != 0 {
			continue
		}
		if ringBridges(g, i) || chargeBefore(g, i) != 0 {
			continue
		}
		cuts = append(cuts, i)
	}
	if len(cuts) == 0 {
		return []*Graph{g}, nil
	}

	var graphs []*Graph
	start := 0
	boundaries := append(cuts, len(g.Nodes))
	for _, cut := range boundaries {
		segment := g.Nodes[start:cut]
		start = cut + 1
		if len(segment) == 0 {
			continue
		}
		piece, err := Parse(Render(&Graph{Nodes: segment}, RenderConfig{}))
		if err != nil {
			return nil, err
		}
		graphs = append(graphs, piece)
	}
	return graphs, nil
}

// ringBridges reports whether any root-scope ring bond joins atoms on
// opposite sides of a cut at node index i.
func ringBridges(g *Graph, i int) bool {
	left := map[Node]bool{}
	for _, n := range g.Nodes[:i] {
		markNodes(n, left)
	}
	for _, ring := range g.Rings {
		a1 := left[ring.Atom1]
		a2 := left[ring.Atom2]
		if a1 != a2 {
			return true
		}
	}
	return false
}

func markNodes(n Node, set map[Node]bool) {
	set[n] = true
	switch v := n.(type) {
	case *Branch:
		for _, child := range v.Nodes {
			markNodes(child, set)
		}
	case *StochasticObject:
		for _, frag := range v.Fragments {
			for _, child := range frag.Nodes {
				markNodes(child, set)
			}
		}
	}
}

// chargeBefore sums the formal charges of every atom before node index i.
func chargeBefore(g *Graph, i int) int {
	total := 0
	for _, n := range g.Nodes[:i] {
		set := map[Node]bool{}
		markNodes(n, set)
		for m := range set {
			if a, ok := m.(*Atom); ok {
				total += a.Charge
			}
		}
	}
	return total
}

// String renders the reaction back out, sides joined by the arrow form
// they were written with.
func (r *Reaction) String() string {
	if len(r.Agents) == 0 {
		return fmt.Sprintf("%s>>%s", renderSide(r.Reactants), renderSide(r.Products))
	}
	return fmt.Sprintf("%s>%s>%s", renderSide(r.Reactants), renderSide(r.Agents), renderSide(r.Products))
}

func renderSide(graphs []*Graph) string {
	parts := make([]string, len(graphs))
	for i, g := range graphs {
		parts[i] = g.String()
	}
	return strings.Join(parts, ",")
}
