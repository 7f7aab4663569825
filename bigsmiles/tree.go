package bigsmiles

import (
	"fmt"
	"strings"
)

// TreeConfig controls tree rendering. The zero value skips bond nodes,
// which keeps the tree focused on the structure.
type TreeConfig struct {
	ShowBonds bool
}

// Tree renders the node hierarchy as an indented tree, one line per node.
func Tree(g *Graph, cfg TreeConfig) string {
	var sb strings.Builder
	sb.WriteString(g.String())
	sb.WriteString("\n")
	writeTreeLevel(&sb, g.Nodes, "", cfg)
	return sb.String()
}

func writeTreeLevel(sb *strings.Builder, nodes []Node, prefix string, cfg TreeConfig) {
	visible := nodes
	if !cfg.ShowBonds {
		visible = nil
		for _, n := range nodes {
			if _, isBond := n.(*Bond); isBond {
				continue
			}
			visible = append(visible, n)
		}
	}
	for i, n := range visible {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(visible)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(treeLabel(n))
		sb.WriteString("\n")

		switch v := n.(type) {
		case *Branch:
			writeTreeLevel(sb, v.Nodes, childPrefix, cfg)
		case *StochasticObject:
			for j, frag := range v.Fragments {
				fragConnector, fragPrefix := "├── ", childPrefix+"│   "
				if j == len(v.Fragments)-1 {
					fragConnector, fragPrefix = "└── ", childPrefix+"    "
				}
				sb.WriteString(childPrefix)
				sb.WriteString(fragConnector)
				fmt.Fprintf(sb, "Fragment %d\n", j)
				writeTreeLevel(sb, frag.Nodes, fragPrefix, cfg)
			}
		}
	}
}

func treeLabel(n Node) string {
	r := renderer{}
	switch v := n.(type) {
	case *Atom:
		return fmt.Sprintf("Atom: %s", r.atom(v))
	case *Bond:
		symbol := v.Symbol
		if symbol == "" {
			symbol = "single"
		}
		return fmt.Sprintf("Bond: %s", symbol)
	case *BondingDescriptorAtom:
		return fmt.Sprintf("BondingDescriptor: %s", r.descriptor(v.Descriptor))
	case *Branch:
		return "Branch"
	case *StochasticObject:
		return "StochasticObject"
	}
	return n.Kind().String()
}
