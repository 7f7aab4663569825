// Package bigsmiles parses, validates, and renders BigSMILES line notation.
//
// BigSMILES extends SMILES with stochastic objects: brace-delimited sets of
// repeat-unit fragments joined through bonding descriptors, which is how
// polymers and other stochastic structures are written on one line.
//
// The package is structured as a hand-rolled parser with four layers:
//
//   - Lexer: converts raw bytes into a token stream; bracket-atom and
//     descriptor bodies decompose further through the field sub-tokenizers.
//   - Builder: folds the token stream into a Graph through an explicit
//     scope stack, tracking branches, stochastic fragments, and ring
//     closures as the notation opens and closes them.
//   - Graph types: the output data structures (Graph, Atom, Bond,
//     BondingDescriptorAtom, Branch, StochasticObject).
//   - Validation and rendering: lint rules over the finished graph, and
//     string or tree output that round-trips canonical notation.
//
// Usage:
//
//	g, err := bigsmiles.Parse("CC{[>][<]CC(C)[>][<]}CC(C)=C")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(g, len(g.Atoms()))
//
// Reaction notations with '>' or '>>' arrows parse through ParseReaction.
package bigsmiles
