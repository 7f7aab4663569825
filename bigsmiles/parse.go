package bigsmiles

import (
	"fmt"
	"strconv"
	"strings"
)

type parseOptions struct {
	syntaxFixes bool
	validation  bool
}

// ParseOption adjusts Parse behavior. Defaults run syntax fixes and
// validation.
type ParseOption func(*parseOptions)

// WithoutSyntaxFixes disables normalization (redundant branch removal, ring
// and ID renumbering, implicit end-group hydrogens).
func WithoutSyntaxFixes() ParseOption {
	return func(o *parseOptions) { o.syntaxFixes = false }
}

// WithoutValidation disables the built-in lint rules; the graph carries
// only parse-time diagnostics.
func WithoutValidation() ParseOption {
	return func(o *parseOptions) { o.validation = false }
}

// Parse parses a single BigSMILES notation into a Graph. Empty input yields
// an empty graph. Reaction notations (containing '>') are rejected; use
// ParseReaction.
func Parse(src string, opts ...ParseOption) (*Graph, error) {
	options := parseOptions{syntaxFixes: true, validation: true}
	for _, opt := range opts {
		opt(&options)
	}

	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return &Graph{}, nil
	}

	if err := checkBalance(trimmed); err != nil {
		return nil, wrapInputError(err, trimmed)
	}
	tokens, err := Tokenize(trimmed)
	if err != nil {
		return nil, wrapInputError(err, trimmed)
	}
	tokens, ringDiags, err := preflightRings(tokens)
	if err != nil {
		return nil, wrapInputError(err, trimmed)
	}

	b := NewBuilder()
	b.graph.Diagnostics = append(b.graph.Diagnostics, ringDiags...)

	if err := dispatchTokens(b, tokens, trimmed); err != nil {
		return nil, err
	}
	if err := b.Finish(options); err != nil {
		return nil, wrapInputError(err, trimmed)
	}
	return b.graph, nil
}

func wrapInputError(err error, src string) error {
	return &ParseError{Message: fmt.Sprintf("parsing failed on %q", src), Cause: err}
}

func wrapTokenError(err error, tok Token, index int, src string) error {
	inner := &ParseError{
		Message: fmt.Sprintf("token %d (%s %q)", index, tok.Kind, tok.Value),
		Pos:     tok.Pos,
		Cause:   err,
	}
	return wrapInputError(inner, src)
}

// checkBalance counts paired scope symbols in the raw text before any
// tokenization. An imbalance is always fatal and the count pins down what
// is missing.
func checkBalance(src string) error {
	pairs := []struct {
		open, close byte
		name        string
	}{
		{'(', ')', "branch"},
		{'{', '}', "stochastic object"},
		{'[', ']', "bracket"},
	}
	for _, p := range pairs {
		opens := strings.Count(src, string(p.open))
		closes := strings.Count(src, string(p.close))
		switch {
		case opens > closes:
			n := opens - closes
			return newScopeError(fmt.Sprintf("missing %d closing %s symbol%s %q", n, p.name, plural(n), string(p.close)))
		case closes > opens:
			n := closes - opens
			return newScopeError(fmt.Sprintf("missing %d opening %s symbol%s %q", n, p.name, plural(n), string(p.open)))
		}
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// preflightRings validates ring index usage over the whole token slice and
// renumbers reused indices so each index appears exactly twice. Reuse is
// surfaced as a ring-reuse warning.
func preflightRings(tokens []Token) ([]Token, []Diagnostic, error) {
	positions := map[int][]int{}
	var order []int
	maxID := 0
	for i, tok := range tokens {
		if tok.Kind != TokenRing && tok.Kind != TokenRing2 {
			continue
		}
		id := ringIndexOf(tok)
		if _, seen := positions[id]; !seen {
			order = append(order, id)
		}
		positions[id] = append(positions[id], i)
		if id > maxID {
			maxID = id
		}
	}

	var diags []Diagnostic
	for _, id := range order {
		occurrences := positions[id]
		switch {
		case len(occurrences) == 1:
			return nil, nil, newRingError(fmt.Sprintf("ring index %d opened once and never closed", id))
		case len(occurrences)%2 != 0:
			return nil, nil, newRingError(fmt.Sprintf("ring index %d used %d times; ring indices must pair up", id, len(occurrences)))
		case len(occurrences) > 2:
			for pair := 1; pair < len(occurrences)/2; pair++ {
				maxID++
				for _, pos := range occurrences[pair*2 : pair*2+2] {
					tokens[pos] = ringToken(maxID, tokens[pos].Pos)
				}
			}
			diags = append(diags, Diagnostic{
				Rule:     "ring-reuse",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("ring index %d reused %d times; later pairs renumbered", id, len(occurrences)/2),
			})
		}
	}
	return tokens, diags, nil
}

func ringIndexOf(tok Token) int {
	value := strings.TrimPrefix(tok.Value, "%")
	id, _ := strconv.Atoi(value)
	return id
}

func ringToken(id int, pos Position) Token {
	if id >= 10 {
		return Token{Kind: TokenRing2, Value: fmt.Sprintf("%%%02d", id), Pos: pos}
	}
	return Token{Kind: TokenRing, Value: strconv.Itoa(id), Pos: pos}
}

// dispatchTokens folds the token slice through the builder. Bond and
// disconnect tokens use one token of lookahead to pick the builder
// operation, mirroring how the notation reads.
func dispatchTokens(b *Builder, tokens []Token, src string) error {
	peek := func(i int) Token {
		if i >= len(tokens) {
			return Token{Kind: TokenEOF}
		}
		return tokens[i]
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		var err error
		switch tok.Kind {
		case TokenAtom, TokenExtendedAtom:
			var fields AtomFields
			fields, err = TokenizeAtomSymbol(tok.Value)
			if err == nil {
				if b.HasPriorAtom() {
					_, err = b.AddBondAtomPair("", fields)
				} else {
					_, err = b.AddAtom(fields)
				}
			}

		case TokenBond:
			i, err = dispatchBond(b, tokens, i, tok.Value)

		case TokenDisconnect:
			i, err = dispatchBond(b, tokens, i, ".")

		case TokenRing, TokenRing2:
			err = b.AddRing(ringIndexOf(tok), "")

		case TokenBranchStart:
			err = b.OpenBranch()

		case TokenBranchEnd:
			err = b.CloseBranch()

		case TokenBondingDescriptor, TokenImplicitEndGroup:
			var symbol string
			var index int
			symbol, index, err = TokenizeBondingDescriptor(tok.Value)
			if err == nil {
				if peek(i+1).Kind == TokenStochasticEnd {
					err = b.CloseStochasticObject(symbol, index)
					i++
				} else {
					_, err = b.AddBondingDescriptorAtom("", symbol, index)
				}
			}

		case TokenStochasticStart:
			next := peek(i + 1)
			if next.Kind != TokenBondingDescriptor && next.Kind != TokenImplicitEndGroup {
				err = newSyntaxError("stochastic object must open with a bonding descriptor")
				break
			}
			var symbol string
			var index int
			symbol, index, err = TokenizeBondingDescriptor(next.Value)
			if err == nil {
				err = b.OpenStochasticObject("", symbol, index)
				i++
			}

		case TokenStochasticEnd:
			err = newSyntaxError("stochastic object must close with a bonding descriptor")

		case TokenStochasticSeparator:
			err = b.NextFragment(tok.Value)

		case TokenReactionArrow:
			err = newSyntaxError("reaction arrow in a single notation; use ParseReaction")

		case TokenBondingDescriptorLadder:
			err = newSyntaxError("ladder bonding descriptors are not supported")

		default:
			err = newSyntaxError(fmt.Sprintf("unexpected %s token", tok.Kind))
		}
		if err != nil {
			return wrapTokenError(err, tok, i, src)
		}
	}
	return nil
}

// dispatchBond handles a bond (or disconnect) token by looking at what
// follows it. Returns the index of the last consumed token.
func dispatchBond(b *Builder, tokens []Token, i int, symbol string) (int, error) {
	next := Token{Kind: TokenEOF}
	if i+1 < len(tokens) {
		next = tokens[i+1]
	}
	switch next.Kind {
	case TokenAtom, TokenExtendedAtom:
		fields, err := TokenizeAtomSymbol(next.Value)
		if err != nil {
			return i, err
		}
		_, err = b.AddBondAtomPair(symbol, fields)
		return i + 1, err

	case TokenBondingDescriptor, TokenImplicitEndGroup:
		if i+2 < len(tokens) && tokens[i+2].Kind == TokenStochasticEnd {
			return i, newSyntaxError("bond cannot precede a closing bonding descriptor")
		}
		descSymbol, index, err := TokenizeBondingDescriptor(next.Value)
		if err != nil {
			return i, err
		}
		_, err = b.AddBondingDescriptorAtom(symbol, descSymbol, index)
		return i + 1, err

	case TokenStochasticStart:
		if i+2 >= len(tokens) {
			return i, newSyntaxError("stochastic object must open with a bonding descriptor")
		}
		desc := tokens[i+2]
		if desc.Kind != TokenBondingDescriptor && desc.Kind != TokenImplicitEndGroup {
			return i, newSyntaxError("stochastic object must open with a bonding descriptor")
		}
		descSymbol, index, err := TokenizeBondingDescriptor(desc.Value)
		if err != nil {
			return i, err
		}
		return i + 2, b.OpenStochasticObject(symbol, descSymbol, index)

	case TokenRing, TokenRing2:
		return i + 1, b.AddRing(ringIndexOf(next), symbol)
	}
	return i, newSyntaxError(fmt.Sprintf("bond symbol %q followed by %s", symbol, next.Kind))
}

// --- finalize fixes -------------------------------------------------------

// removeRedundantBranches splices trailing branches into their parent:
// CC(CC)(CC) and CC(CC)CC are the same molecule, so the shorter form wins.
func removeRedundantBranches(g *Graph) {
	spliceTrailingBranches(g)
}

func spliceTrailingBranches(c container) {
	for _, n := range c.nodeList() {
		switch v := n.(type) {
		case *Branch:
			spliceTrailingBranches(v)
		case *StochasticObject:
			for _, frag := range v.Fragments {
				spliceTrailingBranches(frag)
			}
		}
	}
	nodes := c.nodeList()
	for len(nodes) > 0 {
		last, ok := nodes[len(nodes)-1].(*Branch)
		if !ok {
			break
		}
		nodes = append(nodes[:len(nodes)-1], last.Nodes...)
	}
	c.setNodes(nodes)
}

// insertImplicitEndGroups puts [H] end groups on a stochastic object that
// starts or ends the notation with explicit descriptors and no bond on that
// side. A descriptor already bound to a higher bond order cannot take a
// hydrogen.
func insertImplicitEndGroups(g *Graph) error {
	if so, ok := g.Nodes[0].(*StochasticObject); ok && !so.ImplicitEndGroups() && so.LeftBond == nil {
		if descriptorBondOrder(so.LeftDescriptor) > 1 {
			return newSyntaxError("a multi-order bond out of a stochastic object requires an explicit end group")
		}
		atom := hydrogenAtom()
		bond := &Bond{Symbol: "", Atom1: atom, Atom2: so}
		atom.Bonds = append(atom.Bonds, bond)
		so.LeftBond = bond
		g.Nodes = append([]Node{atom, bond}, g.Nodes...)
	}
	if so, ok := g.Nodes[len(g.Nodes)-1].(*StochasticObject); ok && !so.ImplicitEndGroups() && so.RightBond == nil {
		if descriptorBondOrder(so.RightDescriptor) > 1 {
			return newSyntaxError("a multi-order bond out of a stochastic object requires an explicit end group")
		}
		atom := hydrogenAtom()
		bond := &Bond{Symbol: "", Atom1: so, Atom2: atom}
		atom.Bonds = append(atom.Bonds, bond)
		so.RightBond = bond
		g.Nodes = append(g.Nodes, bond, atom)
	}
	return nil
}

func hydrogenAtom() *Atom {
	return &Atom{Symbol: "H", Bracket: true, Hydrogens: intPtr(0), Valence: 1, ValenceKnown: true}
}

func descriptorBondOrder(d *BondingDescriptor) float64 {
	if d == nil || d.BondSymbol == nil {
		return 1
	}
	return orderOf(*d.BondSymbol)
}

// renumberRings reassigns ring ids sequentially, children-first so nested
// scopes number before the scope that contains them.
func renumberRings(g *Graph) {
	var rings []*Bond
	collectRingBonds(g, &rings)
	for i, bond := range rings {
		bond.RingID = i + 1
	}
}

func collectRingBonds(c container, out *[]*Bond) {
	for _, n := range c.nodeList() {
		switch v := n.(type) {
		case *Branch:
			collectRingBonds(v, out)
		case *StochasticObject:
			for _, frag := range v.Fragments {
				collectRingBonds(frag, out)
			}
		}
	}
	switch scope := c.(type) {
	case *Graph:
		*out = append(*out, scope.Rings...)
	case *StochasticFragment:
		*out = append(*out, scope.Rings...)
	}
}

// renumberIDs renumbers every node id 0-based in notation order.
func renumberIDs(g *Graph) {
	for i, a := range g.Atoms() {
		a.ID = i
	}
	for i, bond := range g.Bonds() {
		bond.ID = i
	}
	for i, d := range g.Descriptors() {
		d.ID = i
	}
	for i, so := range g.StochasticObjects() {
		so.ID = i
		for j, frag := range so.Fragments {
			frag.ID = j
		}
	}
	branchID := 0
	g.Walk(func(n Node) bool {
		if br, ok := n.(*Branch); ok {
			br.ID = branchID
			branchID++
		}
		return true
	})
}

// checkImplicitEndGroupPlacement rejects implicit '[]' end groups anywhere
// except the outer ends of the notation: the polymer must be the whole
// molecule when its end groups are unstated.
func checkImplicitEndGroupPlacement(g *Graph) error {
	for i, n := range g.Nodes {
		so, ok := n.(*StochasticObject)
		if !ok {
			continue
		}
		if so.LeftDescriptor != nil && so.LeftDescriptor.Symbol == "" && i != 0 {
			return newSyntaxError("implicit end group must begin the notation")
		}
		if so.RightDescriptor != nil && so.RightDescriptor.Symbol == "" && i != len(g.Nodes)-1 {
			return newSyntaxError("implicit end group must end the notation")
		}
	}
	var nestedErr error
	for _, n := range g.Nodes {
		switch v := n.(type) {
		case *Branch:
			nestedErr = checkNestedImplicit(v.Nodes)
		case *StochasticObject:
			for _, frag := range v.Fragments {
				if nestedErr == nil {
					nestedErr = checkNestedImplicit(frag.Nodes)
				}
			}
		}
		if nestedErr != nil {
			return nestedErr
		}
	}
	return nil
}

func checkNestedImplicit(nodes []Node) error {
	var err error
	walkNodes(nodes, func(n Node) bool {
		if so, ok := n.(*StochasticObject); ok && so.ImplicitEndGroups() {
			err = newSyntaxError("implicit end groups are not allowed on a nested stochastic object")
			return false
		}
		return true
	})
	return err
}
