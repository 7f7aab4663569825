package bigsmiles

import "fmt"

// Builder constructs a Graph one token at a time. The scope stack holds the
// current insertion path (graph root, open branches, stochastic objects and
// their open fragment); the top container receives new nodes. Close
// operations type-check the top of the stack, so mismatched scopes fail at
// the operation instead of corrupting the tree.
type Builder struct {
	graph      *Graph
	stack      []any        // *Graph | *Branch | *StochasticObject | *StochasticFragment
	ringScopes []*ringScope // parallel to the ring-owning scopes (root + open fragments)

	atomCount       int
	bondCount       int
	branchCount     int
	fragmentCount   int
	objectCount     int
	descriptorCount int
}

// ringScope tracks pending (half-open) ring bonds for one ring scope: the
// graph root or one stochastic fragment. Ring indices never cross scopes.
type ringScope struct {
	pending map[int]*Bond
}

// NewBuilder returns a Builder with an empty graph as the open scope.
func NewBuilder() *Builder {
	g := &Graph{}
	return &Builder{
		graph:      g,
		stack:      []any{g},
		ringScopes: []*ringScope{{pending: map[int]*Bond{}}},
	}
}

// Graph returns the graph under construction. Callers should not read it
// until Finish succeeds.
func (b *Builder) Graph() *Graph { return b.graph }

func (b *Builder) top() any { return b.stack[len(b.stack)-1] }

// topContainer returns the current insertion point. The stack top is always
// a container: a stochastic object immediately opens its first fragment.
func (b *Builder) topContainer() container {
	return b.top().(container)
}

func (b *Builder) currentRingScope() *ringScope {
	return b.ringScopes[len(b.ringScopes)-1]
}

// ringBondList returns the ring-bond list of the innermost ring scope: the
// enclosing fragment's, or the graph root's.
func (b *Builder) appendRingBond(bond *Bond) {
	for i := len(b.stack) - 1; i >= 0; i-- {
		switch scope := b.stack[i].(type) {
		case *StochasticFragment:
			scope.Rings = append(scope.Rings, bond)
			return
		case *Graph:
			scope.Rings = append(scope.Rings, bond)
			return
		}
	}
}

func (b *Builder) removeRingBond(bond *Bond) {
	for i := len(b.stack) - 1; i >= 0; i-- {
		switch scope := b.stack[i].(type) {
		case *StochasticFragment:
			scope.Rings = removeBond(scope.Rings, bond)
			return
		case *Graph:
			scope.Rings = removeBond(scope.Rings, bond)
			return
		}
	}
}

func removeBond(bonds []*Bond, bond *Bond) []*Bond {
	for i, rb := range bonds {
		if rb == bond {
			return append(bonds[:i], bonds[i+1:]...)
		}
	}
	return bonds
}

// priorBondable finds the node a new bond attaches back to: the nearest
// atom, bonding descriptor atom, or stochastic object, scanning the open
// scopes innermost first. Fragments are barriers; a bond never reaches out
// of the enclosing stochastic object.
func (b *Builder) priorBondable() Node {
	for i := len(b.stack) - 1; i >= 0; i-- {
		scope, ok := b.stack[i].(container)
		if !ok {
			return nil // stochastic object boundary
		}
		nodes := scope.nodeList()
		for j := len(nodes) - 1; j >= 0; j-- {
			switch n := nodes[j].(type) {
			case *Atom, *BondingDescriptorAtom, *StochasticObject:
				return n
			}
			// branches and bonds are skipped
		}
		if _, isFragment := b.stack[i].(*StochasticFragment); isFragment {
			return nil
		}
	}
	return nil
}

// HasPriorAtom reports whether a new bond has something to attach back to.
func (b *Builder) HasPriorAtom() bool { return b.priorBondable() != nil }

func (b *Builder) newAtom(fields AtomFields) *Atom {
	a := &Atom{
		ID:        b.atomCount,
		Symbol:    fields.Symbol,
		Aromatic:  fields.Aromatic,
		Isotope:   fields.Isotope,
		Stereo:    fields.Stereo,
		Hydrogens: fields.Hydrogens,
		Charge:    fields.Charge,
		Bracket:   fields.Hydrogens != nil,
	}
	if fields.Class != nil {
		a.Class = *fields.Class
	}
	b.atomCount++
	if valences, ok := elementValences[a.Symbol]; ok {
		a.Valence = valences[0]
		a.ValenceKnown = true
		// Bracket atoms declare hydrogens and charge up front; start from
		// the smallest tabulated valence that covers them.
		need := a.explicitHydrogens() + abs(a.Charge)
		for _, v := range valences {
			if v >= need {
				a.Valence = v
				break
			}
		}
	}
	return a
}

func (b *Builder) newBond(symbol string) *Bond {
	bond := &Bond{ID: b.bondCount, Symbol: symbol}
	b.bondCount++
	return bond
}

// escalateValence bumps a non-aromatic atom to the next tabulated valence
// that covers its bonds. Aromatic atoms keep their default valence; an
// overflow surfaces later as a valence warning.
func escalateValence(a *Atom) {
	if !a.ValenceKnown || a.Aromatic {
		return
	}
	need := int(a.bondOrderSum()) + a.explicitHydrogens() + abs(a.Charge)
	if need <= a.Valence {
		return
	}
	for _, v := range elementValences[a.Symbol] {
		if v >= need {
			a.Valence = v
			return
		}
	}
}

type soBondSide int

const (
	soLeft soBondSide = iota
	soRight
)

func attachAtomEnd(bond *Bond, a *Atom) {
	a.Bonds = append(a.Bonds, bond)
	escalateValence(a)
}

func attachDescriptorEnd(bond *Bond, da *BondingDescriptorAtom) error {
	if da.Bond != nil {
		return newSyntaxError(fmt.Sprintf("bonding descriptor [%s%d] instance already has a bond", da.Descriptor.Symbol, da.Descriptor.Index))
	}
	da.Bond = bond
	if bond.Symbol != "" {
		d := da.Descriptor
		if d.BondSymbol == nil {
			symbol := bond.Symbol
			d.BondSymbol = &symbol
		} else if *d.BondSymbol != bond.Symbol {
			return newSyntaxError(fmt.Sprintf("bonding descriptor [%s%d] used with conflicting bond symbols %q and %q", d.Symbol, d.Index, *d.BondSymbol, bond.Symbol))
		}
	}
	return nil
}

func attachStochasticEnd(bond *Bond, so *StochasticObject, side soBondSide) error {
	switch side {
	case soLeft:
		if so.LeftBond != nil {
			return newSyntaxError("stochastic object already has a bond on its left end")
		}
		so.LeftBond = bond
	case soRight:
		if so.RightBond != nil {
			return newSyntaxError("stochastic object already has a bond on its right end")
		}
		so.RightBond = bond
	}
	return nil
}

// attachPriorEnd wires bond.Atom1 to the prior node. A stochastic object as
// the prior node takes the bond on its right end.
func attachPriorEnd(bond *Bond, prior Node) error {
	bond.Atom1 = prior
	switch n := prior.(type) {
	case *Atom:
		attachAtomEnd(bond, n)
	case *BondingDescriptorAtom:
		return attachDescriptorEnd(bond, n)
	case *StochasticObject:
		return attachStochasticEnd(bond, n, soRight)
	}
	return nil
}

// AddAtom places an atom with no bond to what precedes it. Used for the
// first atom of the input and the first atom after a disconnect-free start
// of a scope.
func (b *Builder) AddAtom(fields AtomFields) (*Atom, error) {
	a := b.newAtom(fields)
	b.topContainer().appendNode(a)
	return a, nil
}

// AddBondAtomPair places a bond and an atom: the bond joins the prior
// bondable node to the new atom. An empty symbol is a single bond, drawn
// aromatic when both endpoints are aromatic.
func (b *Builder) AddBondAtomPair(bondSymbol string, fields AtomFields) (*Atom, error) {
	prior := b.priorBondable()
	if prior == nil {
		return nil, newSyntaxError("bond with no atom before it")
	}
	a := b.newAtom(fields)
	if bondSymbol == "" && isAromaticNode(prior) && a.Aromatic {
		bondSymbol = ":"
	}
	bond := b.newBond(bondSymbol)
	if err := attachPriorEnd(bond, prior); err != nil {
		return nil, err
	}
	bond.Atom2 = a
	attachAtomEnd(bond, a)
	scope := b.topContainer()
	scope.appendNode(bond)
	scope.appendNode(a)
	return a, nil
}

func isAromaticNode(n Node) bool {
	if a, ok := n.(*Atom); ok {
		return a.Aromatic
	}
	return false
}

// enclosingObject returns the innermost open stochastic object, or nil.
func (b *Builder) enclosingObject() *StochasticObject {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if so, ok := b.stack[i].(*StochasticObject); ok {
			return so
		}
		if frag, ok := b.stack[i].(*StochasticFragment); ok {
			return frag.Parent
		}
	}
	return nil
}

// AddBondingDescriptorAtom places a bonding descriptor atom in the current
// fragment, bonded back to the prior node when one exists. bondSymbol is
// the explicit bond written before the descriptor, or "".
func (b *Builder) AddBondingDescriptorAtom(bondSymbol, descSymbol string, index int) (*BondingDescriptorAtom, error) {
	so := b.enclosingObject()
	if so == nil {
		return nil, newSyntaxError("bonding descriptor outside a stochastic object")
	}
	da := &BondingDescriptorAtom{ID: b.descriptorCount, Descriptor: so.descriptor(descSymbol, index)}
	b.descriptorCount++
	da.Descriptor.Instances = append(da.Descriptor.Instances, da)

	prior := b.priorBondable()
	if prior == nil {
		if bondSymbol != "" {
			return nil, newSyntaxError("bond with no atom before it")
		}
		b.topContainer().appendNode(da)
		return da, nil
	}

	bond := b.newBond(bondSymbol)
	if err := attachPriorEnd(bond, prior); err != nil {
		return nil, err
	}
	bond.Atom2 = da
	if err := attachDescriptorEnd(bond, da); err != nil {
		return nil, err
	}
	scope := b.topContainer()
	scope.appendNode(bond)
	scope.appendNode(da)
	return da, nil
}

// AddRing opens or closes the ring with the given index. A closing ring
// whose endpoints are already joined by another bond merges into that bond
// instead (orders add) and records a ring-duplicate warning.
func (b *Builder) AddRing(ringID int, bondSymbol string) error {
	prior := b.priorBondable()
	if prior == nil {
		return newSyntaxError("ring index with no atom before it")
	}
	scope := b.currentRingScope()

	pending, open := scope.pending[ringID]
	if !open {
		bond := b.newBond(bondSymbol)
		bond.RingID = ringID
		if err := attachPriorEnd(bond, prior); err != nil {
			return err
		}
		scope.pending[ringID] = bond
		b.appendRingBond(bond)
		return nil
	}

	if pending.Atom1 == prior {
		return newRingError(fmt.Sprintf("ring index %d closes on the atom that opened it", ringID))
	}
	delete(scope.pending, ringID)

	// Symbol resolution: the higher-order symbol of the two ends wins;
	// aromatic endpoints with no explicit symbol bond aromatically.
	if orderOf(bondSymbol) > pending.Order() {
		pending.Symbol = bondSymbol
	}
	if pending.Symbol == "" && isAromaticNode(pending.Atom1) && isAromaticNode(prior) {
		pending.Symbol = ":"
	}

	// Duplicate-merge applies to atom-atom pairs only. A ring with a
	// stochastic object at either end attaches to the object's right end
	// even when a joining bond already exists between the two endpoints.
	_, openerIsAtom := pending.Atom1.(*Atom)
	_, priorIsAtom := prior.(*Atom)
	if openerIsAtom && priorIsAtom {
		if existing := bondBetween(pending.Atom1, prior); existing != nil {
			merged, ok := symbolForOrder(existing.Order() + pending.Order())
			if !ok {
				return newRingError(fmt.Sprintf("ring index %d duplicates a bond it cannot merge with", ringID))
			}
			existing.Symbol = merged
			opener := pending.Atom1.(*Atom)
			opener.Bonds = removeBond(opener.Bonds, pending)
			escalateValence(opener)
			b.removeRingBond(pending)
			b.graph.Diagnostics = append(b.graph.Diagnostics, Diagnostic{
				Rule:     "ring-duplicate",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("ring index %d duplicates an existing bond; merged into a single order-%g bond", ringID, existing.Order()),
				Node:     b.graph.refFor(existing),
			})
			return nil
		}
	}

	pending.Atom2 = prior
	switch n := prior.(type) {
	case *Atom:
		attachAtomEnd(pending, n)
	case *BondingDescriptorAtom:
		return attachDescriptorEnd(pending, n)
	case *StochasticObject:
		return attachStochasticEnd(pending, n, soRight)
	}
	return nil
}

func orderOf(symbol string) float64 {
	order, ok := BondOrder(symbol)
	if !ok {
		return 1
	}
	return order
}

// bondBetween returns an existing bond joining a and other, or nil.
func bondBetween(a Node, other Node) *Bond {
	atom, ok := a.(*Atom)
	if !ok {
		return nil
	}
	for _, bond := range atom.Bonds {
		if bond.Atom2 == nil {
			continue
		}
		if (bond.Atom1 == a && bond.Atom2 == other) || (bond.Atom1 == other && bond.Atom2 == a) {
			return bond
		}
	}
	return nil
}

// OpenBranch pushes a branch scope. A branch cannot be the first item of
// its scope: there is nothing for its contents to attach to.
func (b *Builder) OpenBranch() error {
	scope := b.topContainer()
	if !hasBondableNode(scope.nodeList()) {
		return newSyntaxError("branch at the start of its scope has nothing to attach to")
	}
	br := &Branch{ID: b.branchCount}
	b.branchCount++
	scope.appendNode(br)
	b.stack = append(b.stack, br)
	return nil
}

func hasBondableNode(nodes []Node) bool {
	for _, n := range nodes {
		switch n.(type) {
		case *Atom, *BondingDescriptorAtom, *StochasticObject:
			return true
		}
	}
	return false
}

// CloseBranch pops the current branch. An empty branch is discarded.
func (b *Builder) CloseBranch() error {
	br, ok := b.top().(*Branch)
	if !ok {
		return newScopeError("')' without a matching '('")
	}
	b.stack = b.stack[:len(b.stack)-1]
	if len(br.Nodes) == 0 {
		parent := b.topContainer()
		nodes := parent.nodeList()
		for i := len(nodes) - 1; i >= 0; i-- {
			if nodes[i] == br {
				parent.setNodes(append(nodes[:i], nodes[i+1:]...))
				break
			}
		}
	}
	return nil
}

// OpenStochasticObject opens a stochastic object with its left end
// descriptor and pushes the first fragment. bondSymbol is the explicit bond
// written before '{', or "" for an implicit single bond to the prior node.
func (b *Builder) OpenStochasticObject(bondSymbol string, descSymbol string, index int) error {
	so := &StochasticObject{ID: b.objectCount}
	b.objectCount++
	so.LeftDescriptor = so.descriptor(descSymbol, index)

	prior := b.priorBondable()
	if prior == nil && bondSymbol != "" {
		return newSyntaxError("bond with no atom before it")
	}
	if prior != nil {
		bond := b.newBond(bondSymbol)
		if err := attachPriorEnd(bond, prior); err != nil {
			return err
		}
		bond.Atom2 = so
		if err := attachStochasticEnd(bond, so, soLeft); err != nil {
			return err
		}
		scope := b.topContainer()
		scope.appendNode(bond)
		scope.appendNode(so)
	} else {
		b.topContainer().appendNode(so)
	}

	b.stack = append(b.stack, so)
	b.openFragment(so)
	return nil
}

func (b *Builder) openFragment(so *StochasticObject) {
	frag := &StochasticFragment{ID: b.fragmentCount, Parent: so}
	b.fragmentCount++
	so.Fragments = append(so.Fragments, frag)
	b.stack = append(b.stack, frag)
	b.ringScopes = append(b.ringScopes, &ringScope{pending: map[int]*Bond{}})
}

// closeFragment pops the current fragment: collects its descriptor
// instances (branches included) and checks its ring scope is clean.
func (b *Builder) closeFragment() error {
	frag, ok := b.top().(*StochasticFragment)
	if !ok {
		return newScopeError("no open stochastic fragment")
	}
	frag.Descriptors = collectDescriptors(frag.Nodes)
	if len(frag.Descriptors) == 0 {
		return newSyntaxError("stochastic fragment has no bonding descriptor")
	}
	scope := b.currentRingScope()
	if len(scope.pending) > 0 {
		for id := range scope.pending {
			return newRingError(fmt.Sprintf("ring index %d opened inside a stochastic fragment and never closed", id))
		}
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.ringScopes = b.ringScopes[:len(b.ringScopes)-1]
	return nil
}

func collectDescriptors(nodes []Node) []*BondingDescriptorAtom {
	var descriptors []*BondingDescriptorAtom
	for _, n := range nodes {
		switch v := n.(type) {
		case *BondingDescriptorAtom:
			descriptors = append(descriptors, v)
		case *Branch:
			descriptors = append(descriptors, collectDescriptors(v.Nodes)...)
		}
	}
	return descriptors
}

// NextFragment closes the current fragment and opens the next one.
// Separators must not mix within one object.
func (b *Builder) NextFragment(separator string) error {
	if _, ok := b.top().(*StochasticFragment); !ok {
		return newSyntaxError(fmt.Sprintf("%q separator outside a stochastic object", separator))
	}
	if err := b.closeFragment(); err != nil {
		return err
	}
	so, ok := b.top().(*StochasticObject)
	if !ok {
		return newScopeError("no open stochastic object")
	}
	if so.Separator == "" {
		so.Separator = separator
	} else if so.Separator != separator {
		return newSyntaxError(fmt.Sprintf("stochastic object mixes %q and %q separators", so.Separator, separator))
	}
	b.openFragment(so)
	return nil
}

// CloseStochasticObject closes the current fragment and the object,
// recording the right end descriptor.
func (b *Builder) CloseStochasticObject(descSymbol string, index int) error {
	if _, ok := b.top().(*StochasticFragment); !ok {
		return newScopeError("'}' without a matching '{'")
	}
	if err := b.closeFragment(); err != nil {
		return err
	}
	so, ok := b.top().(*StochasticObject)
	if !ok {
		return newScopeError("'}' without a matching '{'")
	}
	so.RightDescriptor = so.descriptor(descSymbol, index)
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

// Finish checks the stack is back at the root and no ring is left open,
// then runs syntax fixes and validation per the options.
func (b *Builder) Finish(opts parseOptions) error {
	if len(b.stack) != 1 {
		switch b.top().(type) {
		case *Branch:
			return newScopeError("missing closing branch symbol ')'")
		case *StochasticFragment, *StochasticObject:
			return newScopeError("missing closing stochastic symbol '}'")
		}
		return newScopeError("unclosed scope at end of input")
	}
	root := b.ringScopes[0]
	for id := range root.pending {
		return newRingError(fmt.Sprintf("ring index %d opened once and never closed", id))
	}

	if b.graph.Empty() {
		return nil
	}

	if opts.syntaxFixes {
		removeRedundantBranches(b.graph)
		if err := insertImplicitEndGroups(b.graph); err != nil {
			return err
		}
		renumberRings(b.graph)
		renumberIDs(b.graph)
	}
	if err := checkImplicitEndGroupPlacement(b.graph); err != nil {
		return err
	}
	if opts.validation {
		b.graph.Diagnostics = append(b.graph.Diagnostics, Validate(b.graph)...)
	}
	return nil
}

// --- chunk assembly -------------------------------------------------------
//
// The assembly operations stitch parsed chunks together, the way a larger
// structure is built up from pieces. They renumber ids after every change so
// the combined graph reads as if it were parsed in one pass.

// lastBondable scans a node list in reverse for the last node a new bond can
// attach to, skipping branches.
func lastBondable(nodes []Node) Node {
	for i := len(nodes) - 1; i >= 0; i-- {
		switch n := nodes[i].(type) {
		case *Atom, *BondingDescriptorAtom, *StochasticObject:
			return n
		}
	}
	return nil
}

func firstBondable(nodes []Node) Node {
	for _, n := range nodes {
		switch n.(type) {
		case *Atom, *BondingDescriptorAtom, *StochasticObject:
			return n
		}
	}
	return nil
}

// joinBond builds the bond that splices other onto g's tail. The head of
// other must be an atom or stochastic object.
func joinBond(tail Node, head Node, bondSymbol string) (*Bond, error) {
	bond := &Bond{Symbol: bondSymbol}
	if err := attachPriorEnd(bond, tail); err != nil {
		return nil, err
	}
	bond.Atom2 = head
	switch n := head.(type) {
	case *Atom:
		attachAtomEnd(bond, n)
	case *StochasticObject:
		if err := attachStochasticEnd(bond, n, soLeft); err != nil {
			return nil, err
		}
	default:
		return nil, newSyntaxError("chunk must start with an atom or stochastic object")
	}
	return bond, nil
}

// AppendFragment splices other onto the end of g with a joining bond. The
// other graph is consumed: its nodes move into g.
func AppendFragment(g, other *Graph, bondSymbol string) error {
	if other.Empty() {
		return nil
	}
	if g.Empty() {
		g.Nodes = other.Nodes
		g.Rings = append(g.Rings, other.Rings...)
		renumberIDs(g)
		return nil
	}
	tail := lastBondable(g.Nodes)
	if tail == nil {
		return newSyntaxError("graph has nothing to bond the chunk to")
	}
	head := firstBondable(other.Nodes)
	if head == nil || head != other.Nodes[0] {
		return newSyntaxError("chunk must start with an atom or stochastic object")
	}
	bond, err := joinBond(tail, head, bondSymbol)
	if err != nil {
		return err
	}
	g.Nodes = append(g.Nodes, bond)
	g.Nodes = append(g.Nodes, other.Nodes...)
	g.Rings = append(g.Rings, other.Rings...)
	renumberIDs(g)
	return nil
}

// AttachBranch wraps other in a branch bonded to the atom at atomIndex
// (notation order), inserted after any branches that atom already carries.
func AttachBranch(g, other *Graph, atomIndex int, bondSymbol string) error {
	atoms := g.Atoms()
	if atomIndex < 0 || atomIndex >= len(atoms) {
		return newSyntaxError("no atom at that index")
	}
	if other.Empty() {
		return nil
	}
	head := firstBondable(other.Nodes)
	if head == nil || head != other.Nodes[0] {
		return newSyntaxError("chunk must start with an atom or stochastic object")
	}
	atom := atoms[atomIndex]
	bond, err := joinBond(atom, head, bondSymbol)
	if err != nil {
		return err
	}
	branch := &Branch{Nodes: append([]Node{bond}, other.Nodes...)}

	parent, pos := findNode(g, atom)
	if parent == nil {
		return newSyntaxError("atom is not part of the graph")
	}
	nodes := parent.nodeList()
	insert := pos + 1
	for insert < len(nodes) {
		if _, ok := nodes[insert].(*Branch); !ok {
			break
		}
		insert++
	}
	nodes = append(nodes[:insert], append([]Node{branch}, nodes[insert:]...)...)
	parent.setNodes(nodes)
	g.Rings = append(g.Rings, other.Rings...)
	renumberIDs(g)
	return nil
}

// findNode locates the container and position holding n.
func findNode(g *Graph, target Node) (container, int) {
	return findNodeIn(g, target)
}

func findNodeIn(c container, target Node) (container, int) {
	for i, n := range c.nodeList() {
		if n == target {
			return c, i
		}
		switch v := n.(type) {
		case *Branch:
			if parent, pos := findNodeIn(v, target); parent != nil {
				return parent, pos
			}
		case *StochasticObject:
			for _, frag := range v.Fragments {
				if parent, pos := findNodeIn(frag, target); parent != nil {
					return parent, pos
				}
			}
		}
	}
	return nil, 0
}

// InsertAtomAndBond adds one atom at the front or back of the graph, bonded
// to the nearest bondable node.
func InsertAtomAndBond(g *Graph, fields AtomFields, bondSymbol string, front bool) error {
	atom := &Atom{
		Symbol:    fields.Symbol,
		Aromatic:  fields.Aromatic,
		Isotope:   fields.Isotope,
		Stereo:    fields.Stereo,
		Hydrogens: fields.Hydrogens,
		Charge:    fields.Charge,
		Bracket:   fields.Hydrogens != nil,
	}
	if fields.Class != nil {
		atom.Class = *fields.Class
	}
	if valences, ok := elementValences[atom.Symbol]; ok {
		atom.Valence = valences[0]
		atom.ValenceKnown = true
	}

	if g.Empty() {
		g.Nodes = []Node{atom}
		renumberIDs(g)
		return nil
	}

	if front {
		head := firstBondable(g.Nodes)
		if head == nil {
			return newSyntaxError("graph has nothing to bond the atom to")
		}
		bond := &Bond{Symbol: bondSymbol, Atom1: atom}
		attachAtomEnd(bond, atom)
		bond.Atom2 = head
		switch n := head.(type) {
		case *Atom:
			attachAtomEnd(bond, n)
		case *BondingDescriptorAtom:
			if err := attachDescriptorEnd(bond, n); err != nil {
				return err
			}
		case *StochasticObject:
			if err := attachStochasticEnd(bond, n, soLeft); err != nil {
				return err
			}
		}
		g.Nodes = append([]Node{atom, bond}, g.Nodes...)
		renumberIDs(g)
		return nil
	}

	tail := lastBondable(g.Nodes)
	if tail == nil {
		return newSyntaxError("graph has nothing to bond the atom to")
	}
	bond := &Bond{Symbol: bondSymbol}
	if err := attachPriorEnd(bond, tail); err != nil {
		return err
	}
	bond.Atom2 = atom
	attachAtomEnd(bond, atom)
	g.Nodes = append(g.Nodes, bond, atom)
	renumberIDs(g)
	return nil
}

// InsertAtomIntoBond replaces the bond at bondIndex (notation order) with
// bond-atom-bond, splitting the original bond around the new atom. Ring
// bonds cannot be split this way.
func InsertAtomIntoBond(g *Graph, bondIndex int, fields AtomFields) error {
	bonds := g.Bonds()
	if bondIndex < 0 || bondIndex >= len(bonds) {
		return newSyntaxError("no bond at that index")
	}
	bond := bonds[bondIndex]
	if bond.RingID != 0 {
		return newSyntaxError("cannot insert an atom into a ring bond")
	}
	parent, pos := findNode(g, bond)
	if parent == nil {
		return newSyntaxError("cannot insert an atom into an end-group bond")
	}

	atom := &Atom{
		Symbol:    fields.Symbol,
		Aromatic:  fields.Aromatic,
		Isotope:   fields.Isotope,
		Stereo:    fields.Stereo,
		Hydrogens: fields.Hydrogens,
		Charge:    fields.Charge,
		Bracket:   fields.Hydrogens != nil,
	}
	if fields.Class != nil {
		atom.Class = *fields.Class
	}
	if valences, ok := elementValences[atom.Symbol]; ok {
		atom.Valence = valences[0]
		atom.ValenceKnown = true
	}

	second := &Bond{Symbol: bond.Symbol, Atom1: atom, Atom2: bond.Atom2}
	attachAtomEnd(second, atom)
	switch n := bond.Atom2.(type) {
	case *Atom:
		n.Bonds = replaceBond(n.Bonds, bond, second)
	case *BondingDescriptorAtom:
		n.Bond = second
	case *StochasticObject:
		n.LeftBond = second
	}
	bond.Atom2 = atom
	attachAtomEnd(bond, atom)

	nodes := parent.nodeList()
	nodes = append(nodes[:pos+1], append([]Node{atom, second}, nodes[pos+1:]...)...)
	parent.setNodes(nodes)
	renumberIDs(g)
	return nil
}

// AddStochasticFragment grafts the fragments of another parsed stochastic
// object onto the object at objectIndex (notation order) as additional
// repeat-unit alternatives. The other graph must consist of exactly one
// stochastic object; writing it with implicit '[]' end groups keeps it free
// of inserted end-group atoms. Descriptor identities merge into the target's
// registry by symbol and index, so grafted instances pair with the existing
// ones.
func AddStochasticFragment(g *Graph, objectIndex int, other *Graph) error {
	objects := g.StochasticObjects()
	if objectIndex < 0 || objectIndex >= len(objects) {
		return newSyntaxError("no stochastic object at that index")
	}
	so := objects[objectIndex]

	var source *StochasticObject
	if len(other.Nodes) == 1 {
		source, _ = other.Nodes[0].(*StochasticObject)
	}
	if source == nil {
		return newSyntaxError("chunk must be a single stochastic object")
	}
	if source == so {
		return newSyntaxError("cannot graft a stochastic object onto itself")
	}

	for _, frag := range source.Fragments {
		frag.Parent = so
		for _, da := range frag.Descriptors {
			merged := so.descriptor(da.Descriptor.Symbol, da.Descriptor.Index)
			da.Descriptor = merged
			merged.Instances = append(merged.Instances, da)
		}
		so.Fragments = append(so.Fragments, frag)
	}
	renumberRings(g)
	renumberIDs(g)
	return nil
}

func replaceBond(bonds []*Bond, old, new *Bond) []*Bond {
	for i, b := range bonds {
		if b == old {
			bonds[i] = new
		}
	}
	return bonds
}
