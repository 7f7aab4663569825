package bigsmiles

import "sync"

// NodeKind identifies the concrete type behind a Node.
type NodeKind int

const (
	NodeAtom NodeKind = iota
	NodeBond
	NodeBondingDescriptorAtom
	NodeBranch
	NodeStochasticObject
)

var nodeKindNames = map[NodeKind]string{
	NodeAtom:                  "atom",
	NodeBond:                  "bond",
	NodeBondingDescriptorAtom: "bonding descriptor atom",
	NodeBranch:                "branch",
	NodeStochasticObject:      "stochastic object",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// NodeRef is a compact cross-reference to a node, used in Diagnostics. The
// index points into the flat accessor list for the kind (Atoms, Bonds, ...).
type NodeRef struct {
	Kind  NodeKind
	Index int
}

// Node is the closed set of graph node types: *Atom, *Bond,
// *BondingDescriptorAtom, *Branch, and *StochasticObject.
type Node interface {
	Kind() NodeKind
	node()
}

// container is anything that holds an ordered node list: the graph root, a
// branch, or a stochastic fragment.
type container interface {
	nodeList() []Node
	appendNode(n Node)
	setNodes(nodes []Node)
}

// Atom is a single atom in the graph. Bonds lists the atom's bonds in
// insertion order, ring bonds included.
type Atom struct {
	ID        int
	Symbol    string
	Aromatic  bool
	Isotope   *int
	Stereo    string // "", "@", "@@"
	Hydrogens *int   // explicit count; nil for bare atoms
	Charge    int
	Class     int
	Bracket   bool
	Bonds     []*Bond

	// Valence is the current best-fit valence from the element table.
	// ValenceKnown is false for elements outside the table; such atoms never
	// take part in implicit-hydrogen or valence inference.
	Valence      int
	ValenceKnown bool
}

func (*Atom) Kind() NodeKind { return NodeAtom }
func (*Atom) node()          {}

func (a *Atom) bondOrderSum() float64 {
	var sum float64
	for _, b := range a.Bonds {
		sum += b.Order()
	}
	return sum
}

// ImplicitHydrogens returns the inferred hydrogen count for bare atoms
// (valence minus the bond order sum, clamped at zero). Bracket atoms use
// their explicit count.
func (a *Atom) ImplicitHydrogens() int {
	if a.Hydrogens != nil {
		return *a.Hydrogens
	}
	if !a.ValenceKnown {
		return 0
	}
	n := a.Valence - int(a.bondOrderSum())
	if n < 0 {
		return 0
	}
	return n
}

// BondsAvailable returns how many more bond orders the atom can accept at
// its current valence, after explicit hydrogens and charge.
func (a *Atom) BondsAvailable() int {
	if !a.ValenceKnown {
		return 0
	}
	used := int(a.bondOrderSum()) + a.explicitHydrogens() + abs(a.Charge)
	n := a.Valence - used
	if n < 0 {
		return 0
	}
	return n
}

// FullValence reports whether the atom's bonds, hydrogens, and charge
// exactly fill its valence.
func (a *Atom) FullValence() bool {
	if !a.ValenceKnown {
		return true
	}
	return int(a.bondOrderSum())+a.hydrogenCount()+abs(a.Charge) == a.Valence
}

func (a *Atom) explicitHydrogens() int {
	if a.Hydrogens == nil {
		return 0
	}
	return *a.Hydrogens
}

func (a *Atom) hydrogenCount() int {
	if a.Hydrogens != nil {
		return *a.Hydrogens
	}
	return a.ImplicitHydrogens()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Bond joins two nodes. Endpoints may be atoms, bonding descriptor atoms,
// or stochastic objects. A pending ring bond has Atom2 == nil until its
// partner index appears; finished graphs have both endpoints resolved.
type Bond struct {
	ID     int
	Symbol string
	Atom1  Node
	Atom2  Node
	RingID int // 0 = not a ring bond
}

func (*Bond) Kind() NodeKind { return NodeBond }
func (*Bond) node()          {}

// Order returns the bond order for the bond's symbol. The stereo markers
// '/' and '\' are order 1.
func (b *Bond) Order() float64 {
	order, ok := BondOrder(b.Symbol)
	if !ok {
		return 1
	}
	return order
}

// BondingDescriptor is a descriptor identity within one stochastic object:
// all instances written with the same symbol and index share it. BondSymbol
// records the bond symbol of the first bonded use; a later use with a
// conflicting symbol is a syntax error.
type BondingDescriptor struct {
	Symbol     string // "<", ">", "$", or "" for the implicit end group
	Index      int
	Instances  []*BondingDescriptorAtom
	BondSymbol *string
}

// IsPaired reports whether the descriptor has a usable partner: "<" and ">"
// need a complementary descriptor with the same index, "$" needs at least
// two instances.
func (d *BondingDescriptor) IsPaired(registry []*BondingDescriptor) bool {
	switch d.Symbol {
	case "$":
		return len(d.Instances) >= 2
	case "<", ">":
		want := ">"
		if d.Symbol == ">" {
			want = "<"
		}
		for _, other := range registry {
			if other.Symbol == want && other.Index == d.Index && len(other.Instances) > 0 {
				return true
			}
		}
		return false
	}
	return true
}

// BondingDescriptorAtom is the graph node standing where a descriptor was
// written inside a fragment. Bond is write-once.
type BondingDescriptorAtom struct {
	ID         int
	Descriptor *BondingDescriptor
	Bond       *Bond
}

func (*BondingDescriptorAtom) Kind() NodeKind { return NodeBondingDescriptorAtom }
func (*BondingDescriptorAtom) node()          {}

// Branch is a parenthesized side chain.
type Branch struct {
	ID    int
	Nodes []Node
}

func (*Branch) Kind() NodeKind { return NodeBranch }
func (*Branch) node()          {}

func (b *Branch) nodeList() []Node      { return b.Nodes }
func (b *Branch) appendNode(n Node)     { b.Nodes = append(b.Nodes, n) }
func (b *Branch) setNodes(nodes []Node) { b.Nodes = nodes }

// StochasticFragment is one repeat-unit alternative inside a stochastic
// object. Ring indices opened inside a fragment must close inside it.
type StochasticFragment struct {
	ID          int
	Nodes       []Node
	Rings       []*Bond
	Descriptors []*BondingDescriptorAtom
	Parent      *StochasticObject
}

func (f *StochasticFragment) nodeList() []Node      { return f.Nodes }
func (f *StochasticFragment) appendNode(n Node)     { f.Nodes = append(f.Nodes, n) }
func (f *StochasticFragment) setNodes(nodes []Node) { f.Nodes = nodes }

// StochasticObject is a brace-delimited stochastic segment. LeftBond and
// RightBond join it to the surrounding graph and are write-once.
type StochasticObject struct {
	ID              int
	Fragments       []*StochasticFragment
	Registry        []*BondingDescriptor
	LeftDescriptor  *BondingDescriptor
	RightDescriptor *BondingDescriptor
	LeftBond        *Bond
	RightBond       *Bond
	Separator       string // "," or ";", first seen
}

func (*StochasticObject) Kind() NodeKind { return NodeStochasticObject }
func (*StochasticObject) node()          {}

// Aromatic reports whether the object joins the surrounding graph through
// aromatic bonds.
func (so *StochasticObject) Aromatic() bool {
	return so.LeftBond != nil && so.LeftBond.Order() == 1.5
}

// ImplicitEndGroups reports whether either end descriptor is the implicit
// "[]" form.
func (so *StochasticObject) ImplicitEndGroups() bool {
	return (so.LeftDescriptor != nil && so.LeftDescriptor.Symbol == "") ||
		(so.RightDescriptor != nil && so.RightDescriptor.Symbol == "")
}

// descriptor finds or creates the registry entry for symbol+index.
func (so *StochasticObject) descriptor(symbol string, index int) *BondingDescriptor {
	for _, d := range so.Registry {
		if d.Symbol == symbol && d.Index == index {
			return d
		}
	}
	d := &BondingDescriptor{Symbol: symbol, Index: index}
	so.Registry = append(so.Registry, d)
	return d
}

// Graph is a parsed BigSMILES line. A Graph returned by Parse is final:
// the only post-hoc write is distribution attachment, which is serialized
// by an internal mutex.
type Graph struct {
	Nodes       []Node
	Rings       []*Bond // root-scope ring bonds
	Diagnostics []Diagnostic

	attachMu    sync.Mutex
	attachments map[int]any // stochastic object index -> attachment
}

func (g *Graph) nodeList() []Node      { return g.Nodes }
func (g *Graph) appendNode(n Node)     { g.Nodes = append(g.Nodes, n) }
func (g *Graph) setNodes(nodes []Node) { g.Nodes = nodes }

// Empty reports whether the graph has no nodes.
func (g *Graph) Empty() bool { return len(g.Nodes) == 0 }

// Walk calls fn for every node depth-first in notation order, descending
// into branches and stochastic fragments. fn returning false stops the walk.
func (g *Graph) Walk(fn func(Node) bool) {
	walkNodes(g.Nodes, fn)
}

func walkNodes(nodes []Node, fn func(Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		switch v := n.(type) {
		case *Branch:
			if !walkNodes(v.Nodes, fn) {
				return false
			}
		case *StochasticObject:
			for _, frag := range v.Fragments {
				if !walkNodes(frag.Nodes, fn) {
					return false
				}
			}
		}
	}
	return true
}

// Atoms returns the graph's atoms in notation order. The slice is rebuilt
// per call from the live node tree.
func (g *Graph) Atoms() []*Atom {
	var atoms []*Atom
	g.Walk(func(n Node) bool {
		if a, ok := n.(*Atom); ok {
			atoms = append(atoms, a)
		}
		return true
	})
	return atoms
}

// Bonds returns all bonds in notation order, ring bonds appended per scope.
func (g *Graph) Bonds() []*Bond {
	var bonds []*Bond
	seen := map[*Bond]bool{}
	add := func(b *Bond) {
		if b != nil && !seen[b] {
			seen[b] = true
			bonds = append(bonds, b)
		}
	}
	g.Walk(func(n Node) bool {
		switch v := n.(type) {
		case *Bond:
			add(v)
		case *StochasticObject:
			add(v.LeftBond)
			for _, frag := range v.Fragments {
				for _, rb := range frag.Rings {
					add(rb)
				}
			}
			add(v.RightBond)
		}
		return true
	})
	for _, rb := range g.Rings {
		add(rb)
	}
	return bonds
}

// Descriptors returns all bonding descriptor atoms in notation order.
func (g *Graph) Descriptors() []*BondingDescriptorAtom {
	var descriptors []*BondingDescriptorAtom
	g.Walk(func(n Node) bool {
		if d, ok := n.(*BondingDescriptorAtom); ok {
			descriptors = append(descriptors, d)
		}
		return true
	})
	return descriptors
}

// StochasticObjects returns all stochastic objects in notation order,
// nested objects included.
func (g *Graph) StochasticObjects() []*StochasticObject {
	var objects []*StochasticObject
	g.Walk(func(n Node) bool {
		if so, ok := n.(*StochasticObject); ok {
			objects = append(objects, so)
		}
		return true
	})
	return objects
}

// refFor builds a NodeRef for a node already placed in the graph.
func (g *Graph) refFor(n Node) NodeRef {
	switch v := n.(type) {
	case *Atom:
		for i, a := range g.Atoms() {
			if a == v {
				return NodeRef{Kind: NodeAtom, Index: i}
			}
		}
	case *Bond:
		for i, b := range g.Bonds() {
			if b == v {
				return NodeRef{Kind: NodeBond, Index: i}
			}
		}
	case *BondingDescriptorAtom:
		for i, d := range g.Descriptors() {
			if d == v {
				return NodeRef{Kind: NodeBondingDescriptorAtom, Index: i}
			}
		}
	case *StochasticObject:
		for i, so := range g.StochasticObjects() {
			if so == v {
				return NodeRef{Kind: NodeStochasticObject, Index: i}
			}
		}
	}
	return NodeRef{Kind: n.Kind(), Index: -1}
}

// AttachDistribution records an opaque attachment on the stochastic object
// at objectIndex (notation order). Each object takes at most one attachment;
// a second attach without a detach is an error. This is the only mutation
// allowed on a finished graph.
func (g *Graph) AttachDistribution(objectIndex int, attachment any) error {
	objects := g.StochasticObjects()
	if objectIndex < 0 || objectIndex >= len(objects) {
		return newSyntaxError("no stochastic object at that index")
	}
	g.attachMu.Lock()
	defer g.attachMu.Unlock()
	if g.attachments == nil {
		g.attachments = make(map[int]any)
	}
	if _, ok := g.attachments[objectIndex]; ok {
		return newSyntaxError("stochastic object already has a distribution attached")
	}
	g.attachments[objectIndex] = attachment
	return nil
}

// DetachDistribution removes the attachment at objectIndex, returning it,
// or nil when none is attached.
func (g *Graph) DetachDistribution(objectIndex int) any {
	g.attachMu.Lock()
	defer g.attachMu.Unlock()
	attachment, ok := g.attachments[objectIndex]
	if !ok {
		return nil
	}
	delete(g.attachments, objectIndex)
	return attachment
}

// DistributionAttachments returns a copy of the attachment map keyed by
// stochastic object index.
func (g *Graph) DistributionAttachments() map[int]any {
	g.attachMu.Lock()
	defer g.attachMu.Unlock()
	out := make(map[int]any, len(g.attachments))
	for k, v := range g.attachments {
		out[k] = v
	}
	return out
}
