// Package distribution models molecular weight distributions and binds
// them to the stochastic objects of a parsed polymer graph.
//
// A Distribution describes chain-length statistics: the number-average
// molecular weight Mn, the weight-average Mw, and the dispersity D =
// Mw/Mn. Models are built directly (LogNormal, SchulzZimm, ...) or by
// name through a Registry, and attached to a bigsmiles.Graph with
// Attach, which hands back a uuid for later lookup or removal.
package distribution

import "fmt"

// Distribution describes the molecular weight statistics of one
// stochastic object.
type Distribution interface {
	// Name returns the registry name of the model, e.g. "log_normal".
	Name() string
	// Mn returns the number-average molecular weight.
	Mn() float64
	// Mw returns the weight-average molecular weight.
	Mw() float64
	// D returns the dispersity Mw/Mn. Always >= 1 for valid models.
	D() float64
	// Details returns a one-line human-readable summary.
	Details() string
}

// base carries the statistics shared by every model. Mw is derived,
// not stored: Mw = Mn * D.
type base struct {
	name string
	mn   float64
	d    float64
}

func (b base) Name() string { return b.name }
func (b base) Mn() float64  { return b.mn }
func (b base) Mw() float64  { return b.mn * b.d }
func (b base) D() float64   { return b.d }

func (b base) Details() string {
	return fmt.Sprintf("%s(Mn=%g, Mw=%g, D=%g)", b.name, b.mn, b.Mw(), b.d)
}
