package distribution

import "fmt"

func checkMnD(name string, mn, d float64) error {
	if mn <= 0 {
		return fmt.Errorf("%s: Mn must be positive, got %g", name, mn)
	}
	if d < 1 {
		return fmt.Errorf("%s: dispersity must be >= 1, got %g", name, d)
	}
	return nil
}

// LogNormal builds a log-normal distribution from Mn and dispersity.
func LogNormal(mn, d float64) (Distribution, error) {
	if err := checkMnD("log_normal", mn, d); err != nil {
		return nil, err
	}
	return base{name: "log_normal", mn: mn, d: d}, nil
}

// SchulzZimm builds a Schulz-Zimm distribution from Mn and dispersity.
func SchulzZimm(mn, d float64) (Distribution, error) {
	if err := checkMnD("schulz-zimm", mn, d); err != nil {
		return nil, err
	}
	return base{name: "schulz-zimm", mn: mn, d: d}, nil
}

// Gaussian builds a Gaussian distribution from Mn and dispersity.
func Gaussian(mn, d float64) (Distribution, error) {
	if err := checkMnD("gauss", mn, d); err != nil {
		return nil, err
	}
	return base{name: "gauss", mn: mn, d: d}, nil
}

type uniform struct {
	base
	low, high float64
}

func (u uniform) Details() string {
	return fmt.Sprintf("uniform(low=%g, high=%g, Mn=%g, D=%g)", u.low, u.high, u.mn, u.d)
}

// Uniform builds a uniform distribution over [low, high]. Mn is the
// midpoint; Mw follows from the second moment of the flat weight
// profile.
func Uniform(low, high float64) (Distribution, error) {
	if low <= 0 || high <= low {
		return nil, fmt.Errorf("uniform: need 0 < low < high, got [%g, %g]", low, high)
	}
	mn := (low + high) / 2
	mw := (low*low + low*high + high*high) / 3 / mn
	return uniform{
		base: base{name: "uniform", mn: mn, d: mw / mn},
		low:  low,
		high: high,
	}, nil
}

type florySchulz struct {
	base
	conversion float64
}

func (f florySchulz) Details() string {
	return fmt.Sprintf("flory_schulz(conversion=%g, Mn=%g, D=%g)", f.conversion, f.mn, f.d)
}

// FlorySchulz builds a Flory-Schulz (most probable) distribution from
// the monomer conversion p. Degree of polymerization is 1/(1-p) and
// dispersity is 1+p.
func FlorySchulz(conversion float64) (Distribution, error) {
	if conversion <= 0 || conversion >= 1 {
		return nil, fmt.Errorf("flory_schulz: conversion must be in (0, 1), got %g", conversion)
	}
	return florySchulz{
		base:       base{name: "flory_schulz", mn: 1 / (1 - conversion), d: 1 + conversion},
		conversion: conversion,
	}, nil
}

// Poisson builds a Poisson distribution from the mean chain length N.
// Dispersity is 1 + 1/N, approaching 1 for long chains as in living
// polymerization.
func Poisson(n float64) (Distribution, error) {
	if n <= 0 {
		return nil, fmt.Errorf("poisson: mean chain length must be positive, got %g", n)
	}
	return base{name: "poisson", mn: n, d: 1 + 1/n}, nil
}

// Custom builds a distribution directly from a name and the two
// statistics, for models the built-in list does not cover.
func Custom(name string, mn, d float64) (Distribution, error) {
	if name == "" {
		name = "custom"
	}
	if err := checkMnD(name, mn, d); err != nil {
		return nil, err
	}
	return base{name: name, mn: mn, d: d}, nil
}
