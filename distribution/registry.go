package distribution

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a Distribution from positional numeric arguments, as
// they appear inside the parentheses of a polymer suffix segment like
// |log_normal(5000, 1.2)|.
type Factory func(args []float64) (Distribution, error)

// Registry maps model names to factories. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces the factory for the given name.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Get returns the factory registered under name.
func (r *Registry) Get(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// Names returns the registered model names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build looks up name and invokes its factory with args.
func (r *Registry) Build(name string, args []float64) (Distribution, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown distribution model %q", name)
	}
	return f(args)
}

func wantArgs(name string, args []float64, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: want %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

// NewDefaultRegistry creates a Registry pre-populated with the
// built-in models.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("log_normal", func(args []float64) (Distribution, error) {
		if err := wantArgs("log_normal", args, 2); err != nil {
			return nil, err
		}
		return LogNormal(args[0], args[1])
	})
	r.Register("schulz-zimm", func(args []float64) (Distribution, error) {
		if err := wantArgs("schulz-zimm", args, 2); err != nil {
			return nil, err
		}
		return SchulzZimm(args[0], args[1])
	})
	r.Register("gauss", func(args []float64) (Distribution, error) {
		if err := wantArgs("gauss", args, 2); err != nil {
			return nil, err
		}
		return Gaussian(args[0], args[1])
	})
	r.Register("uniform", func(args []float64) (Distribution, error) {
		if err := wantArgs("uniform", args, 2); err != nil {
			return nil, err
		}
		return Uniform(args[0], args[1])
	})
	r.Register("flory_schulz", func(args []float64) (Distribution, error) {
		if err := wantArgs("flory_schulz", args, 1); err != nil {
			return nil, err
		}
		return FlorySchulz(args[0])
	})
	r.Register("poisson", func(args []float64) (Distribution, error) {
		if err := wantArgs("poisson", args, 1); err != nil {
			return nil, err
		}
		return Poisson(args[0])
	})
	r.Register("custom", func(args []float64) (Distribution, error) {
		if err := wantArgs("custom", args, 2); err != nil {
			return nil, err
		}
		return Custom("custom", args[0], args[1])
	})
	return r
}

var defaultRegistry = NewDefaultRegistry()

// Default returns the shared registry holding the built-in models.
func Default() *Registry { return defaultRegistry }
