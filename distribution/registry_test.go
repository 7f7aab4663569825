package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryNames(t *testing.T) {
	want := []string{"custom", "flory_schulz", "gauss", "log_normal", "poisson", "schulz-zimm", "uniform"}
	assert.Equal(t, want, Default().Names())
}

func TestRegistryBuild(t *testing.T) {
	d, err := Default().Build("log_normal", []float64{5000, 1.2})
	require.NoError(t, err)
	assert.Equal(t, "log_normal", d.Name())
	assert.InDelta(t, 6000, d.Mw(), 1e-9)
}

func TestRegistryBuildUnknown(t *testing.T) {
	_, err := Default().Build("weibull", []float64{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"weibull"`)
}

func TestRegistryBuildWrongArity(t *testing.T) {
	tests := []struct {
		name string
		args []float64
	}{
		{"log_normal", []float64{5000}},
		{"flory_schulz", []float64{0.5, 0.6}},
		{"poisson", nil},
	}
	for _, tt := range tests {
		_, err := Default().Build(tt.name, tt.args)
		assert.Error(t, err, "model %s with %d args", tt.name, len(tt.args))
	}
}

func TestRegistryRegisterCustomModel(t *testing.T) {
	r := NewRegistry()
	r.Register("fixed", func(args []float64) (Distribution, error) {
		return Custom("fixed", 100, 1)
	})
	d, err := r.Build("fixed", nil)
	require.NoError(t, err)
	assert.Equal(t, "fixed", d.Name())
	assert.Equal(t, []string{"fixed"}, r.Names())
}
