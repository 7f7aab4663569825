package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNormal(t *testing.T) {
	d, err := LogNormal(5000, 1.2)
	require.NoError(t, err)
	assert.Equal(t, "log_normal", d.Name())
	assert.InDelta(t, 5000, d.Mn(), 1e-9)
	assert.InDelta(t, 6000, d.Mw(), 1e-9)
	assert.InDelta(t, 1.2, d.D(), 1e-9)
	assert.Contains(t, d.Details(), "log_normal")
	assert.Contains(t, d.Details(), "Mn=5000")
}

func TestSchulzZimm(t *testing.T) {
	d, err := SchulzZimm(10000, 1.5)
	require.NoError(t, err)
	assert.Equal(t, "schulz-zimm", d.Name())
	assert.InDelta(t, 15000, d.Mw(), 1e-9)
}

func TestGaussian(t *testing.T) {
	d, err := Gaussian(1000, 1.05)
	require.NoError(t, err)
	assert.Equal(t, "gauss", d.Name())
	assert.InDelta(t, 1050, d.Mw(), 1e-9)
}

func TestUniform(t *testing.T) {
	d, err := Uniform(1000, 3000)
	require.NoError(t, err)
	assert.Equal(t, "uniform", d.Name())
	assert.InDelta(t, 2000, d.Mn(), 1e-9)
	assert.InDelta(t, 13000000.0/3/2000, d.Mw(), 1e-9)
	assert.Contains(t, d.Details(), "low=1000")
	assert.Contains(t, d.Details(), "high=3000")
}

func TestFlorySchulz(t *testing.T) {
	d, err := FlorySchulz(0.99)
	require.NoError(t, err)
	assert.Equal(t, "flory_schulz", d.Name())
	assert.InDelta(t, 100, d.Mn(), 1e-9)
	assert.InDelta(t, 1.99, d.D(), 1e-9)
	assert.Contains(t, d.Details(), "conversion=0.99")
}

func TestPoisson(t *testing.T) {
	d, err := Poisson(50)
	require.NoError(t, err)
	assert.InDelta(t, 50, d.Mn(), 1e-9)
	assert.InDelta(t, 1.02, d.D(), 1e-9)
}

func TestCustom(t *testing.T) {
	d, err := Custom("sec-trace", 1234, 1.1)
	require.NoError(t, err)
	assert.Equal(t, "sec-trace", d.Name())

	d, err = Custom("", 1234, 1.1)
	require.NoError(t, err)
	assert.Equal(t, "custom", d.Name())
}

func TestModelValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"negative Mn", func() error { _, err := LogNormal(-5, 1.2); return err }()},
		{"dispersity below one", func() error { _, err := Gaussian(1000, 0.9); return err }()},
		{"uniform inverted bounds", func() error { _, err := Uniform(3000, 1000); return err }()},
		{"conversion above one", func() error { _, err := FlorySchulz(1.5); return err }()},
		{"zero chain length", func() error { _, err := Poisson(0); return err }()},
	}
	for _, tt := range tests {
		assert.Error(t, tt.err, tt.name)
	}
}
