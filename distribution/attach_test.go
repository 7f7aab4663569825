package distribution

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylanwal/BigSMILES/bigsmiles"
)

func TestAttachDetach(t *testing.T) {
	g, err := bigsmiles.Parse("{[][$]CC[$][]}")
	require.NoError(t, err)

	d, err := LogNormal(5000, 1.2)
	require.NoError(t, err)

	id, err := Attach(g, 0, d)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	// One distribution per stochastic object.
	_, err = Attach(g, 0, d)
	require.Error(t, err)

	got, ok := Detach(g, id)
	require.True(t, ok)
	assert.Equal(t, d, got)

	_, ok = Detach(g, id)
	assert.False(t, ok)

	_, err = Attach(g, 0, d)
	assert.NoError(t, err, "detach frees the slot")
}

func TestAttachBadIndex(t *testing.T) {
	g, err := bigsmiles.Parse("CC")
	require.NoError(t, err)
	d, err := Poisson(100)
	require.NoError(t, err)
	_, err = Attach(g, 0, d)
	require.Error(t, err)
}

func TestAttachedOrdered(t *testing.T) {
	g, err := bigsmiles.Parse("C{[<][>]CC[<][>]}C{[<][>]OO[<][>]}C")
	require.NoError(t, err)
	require.Len(t, g.StochasticObjects(), 2)

	second, err := FlorySchulz(0.5)
	require.NoError(t, err)
	first, err := Poisson(100)
	require.NoError(t, err)

	_, err = Attach(g, 1, second)
	require.NoError(t, err)
	_, err = Attach(g, 0, first)
	require.NoError(t, err)

	attached := Attached(g)
	require.Len(t, attached, 2)
	assert.Equal(t, 0, attached[0].ObjectIndex)
	assert.Equal(t, "poisson", attached[0].Distribution.Name())
	assert.Equal(t, 1, attached[1].ObjectIndex)
	assert.Equal(t, "flory_schulz", attached[1].Distribution.Name())
}
