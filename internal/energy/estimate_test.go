package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jgoulah/btcenergy/internal/explorer"
)

func TestEstimate(t *testing.T) {
	assert.Equal(t, 0.0, Estimate(0))
	assert.InDelta(t, 939.36, Estimate(206), 0.01)
	assert.InDelta(t, 1012.32, Estimate(222), 0.01)
	assert.InDelta(t, 875.52, Estimate(192), 0.01)

	for _, size := range []int64{1, 250, 300, 1000000} {
		assert.Equal(t, float64(size)*EnergyPerByteKWh, Estimate(size))
	}
}

func TestForTransaction(t *testing.T) {
	e := ForTransaction(explorer.Transaction{Hash: "tx123", Size: 250})
	assert.Equal(t, "tx123", e.TxHash)
	assert.Equal(t, int64(250), e.Size)
	assert.InDelta(t, 250*EnergyPerByteKWh, e.EnergyKWh, 1e-9)

	missing := ForTransaction(explorer.Transaction{Hash: "nosize"})
	assert.Equal(t, int64(0), missing.Size)
	assert.Equal(t, 0.0, missing.EnergyKWh)
}
