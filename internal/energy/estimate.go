package energy

import (
	"github.com/jgoulah/btcenergy/internal/explorer"
	"github.com/jgoulah/btcenergy/pkg/models"
)

// EnergyPerByteKWh is a placeholder coefficient, not derived from measured consumption
const EnergyPerByteKWh = 4.56

// Estimate returns the energy in kWh attributed to sizeBytes of transaction data
func Estimate(sizeBytes int64) float64 {
	return float64(sizeBytes) * EnergyPerByteKWh
}

// ForTransaction estimates a single transaction
func ForTransaction(tx explorer.Transaction) models.TransactionEnergy {
	return models.TransactionEnergy{
		TxHash:    tx.Hash,
		Size:      tx.Size,
		EnergyKWh: Estimate(tx.Size),
	}
}
