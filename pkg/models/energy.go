package models

// TransactionEnergy is the estimated energy of a single transaction
type TransactionEnergy struct {
	TxHash    string  `json:"tx_hash"`
	Size      int64   `json:"size"`       // Bytes
	EnergyKWh float64 `json:"energy_kwh"` // Size times the per-byte coefficient
}

// DailyEnergy represents a single day's estimated energy
type DailyEnergy struct {
	Date           string  `json:"date"` // YYYY-MM-DD, UTC
	TotalEnergyKWh float64 `json:"total_energy_kwh"`
}
