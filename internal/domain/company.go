package domain

import "time"

// Company is a contracted corporate client. Trips for a company settle
// on the receivables cycle instead of same-day.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// FleetDriver is a registered driver/vehicle pairing in the pool the
// generator draws from and the payables sheet aggregates over.
type FleetDriver struct {
	ID           string
	Name         string
	VehiclePlate string
	CreatedAt    time.Time
}
