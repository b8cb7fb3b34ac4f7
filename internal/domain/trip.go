package domain

import "time"

// TripStatus represents the outcome of a scheduled trip.
type TripStatus string

const (
	TripStatusScheduled TripStatus = "SCHEDULED"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCancelled TripStatus = "CANCELLED"
	TripStatusDelayed   TripStatus = "DELAYED"
	TripStatusNoShow    TripStatus = "NO_SHOW"
)

// Channel distinguishes pre-contracted corporate business from
// walk-up on-demand business. The channel decides settlement timing.
type Channel string

const (
	ChannelCorporate Channel = "CORPORATE"
	ChannelOnDemand  Channel = "ON_DEMAND"
)

// ClientIndividual is the sentinel client name for on-demand trips
// that have no contracted company behind them.
const ClientIndividual = "INDIVIDUAL"

// Financials holds the outcome-adjusted money decomposition of a trip.
// FareValue is the gross value actually retained (a NO_SHOW keeps only
// the penalty fare, a CANCELLED trip retains nothing).
type Financials struct {
	FareValue       float64 `json:"fare_value"`
	PlatformRevenue float64 `json:"platform_revenue"`
	DriverPayment   float64 `json:"driver_payment"`
	Toll            float64 `json:"toll"`
}

// Trip represents one transport engagement, completed or not.
//
// Fare and CommissionRate are the nominal contract terms; Financials
// carries the derived fields after outcome mutation. For a COMPLETED
// trip DriverPayment + PlatformRevenue + Toll == Fare.
type Trip struct {
	ID             string      `json:"id"`
	Date           time.Time   `json:"date"`
	Client         string      `json:"client"`
	Channel        Channel     `json:"channel"`
	Driver         string      `json:"driver"`
	Vehicle        string      `json:"vehicle"`
	Status         TripStatus  `json:"status"`
	Fare           float64     `json:"fare"`
	Toll           float64     `json:"toll"`
	CommissionRate float64     `json:"commission_rate"`
	Financials     *Financials `json:"financials,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	Route          string      `json:"route,omitempty"`
	Source         string      `json:"source,omitempty"`
}

// IsCorporate reports whether the trip settles on the corporate cycle.
func (t *Trip) IsCorporate() bool {
	return t.Channel == ChannelCorporate
}
