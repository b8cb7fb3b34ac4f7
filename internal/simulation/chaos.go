package simulation

import "teso/internal/domain"

// chaosThresholds are cumulative probability bands for outcome
// resolution: a uniform roll u lands in CANCELLED, DELAYED, NO_SHOW or
// COMPLETED depending on which threshold it falls under first.
type chaosThresholds struct {
	cancel float64
	delay  float64
	noShow float64
}

var (
	normalThresholds = chaosThresholds{cancel: 0.05, delay: 0.08, noShow: 0.10}
	stressThresholds = chaosThresholds{cancel: 0.30, delay: 0.50, noShow: 0.60}
)

// ApplyChaos resolves the outcome of a nominally completed trip from a
// single uniform roll and mutates its financials accordingly:
//
//   - CANCELLED zeroes every financial field.
//   - DELAYED pays the driver a 20% recovery premium, partly absorbed
//     out of platform revenue.
//   - NO_SHOW retains a 50% penalty fare, pays the driver 20% of the
//     original amount, and keeps the remainder as revenue.
//   - COMPLETED leaves the nominal fields untouched.
//
// Trips with absent or malformed financials fail fast instead of being
// emitted corrupted.
func ApplyChaos(t *domain.Trip, roll float64, stress bool) error {
	fin := t.Financials
	if fin == nil {
		return ErrMissingFinancials
	}
	if fin.FareValue <= 0 || fin.DriverPayment <= 0 {
		return ErrMalformedFinancials
	}

	th := normalThresholds
	if stress {
		th = stressThresholds
	}

	switch {
	case roll < th.cancel:
		t.Status = domain.TripStatusCancelled
		fin.FareValue = 0
		fin.PlatformRevenue = 0
		fin.DriverPayment = 0
		fin.Toll = 0
	case roll < th.delay:
		t.Status = domain.TripStatusDelayed
		fin.DriverPayment *= 1.2
		fin.PlatformRevenue -= fin.DriverPayment * 0.2
	case roll < th.noShow:
		t.Status = domain.TripStatusNoShow
		fin.FareValue *= 0.5
		fin.DriverPayment *= 0.2
		fin.PlatformRevenue = fin.FareValue - fin.DriverPayment
	default:
		t.Status = domain.TripStatusCompleted
	}

	return nil
}

// NominalFinancials derives the undisturbed money decomposition from a
// trip's contract terms. Trips loaded from a store or a seed file are
// normalized through this before outcome resolution, so every source
// goes through the same chaos path.
func NominalFinancials(fare, commissionRate, toll float64) *domain.Financials {
	revenue := fare * commissionRate
	return &domain.Financials{
		FareValue:       fare,
		PlatformRevenue: revenue,
		DriverPayment:   fare - revenue - toll,
		Toll:            toll,
	}
}
