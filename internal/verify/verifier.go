// Package verify audits a simulation run: it recomputes per-trip unit
// economics independently of the settlement path and replays the cash
// timeline looking for insolvency windows.
package verify

import (
	"fmt"
	"math"
	"sort"

	"teso/internal/domain"
	"teso/internal/simulation"
)

const (
	// EconomicsTolerance is the absolute rounding slack allowed when
	// comparing recomputed financials against stored ones.
	EconomicsTolerance = 2.0

	// LowLiquidityThreshold is the minimum comfortable cash buffer;
	// dipping under it without going negative is a WARNING.
	LowLiquidityThreshold = 50000000.0

	// validityFloor is the unit-economics validity percentage under
	// which the report loses points.
	validityFloor = 99.0
)

// Evaluate audits trips and monetary events against an initial cash
// assumption and returns a fresh report. The expense records are
// accepted for interface completeness; their cash effect already
// arrives through the monetary events.
func Evaluate(trips []domain.Trip, events []domain.MonetaryEvent, _ []domain.ExpenseRecord, initialCash float64) *domain.AuditReport {
	report := &domain.AuditReport{
		Score:  100,
		Status: domain.AuditStatusSecure,
		Flags:  []string{},
		Metrics: domain.AuditMetrics{
			InsolvencyRisk:        domain.RiskNone,
			UnitEconomicsValidity: "UNKNOWN",
		},
	}

	checkUnitEconomics(trips, report)
	checkSolvency(events, initialCash, report)

	return report
}

// checkUnitEconomics recomputes each trip's expected revenue and
// driver payment from its contract terms and outcome, and counts every
// comparison outside tolerance. Trips without financial sub-fields are
// excluded from the denominator.
func checkUnitEconomics(trips []domain.Trip, report *domain.AuditReport) {
	var checks, errCount, skipped int

	for i := range trips {
		t := &trips[i]
		if t.Financials == nil || t.Fare <= 0 {
			skipped++
			continue
		}

		expRevenue, expPayment := expectedFinancials(t)
		if math.Abs(t.Financials.PlatformRevenue-expRevenue) > EconomicsTolerance {
			errCount++
		}
		if math.Abs(t.Financials.DriverPayment-expPayment) > EconomicsTolerance {
			errCount++
		}
		checks += 2
	}

	report.Metrics.CheckedTrips = checks / 2
	report.Metrics.SkippedTrips = skipped

	if checks == 0 {
		return
	}

	validity := float64(checks-errCount) / float64(checks) * 100
	report.Metrics.UnitEconomicsValidity = fmt.Sprintf("%.1f%%", validity)
	if validity < validityFloor {
		report.Score -= 20
		report.Flags = append(report.Flags, fmt.Sprintf("Unit economics mismatch (%.1f%% error rate)", 100-validity))
	}
}

// expectedFinancials mirrors the outcome mutation rules, so a trip
// that went through the generator untampered always agrees with its
// stored fields. The original fare is never used for non-completed
// outcomes; expectations follow the outcome-adjusted terms.
func expectedFinancials(t *domain.Trip) (revenue, payment float64) {
	rate := t.CommissionRate
	if rate <= 0 {
		rate = simulation.CommissionRate
	}
	nominalRevenue := t.Fare * rate
	nominalPayment := t.Fare - nominalRevenue - t.Toll

	switch t.Status {
	case domain.TripStatusCancelled:
		return 0, 0
	case domain.TripStatusDelayed:
		payment = nominalPayment * 1.2
		return nominalRevenue - payment*0.2, payment
	case domain.TripStatusNoShow:
		payment = nominalPayment * 0.2
		return t.Fare*0.5 - payment, payment
	default:
		return nominalRevenue, nominalPayment
	}
}

// checkSolvency replays events in date order from the initial cash and
// tracks the running minimum. Any negative minimum is CRITICAL and
// zeroes the score outright; a thin positive buffer is a WARNING.
func checkSolvency(events []domain.MonetaryEvent, initialCash float64, report *domain.AuditReport) {
	sorted := make([]domain.MonetaryEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	balance := initialCash
	minCash := initialCash
	var insolvencyDate string

	for _, ev := range sorted {
		balance += ev.Amount
		if balance < minCash {
			minCash = balance
		}
		if balance < 0 && insolvencyDate == "" {
			insolvencyDate = ev.Date.Format("2006-01-02")
		}
	}

	report.Metrics.MinCashPosition = minCash

	switch {
	case minCash < 0:
		report.Status = domain.AuditStatusCritical
		report.Score = 0
		report.Metrics.InsolvencyRisk = domain.RiskHigh
		report.Flags = append(report.Flags, fmt.Sprintf("INSOLVENCY DETECTED on %s. Min cash: %.0f", insolvencyDate, minCash))
	case minCash < LowLiquidityThreshold:
		report.Status = domain.AuditStatusWarning
		report.Score -= 30
		report.Metrics.InsolvencyRisk = domain.RiskModerate
		report.Flags = append(report.Flags, fmt.Sprintf("Low liquidity buffer (min cash %.0f below %.0f)", minCash, LowLiquidityThreshold))
	}
}
