package simulation

import (
	"sort"

	"teso/internal/domain"
)

// BuildTimeline aggregates monetary events into the daily cash-flow
// ledger. Events on the same calendar day are netted before applying;
// the running balance carries forward from the initial cash position.
// Days without activity are omitted. The build is deterministic for a
// given event set: only the daily net matters, not intra-day order.
func BuildTimeline(events []domain.MonetaryEvent, initialCash float64) []domain.LedgerDay {
	if len(events) == 0 {
		return []domain.LedgerDay{}
	}

	daily := make(map[string]float64, len(events))
	for _, ev := range events {
		daily[ev.Date.Format("2006-01-02")] += ev.Amount
	}

	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	ledger := make([]domain.LedgerDay, 0, len(dates))
	balance := initialCash
	for _, d := range dates {
		net := daily[d]
		balance += net

		day := domain.LedgerDay{
			Date:     d,
			Balance:  balance,
			Solvency: domain.SolvencySolvent,
		}
		if net > 0 {
			day.NetInflow = net
		} else {
			day.NetOutflow = net
		}
		if balance < 0 {
			day.Solvency = domain.SolvencyInsolvent
		}

		ledger = append(ledger, day)
	}

	return ledger
}
