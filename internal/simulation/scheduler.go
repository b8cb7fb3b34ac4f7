package simulation

import (
	"fmt"
	"time"

	"teso/internal/domain"
)

const expenseOwner = "OPS_MANAGER"

// DefaultExpenseRules is the fixed operating-expense roster. The
// payroll rule is twice monthly: it fires on its configured day and
// again on day 30.
func DefaultExpenseRules() []domain.FixedExpenseRule {
	return []domain.FixedExpenseRule{
		{Description: "CLOUD INFRASTRUCTURE & SERVERS", Amount: 2500000, FrequencyDays: 30, Day: 5},
		{Description: "OFFICE & ADMINISTRATION", Amount: 4500000, FrequencyDays: 30, Day: 1},
		{Description: "SUPPORT STAFF PAYROLL", Amount: 12000000, FrequencyDays: 15, Day: 15},
	}
}

// Scheduler converts trips into dated monetary events under the
// settlement-timing policy: corporate commissions become cash at
// T+receivableDays, on-demand commissions at T+0. Fixed expenses are
// materialized across the trip date range.
type Scheduler struct {
	receivableDays int
	rules          []domain.FixedExpenseRule
}

// NewScheduler creates a scheduler with the default expense roster.
func NewScheduler(receivableDays int) *Scheduler {
	return &Scheduler{receivableDays: receivableDays, rules: DefaultExpenseRules()}
}

// NewSchedulerWithRules creates a scheduler with a custom expense roster.
func NewSchedulerWithRules(receivableDays int, rules []domain.FixedExpenseRule) *Scheduler {
	return &Scheduler{receivableDays: receivableDays, rules: rules}
}

// Schedule maps every trip to its COMMISSION_INFLOW event and fires
// the fixed-expense rules across [earliest trip date, latest trip
// date]. Trips are not mutated. The same policy applies whatever the
// data source was.
func (s *Scheduler) Schedule(trips []domain.Trip) ([]domain.MonetaryEvent, []domain.ExpenseRecord) {
	if len(trips) == 0 {
		return nil, nil
	}

	events := make([]domain.MonetaryEvent, 0, len(trips))
	minDate, maxDate := trips[0].Date, trips[0].Date

	for i := range trips {
		t := &trips[i]
		if t.Date.Before(minDate) {
			minDate = t.Date
		}
		if t.Date.After(maxDate) {
			maxDate = t.Date
		}

		var revenue float64
		if t.Financials != nil {
			revenue = t.Financials.PlatformRevenue
		}

		offset := 0
		if t.IsCorporate() {
			offset = s.receivableDays
		}

		events = append(events, domain.MonetaryEvent{
			Date:        t.Date.AddDate(0, 0, offset),
			Category:    domain.EventCommissionInflow,
			Amount:      revenue,
			Description: fmt.Sprintf("Commission - %s", t.Client),
		})
	}

	expenseEvents, records := s.materializeExpenses(minDate, maxDate)
	events = append(events, expenseEvents...)

	return events, records
}

// materializeExpenses walks the date range one calendar day at a time
// and fires each rule on its configured day of month, plus day 30 for
// twice-monthly rules.
func (s *Scheduler) materializeExpenses(from, to time.Time) ([]domain.MonetaryEvent, []domain.ExpenseRecord) {
	var events []domain.MonetaryEvent
	var records []domain.ExpenseRecord

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		for _, rule := range s.rules {
			if day.Day() != rule.Day && !(rule.FrequencyDays == 15 && day.Day() == 30) {
				continue
			}
			events = append(events, domain.MonetaryEvent{
				Date:        day,
				Category:    domain.EventFixedExpenseOutflow,
				Amount:      -rule.Amount,
				Description: rule.Description,
			})
			records = append(records, domain.ExpenseRecord{
				Date:        day.Format("2006-01-02"),
				Category:    "FIXED_EXPENSES",
				Description: rule.Description,
				Amount:      -rule.Amount,
				Owner:       expenseOwner,
			})
		}
	}

	return events, records
}
