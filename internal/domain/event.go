package domain

import "time"

// EventCategory classifies a monetary event on the cash timeline.
type EventCategory string

const (
	EventCommissionInflow    EventCategory = "COMMISSION_INFLOW"
	EventFixedExpenseOutflow EventCategory = "FIXED_EXPENSE_OUTFLOW"
)

// MonetaryEvent is a dated, signed amount on the cash timeline.
// Inflows are positive, outflows negative.
type MonetaryEvent struct {
	Date        time.Time     `json:"date"`
	Category    EventCategory `json:"category"`
	Amount      float64       `json:"amount"`
	Description string        `json:"description"`
}

// FixedExpenseRule describes a recurring operating expense. A rule
// fires when the day of month equals Day; a twice-monthly rule
// (FrequencyDays == 15) additionally fires on day 30.
type FixedExpenseRule struct {
	Description   string
	Amount        float64
	FrequencyDays int
	Day           int
}

// ExpenseRecord is the expense-ledger view of a fixed-expense firing,
// kept alongside the monetary event for reporting and verification.
type ExpenseRecord struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Owner       string  `json:"owner"`
}
