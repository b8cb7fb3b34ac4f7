package domain

import "time"

// RunSnapshot is the full output of one simulation run: the dataset a
// later run can resolve as its "live" source. It is held in the run
// store (Redis cache mirrored to disk) rather than module state.
type RunSnapshot struct {
	GeneratedAt    time.Time       `json:"generated_at"`
	Source         string          `json:"source"`
	SkippedRecords int             `json:"skipped_records"`
	InitialCash    float64         `json:"initial_cash"`
	ClosingBalance float64         `json:"closing_balance"`
	Trips          []Trip          `json:"trips"`
	Events         []MonetaryEvent `json:"events"`
	Expenses       []ExpenseRecord `json:"expenses"`
	Ledger         []LedgerDay     `json:"ledger"`
}
