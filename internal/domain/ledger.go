package domain

// SolvencyState labels a ledger day by the sign of its closing balance.
type SolvencyState string

const (
	SolvencySolvent   SolvencyState = "SOLVENT"
	SolvencyInsolvent SolvencyState = "INSOLVENT"
)

// LedgerDay is one row of the daily cash-flow ledger: the net money
// moved that day split by direction, plus the running balance after
// applying it. Rows are ordered by date ascending; days with no
// activity are omitted.
type LedgerDay struct {
	Date       string        `json:"date"`
	NetInflow  float64       `json:"net_inflow"`
	NetOutflow float64       `json:"net_outflow"`
	Balance    float64       `json:"balance"`
	Solvency   SolvencyState `json:"solvency"`
}
