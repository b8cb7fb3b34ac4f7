package domain

// AuditStatus is the overall verdict of a verification run.
type AuditStatus string

const (
	AuditStatusSecure   AuditStatus = "SECURE"
	AuditStatusWarning  AuditStatus = "WARNING"
	AuditStatusCritical AuditStatus = "CRITICAL"
)

// RiskTier grades insolvency exposure.
type RiskTier string

const (
	RiskNone     RiskTier = "NONE"
	RiskModerate RiskTier = "MODERATE"
	RiskHigh     RiskTier = "HIGH"
)

// AuditMetrics carries the measured values behind an audit verdict.
type AuditMetrics struct {
	MinCashPosition       float64  `json:"min_cash_position"`
	InsolvencyRisk        RiskTier `json:"insolvency_risk"`
	UnitEconomicsValidity string   `json:"unit_economics_validity"`
	CheckedTrips          int      `json:"checked_trips"`
	SkippedTrips          int      `json:"skipped_trips"`
}

// AuditReport is the scored result of one verification call. Reports
// are built fresh per call and never persisted by the engine itself.
type AuditReport struct {
	Score   int          `json:"score"`
	Status  AuditStatus  `json:"status"`
	Flags   []string     `json:"flags"`
	Metrics AuditMetrics `json:"metrics"`
}
