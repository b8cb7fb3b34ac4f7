package simulation

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"teso/internal/domain"
	"teso/internal/export"
	"teso/internal/source"
)

// bankName keys the single current-balance snapshot in the result.
const bankName = "BANCOLOMBIA"

// Summary is the headline block of a simulation result.
type Summary struct {
	TotalServices  int    `json:"total_services"`
	Source         string `json:"source"`
	SkippedRecords int    `json:"skipped_records"`
}

// EventView is a monetary event with its date rendered as an ISO-8601
// string for API consumers.
type EventView struct {
	Date        string               `json:"date"`
	Category    domain.EventCategory `json:"category"`
	Amount      float64              `json:"amount"`
	Description string               `json:"description"`
}

// BankBalance is the current-balance snapshot keyed by bank name.
type BankBalance struct {
	Bank    string  `json:"bank"`
	Balance float64 `json:"balance"`
}

// Result is the structured output of one simulation run.
type Result struct {
	Summary          Summary            `json:"summary"`
	Services         []domain.Trip      `json:"services"`
	CashFlow         []domain.LedgerDay `json:"cash_flow"`
	DetailedCashFlow []EventView        `json:"detailed_cash_flow"`
	Banks            []BankBalance      `json:"banks"`
}

// Engine runs one simulation pass: resolve the dataset, resolve each
// trip's outcome, schedule settlements, build the ledger, snapshot the
// run. It holds no state across runs beyond what the run store keeps.
type Engine struct {
	resolver *source.Resolver
	store    source.RunStore
	rng      *rand.Rand
	now      func() time.Time
}

// NewEngine creates an engine. The store may be nil (runs are then not
// snapshotted); a nil rng gets a time-seeded one.
func NewEngine(resolver *source.Resolver, store source.RunStore, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{resolver: resolver, store: store, rng: rng, now: time.Now}
}

// Simulate executes one full run and returns the exportable workbook
// alongside the structured result. A non-positive horizon or an empty
// resolved dataset yields an empty-but-valid result. The only error
// case is total source-resolution failure.
func (e *Engine) Simulate(ctx context.Context, p Params) (*export.Workbook, *Result, error) {
	p = p.withDefaults()

	if p.HorizonDays <= 0 {
		return e.emptyRun(p, "NONE", 0)
	}

	ds, err := e.resolver.Resolve(ctx, source.Request{
		HorizonDays:    p.HorizonDays,
		BaseDailyTrips: p.BaseDailyTrips,
		DriverCount:    p.DriverCount,
		TrafficGrowth:  p.TrafficGrowth,
		CorporateShare: p.CorporateShare,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNoDataSource, err)
	}

	skipped := ds.Skipped
	trips := make([]domain.Trip, 0, len(ds.Trips))
	for _, t := range ds.Trips {
		normalizeTrip(&t)
		if err := ApplyChaos(&t, e.rng.Float64(), p.StressMode); err != nil {
			skipped++
			continue
		}
		trips = append(trips, t)
	}

	if len(trips) == 0 {
		return e.emptyRun(p, ds.Name, skipped)
	}

	events, expenses := NewScheduler(p.ReceivableDays).Schedule(trips)

	initialCash := InitialCashPosition()
	ledger := BuildTimeline(events, initialCash)
	closing := initialCash
	if len(ledger) > 0 {
		closing = ledger[len(ledger)-1].Balance
	}

	snap := &domain.RunSnapshot{
		GeneratedAt:    e.now(),
		Source:         ds.Name,
		SkippedRecords: skipped,
		InitialCash:    initialCash,
		ClosingBalance: closing,
		Trips:          trips,
		Events:         events,
		Expenses:       expenses,
		Ledger:         ledger,
	}

	if e.store != nil {
		if err := e.store.Save(ctx, snap); err != nil {
			log.Printf("saving run snapshot: %v", err)
		}
	}

	return export.BuildWorkbook(snap, p.PayableFrequencyDays), buildResult(snap), nil
}

// normalizeTrip rebuilds the nominal financial decomposition from the
// trip's contract terms, substituting the fixed tariff and toll for
// blank values on stored rows. Every source then shares one outcome
// path.
func normalizeTrip(t *domain.Trip) {
	if t.Fare <= 0 {
		t.Fare = TariffFare
	}
	if t.Toll <= 0 {
		t.Toll = TollCost
	}
	if t.CommissionRate <= 0 {
		t.CommissionRate = CommissionRate
	}
	t.Status = domain.TripStatusScheduled
	t.Financials = NominalFinancials(t.Fare, t.CommissionRate, t.Toll)
}

func (e *Engine) emptyRun(p Params, sourceName string, skipped int) (*export.Workbook, *Result, error) {
	snap := &domain.RunSnapshot{
		GeneratedAt:    e.now(),
		Source:         sourceName,
		SkippedRecords: skipped,
		InitialCash:    InitialCashPosition(),
		ClosingBalance: InitialCashPosition(),
		Ledger:         []domain.LedgerDay{},
	}
	return export.BuildWorkbook(snap, p.PayableFrequencyDays), buildResult(snap), nil
}

func buildResult(snap *domain.RunSnapshot) *Result {
	views := make([]EventView, 0, len(snap.Events))
	for _, ev := range snap.Events {
		views = append(views, EventView{
			Date:        ev.Date.Format(time.RFC3339),
			Category:    ev.Category,
			Amount:      ev.Amount,
			Description: ev.Description,
		})
	}

	return &Result{
		Summary: Summary{
			TotalServices:  len(snap.Trips),
			Source:         snap.Source,
			SkippedRecords: snap.SkippedRecords,
		},
		Services:         snap.Trips,
		CashFlow:         snap.Ledger,
		DetailedCashFlow: views,
		Banks:            []BankBalance{{Bank: bankName, Balance: snap.ClosingBalance}},
	}
}
