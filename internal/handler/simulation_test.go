package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"teso/internal/domain"
	"teso/internal/simulation"
	"teso/internal/source"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRunStore struct {
	snap    *domain.RunSnapshot
	loadErr error
}

func (f *fakeRunStore) Load(context.Context) (*domain.RunSnapshot, error) {
	return f.snap, f.loadErr
}

func (f *fakeRunStore) Save(_ context.Context, snap *domain.RunSnapshot) error {
	f.snap = snap
	return nil
}

type fakeLocker struct {
	held       bool
	acquireErr error
	releases   int
}

func (f *fakeLocker) AcquireSimulationLock(context.Context, time.Duration) (bool, error) {
	return !f.held, f.acquireErr
}

func (f *fakeLocker) ReleaseSimulationLock(context.Context) error {
	f.releases++
	return nil
}

func fixedTrips() []domain.Trip {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Trip{{
		ID: "t-1", Date: date, Client: "COMPANY_01", Channel: domain.ChannelCorporate,
		Driver: "COND-001", Vehicle: "TES-101", Status: domain.TripStatusScheduled,
		Fare: simulation.TariffFare, Toll: simulation.TollCost, CommissionRate: simulation.CommissionRate,
	}}
}

type fixedSource struct{ trips []domain.Trip }

func (fixedSource) Name() string { return "FIXED" }

func (s fixedSource) Load(context.Context, source.Request) (*source.Dataset, error) {
	return &source.Dataset{Trips: s.trips}, nil
}

func newHandler(store source.RunStore, locks SimulationLocker) *SimulationHandler {
	engine := simulation.NewEngine(
		source.NewResolver(fixedSource{trips: fixedTrips()}),
		store,
		rand.New(rand.NewSource(42)),
	)
	return NewSimulationHandler(engine, store, locks)
}

func perform(h gin.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	h(c)
	return w
}

func TestRun_ReturnsResult(t *testing.T) {
	store := &fakeRunStore{}
	h := newHandler(store, nil)

	w := perform(h.Run, http.MethodPost, "/v1/simulations", `{"horizon_days": 30}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var result simulation.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if result.Summary.TotalServices != 1 {
		t.Errorf("total services: got %d, want 1", result.Summary.TotalServices)
	}
	if store.snap == nil {
		t.Error("expected snapshot to be stored")
	}
}

func TestRun_EmptyBodyUsesDefaults(t *testing.T) {
	h := newHandler(&fakeRunStore{}, nil)

	w := perform(h.Run, http.MethodPost, "/v1/simulations", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
}

func TestRun_MalformedBodyRejected(t *testing.T) {
	h := newHandler(&fakeRunStore{}, nil)

	w := perform(h.Run, http.MethodPost, "/v1/simulations", `{"horizon_days": "a lot"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestRun_LockHeldConflicts(t *testing.T) {
	h := newHandler(&fakeRunStore{}, &fakeLocker{held: true})

	w := perform(h.Run, http.MethodPost, "/v1/simulations", `{}`)
	if w.Code != http.StatusConflict {
		t.Errorf("status: got %d, want 409", w.Code)
	}
}

func TestRun_LockReleasedAfterRun(t *testing.T) {
	locker := &fakeLocker{}
	h := newHandler(&fakeRunStore{}, locker)

	w := perform(h.Run, http.MethodPost, "/v1/simulations", `{"horizon_days": 10}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if locker.releases != 1 {
		t.Errorf("lock releases: got %d, want 1", locker.releases)
	}
}

func TestRun_LockStoreErrorDegradesGracefully(t *testing.T) {
	h := newHandler(&fakeRunStore{}, &fakeLocker{acquireErr: errors.New("redis down")})

	w := perform(h.Run, http.MethodPost, "/v1/simulations", `{"horizon_days": 10}`)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200 despite lock store failure", w.Code)
	}
}

func TestGetCurrent_NoRunIs404(t *testing.T) {
	h := newHandler(&fakeRunStore{}, nil)

	w := perform(h.GetCurrent, http.MethodGet, "/v1/simulations/current", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestGetCurrent_ReturnsSnapshot(t *testing.T) {
	store := &fakeRunStore{snap: &domain.RunSnapshot{Source: "SYNTHETIC", InitialCash: 720000000}}
	h := newHandler(store, nil)

	w := perform(h.GetCurrent, http.MethodGet, "/v1/simulations/current", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}

	var snap domain.RunSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if snap.Source != "SYNTHETIC" {
		t.Errorf("source: got %s, want SYNTHETIC", snap.Source)
	}
}

func TestExport_StreamsZip(t *testing.T) {
	store := &fakeRunStore{snap: &domain.RunSnapshot{
		Source: "SYNTHETIC",
		Trips:  fixedTrips(),
		Ledger: []domain.LedgerDay{{Date: "2025-03-01", Balance: 720000000, Solvency: domain.SolvencySolvent}},
	}}
	h := newHandler(store, nil)

	w := perform(h.Export, http.MethodGet, "/v1/simulations/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("content type: got %s, want application/zip", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "teso_simulation.zip") {
		t.Errorf("content disposition: got %s", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("expected non-empty archive body")
	}
}

func TestVerify_UsesSnapshotInitialCash(t *testing.T) {
	trips := fixedTrips()
	trips[0].Status = domain.TripStatusCompleted
	trips[0].Financials = simulation.NominalFinancials(simulation.TariffFare, simulation.CommissionRate, simulation.TollCost)

	store := &fakeRunStore{snap: &domain.RunSnapshot{
		Source:      "SYNTHETIC",
		InitialCash: 720000000,
		Trips:       trips,
	}}
	h := newHandler(store, nil)

	w := perform(h.Verify, http.MethodPost, "/v1/simulations/verify", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}

	var report domain.AuditReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.Status != domain.AuditStatusSecure {
		t.Errorf("status: got %s, want SECURE (flags %v)", report.Status, report.Flags)
	}
}

func TestVerify_InitialCashOverride(t *testing.T) {
	store := &fakeRunStore{snap: &domain.RunSnapshot{
		Source:      "SYNTHETIC",
		InitialCash: 720000000,
		Events: []domain.MonetaryEvent{{
			Date:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			Category: domain.EventFixedExpenseOutflow,
			Amount:   -100,
		}},
	}}
	h := newHandler(store, nil)

	// An override of zero initial cash turns the tiny outflow critical.
	w := perform(h.Verify, http.MethodPost, "/v1/simulations/verify", `{"initial_cash": 0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}

	var report domain.AuditReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.Status != domain.AuditStatusCritical {
		t.Errorf("status: got %s, want CRITICAL", report.Status)
	}
}

func TestVerify_NoRunIs404(t *testing.T) {
	h := newHandler(&fakeRunStore{}, nil)

	w := perform(h.Verify, http.MethodPost, "/v1/simulations/verify", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}
