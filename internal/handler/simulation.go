package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"teso/internal/domain"
	"teso/internal/export"
	"teso/internal/service"
	"teso/internal/simulation"
	"teso/internal/source"
	"teso/internal/verify"
)

const simulationLockTTL = 2 * time.Minute

// SimulationLocker serializes regeneration of the shared current
// dataset across concurrent requests.
type SimulationLocker interface {
	AcquireSimulationLock(ctx context.Context, ttl time.Duration) (bool, error)
	ReleaseSimulationLock(ctx context.Context) error
}

// SimulationHandler handles HTTP requests for simulation runs.
type SimulationHandler struct {
	engine *simulation.Engine
	store  source.RunStore
	locks  SimulationLocker
}

// NewSimulationHandler creates a new SimulationHandler. The store and
// locker may be nil when Redis and the disk mirror are unavailable.
func NewSimulationHandler(engine *simulation.Engine, store source.RunStore, locks SimulationLocker) *SimulationHandler {
	return &SimulationHandler{engine: engine, store: store, locks: locks}
}

// SimulationRequest is the JSON body for running a simulation. Absent
// fields take their documented defaults; an explicit non-positive
// horizon yields an empty result.
type SimulationRequest struct {
	HorizonDays          *int     `json:"horizon_days"`
	TrafficGrowth        *float64 `json:"traffic_growth"`
	ReceivableDays       *int     `json:"receivable_days"`
	PayableFrequencyDays *int     `json:"payable_frequency_days"`
	StressMode           bool     `json:"stress_mode"`
	BaseDailyTrips       *int     `json:"base_daily_trips"`
	DriverCount          *int     `json:"driver_count"`
}

func (r *SimulationRequest) params() simulation.Params {
	p := simulation.DefaultParams()
	if r.HorizonDays != nil {
		p.HorizonDays = *r.HorizonDays
	}
	if r.TrafficGrowth != nil {
		p.TrafficGrowth = *r.TrafficGrowth
	}
	if r.ReceivableDays != nil {
		p.ReceivableDays = *r.ReceivableDays
	}
	if r.PayableFrequencyDays != nil {
		p.PayableFrequencyDays = *r.PayableFrequencyDays
	}
	if r.BaseDailyTrips != nil {
		p.BaseDailyTrips = *r.BaseDailyTrips
	}
	if r.DriverCount != nil {
		p.DriverCount = *r.DriverCount
	}
	p.StressMode = r.StressMode
	return p
}

// Run handles POST /v1/simulations
func (h *SimulationHandler) Run(c *gin.Context) {
	var req SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()

	if h.locks != nil {
		ok, err := h.locks.AcquireSimulationLock(ctx, simulationLockTTL)
		if err == nil && !ok {
			respondError(c, service.ErrSimulationInProgress)
			return
		}
		if err == nil {
			defer func() { _ = h.locks.ReleaseSimulationLock(ctx) }()
		}
		// A lock-store error degrades to an unserialized run.
	}

	_, result, err := h.engine.Simulate(ctx, req.params())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, result)
}

// GetCurrent handles GET /v1/simulations/current
func (h *SimulationHandler) GetCurrent(c *gin.Context) {
	snap, err := h.loadSnapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, snap)
}

// Export handles GET /v1/simulations/export
func (h *SimulationHandler) Export(c *gin.Context) {
	snap, err := h.loadSnapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	workbook := export.BuildWorkbook(snap, simulation.DefaultParams().PayableFrequencyDays)

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="teso_simulation.zip"`)
	c.Status(http.StatusOK)
	if err := workbook.WriteZip(c.Writer); err != nil {
		// Headers are gone; nothing to do but abort the stream.
		c.Abort()
	}
}

// VerifyRequest is the optional JSON body for a verification call.
type VerifyRequest struct {
	InitialCash *float64 `json:"initial_cash"`
}

// Verify handles POST /v1/simulations/verify
func (h *SimulationHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	snap, err := h.loadSnapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	initialCash := snap.InitialCash
	if req.InitialCash != nil {
		initialCash = *req.InitialCash
	}

	report := verify.Evaluate(snap.Trips, snap.Events, snap.Expenses, initialCash)
	respondJSON(c, http.StatusOK, report)
}

func (h *SimulationHandler) loadSnapshot(ctx context.Context) (*domain.RunSnapshot, error) {
	if h.store == nil {
		return nil, service.ErrNoCurrentRun
	}
	snap, err := h.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, service.ErrNoCurrentRun
	}
	return snap, nil
}
