package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teso/internal/domain"
)

func sampleSnapshot() *domain.RunSnapshot {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return &domain.RunSnapshot{
		GeneratedAt:    date,
		Source:         "SYNTHETIC",
		InitialCash:    720000000,
		ClosingBalance: 720050000,
		Trips: []domain.Trip{
			{
				ID: "t-1", Date: date, Client: "COMPANY_01", Channel: domain.ChannelCorporate,
				Driver: "COND-001", Vehicle: "TES-101", Status: domain.TripStatusCompleted,
				Fare: 125000, Toll: 18000, CommissionRate: 0.20,
				Financials: &domain.Financials{FareValue: 125000, PlatformRevenue: 25000, DriverPayment: 82000, Toll: 18000},
			},
			{
				ID: "t-2", Date: date, Client: "COMPANY_01", Channel: domain.ChannelCorporate,
				Driver: "COND-002", Vehicle: "TES-102", Status: domain.TripStatusCancelled,
				Fare: 125000, Toll: 18000, CommissionRate: 0.20,
				Financials: &domain.Financials{},
			},
		},
		Ledger: []domain.LedgerDay{
			{Date: "2025-03-01", NetInflow: 50000, Balance: 720050000, Solvency: domain.SolvencySolvent},
		},
	}
}

func TestBuildWorkbook_FourSheets(t *testing.T) {
	t.Parallel()

	wb := BuildWorkbook(sampleSnapshot(), 7)

	require.Len(t, wb.Sheets, 4)
	for _, name := range []string{SheetSchedule, SheetReceivables, SheetPayables, SheetCashFlow} {
		require.NotNil(t, wb.Sheet(name), "missing sheet %s", name)
	}
	assert.Nil(t, wb.Sheet("nope"))
}

func TestBuildWorkbook_StableHeaders(t *testing.T) {
	t.Parallel()

	wb := BuildWorkbook(sampleSnapshot(), 7)

	assert.Equal(t,
		[]string{"id", "date", "client", "channel", "driver", "vehicle", "status", "fare", "fare_value", "platform_revenue", "driver_payment", "toll"},
		wb.Sheet(SheetSchedule).Header)
	assert.Equal(t, []string{"client", "outstanding_fare"}, wb.Sheet(SheetReceivables).Header)
	assert.Equal(t, []string{"driver", "accrued_payment", "payout_cycle_days"}, wb.Sheet(SheetPayables).Header)
	assert.Equal(t, []string{"date", "net_inflow", "net_outflow", "balance", "solvency"}, wb.Sheet(SheetCashFlow).Header)
}

func TestBuildWorkbook_Aggregates(t *testing.T) {
	t.Parallel()

	wb := BuildWorkbook(sampleSnapshot(), 7)

	// Receivables aggregate nominal fares per client.
	receivables := wb.Sheet(SheetReceivables)
	require.Len(t, receivables.Rows, 1)
	assert.Equal(t, []string{"COMPANY_01", "250000.00"}, receivables.Rows[0])

	// Payables carry the adjusted driver payment and the payout cycle.
	payables := wb.Sheet(SheetPayables)
	require.Len(t, payables.Rows, 2)
	assert.Equal(t, []string{"COND-001", "82000.00", "7"}, payables.Rows[0])
	assert.Equal(t, []string{"COND-002", "0.00", "7"}, payables.Rows[1])
}

func TestWriteZip_RoundTrip(t *testing.T) {
	t.Parallel()

	wb := BuildWorkbook(sampleSnapshot(), 7)

	var buf bytes.Buffer
	require.NoError(t, wb.WriteZip(&buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 4)

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"schedule.csv", "receivables.csv", "payables.csv", "cash_flow.csv"} {
		assert.True(t, names[want], "missing %s in archive", want)
	}

	// The schedule CSV parses back with header plus one row per trip.
	for _, f := range zr.File {
		if f.Name != "schedule.csv" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		records, err := csv.NewReader(rc).ReadAll()
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Len(t, records, 3)
	}
}

func TestWriteZip_EmptyRun(t *testing.T) {
	t.Parallel()

	wb := BuildWorkbook(&domain.RunSnapshot{}, 7)

	var buf bytes.Buffer
	require.NoError(t, wb.WriteZip(&buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	// Sheets still exist, header only.
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.NotEmpty(t, data, "sheet %s should carry its header", f.Name)
	}
}
