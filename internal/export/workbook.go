// Package export builds the four-sheet tabular workbook produced by a
// simulation run. Sheets are CSV tables packed into a single zip
// archive; header names are stable for downstream consumers.
package export

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"teso/internal/domain"
)

// Sheet names.
const (
	SheetSchedule    = "schedule"
	SheetReceivables = "receivables"
	SheetPayables    = "payables"
	SheetCashFlow    = "cash_flow"
)

// Sheet is one tabular page of the workbook.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Workbook is the exportable result of one run: trip schedule,
// receivables by client, payables by driver, and the daily ledger.
type Workbook struct {
	Sheets []Sheet
}

// Sheet returns the named sheet, or nil.
func (w *Workbook) Sheet(name string) *Sheet {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i]
		}
	}
	return nil
}

// WriteZip writes the workbook as a zip archive of one CSV per sheet.
func (w *Workbook) WriteZip(dst io.Writer) error {
	zw := zip.NewWriter(dst)

	for _, sheet := range w.Sheets {
		f, err := zw.Create(sheet.Name + ".csv")
		if err != nil {
			return fmt.Errorf("creating sheet %s: %w", sheet.Name, err)
		}

		cw := csv.NewWriter(f)
		if err := cw.Write(sheet.Header); err != nil {
			return fmt.Errorf("writing header for %s: %w", sheet.Name, err)
		}
		for _, row := range sheet.Rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing row for %s: %w", sheet.Name, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("flushing sheet %s: %w", sheet.Name, err)
		}
	}

	return zw.Close()
}

// BuildWorkbook assembles the four sheets from a run snapshot.
// Receivables aggregate nominal fares per client; payables aggregate
// adjusted driver payments per driver on the configured payout cycle.
func BuildWorkbook(snap *domain.RunSnapshot, payableCycleDays int) *Workbook {
	return &Workbook{Sheets: []Sheet{
		scheduleSheet(snap.Trips),
		receivablesSheet(snap.Trips),
		payablesSheet(snap.Trips, payableCycleDays),
		cashFlowSheet(snap.Ledger),
	}}
}

func scheduleSheet(trips []domain.Trip) Sheet {
	sheet := Sheet{
		Name: SheetSchedule,
		Header: []string{
			"id", "date", "client", "channel", "driver", "vehicle", "status",
			"fare", "fare_value", "platform_revenue", "driver_payment", "toll",
		},
	}

	for i := range trips {
		t := &trips[i]
		var fareValue, revenue, payment, toll float64
		if t.Financials != nil {
			fareValue = t.Financials.FareValue
			revenue = t.Financials.PlatformRevenue
			payment = t.Financials.DriverPayment
			toll = t.Financials.Toll
		}
		sheet.Rows = append(sheet.Rows, []string{
			t.ID,
			t.Date.Format("2006-01-02"),
			t.Client,
			string(t.Channel),
			t.Driver,
			t.Vehicle,
			string(t.Status),
			money(t.Fare),
			money(fareValue),
			money(revenue),
			money(payment),
			money(toll),
		})
	}

	return sheet
}

func receivablesSheet(trips []domain.Trip) Sheet {
	totals := make(map[string]float64)
	for i := range trips {
		totals[trips[i].Client] += trips[i].Fare
	}

	sheet := Sheet{
		Name:   SheetReceivables,
		Header: []string{"client", "outstanding_fare"},
	}
	for _, client := range sortedKeys(totals) {
		sheet.Rows = append(sheet.Rows, []string{client, money(totals[client])})
	}

	return sheet
}

// payablesSheet is a simplified aggregate: accrued adjusted driver
// payments per driver, tagged with the payout cycle.
func payablesSheet(trips []domain.Trip, cycleDays int) Sheet {
	totals := make(map[string]float64)
	for i := range trips {
		if trips[i].Financials == nil {
			continue
		}
		totals[trips[i].Driver] += trips[i].Financials.DriverPayment
	}

	sheet := Sheet{
		Name:   SheetPayables,
		Header: []string{"driver", "accrued_payment", "payout_cycle_days"},
	}
	cycle := fmt.Sprintf("%d", cycleDays)
	for _, driver := range sortedKeys(totals) {
		sheet.Rows = append(sheet.Rows, []string{driver, money(totals[driver]), cycle})
	}

	return sheet
}

func cashFlowSheet(ledger []domain.LedgerDay) Sheet {
	sheet := Sheet{
		Name:   SheetCashFlow,
		Header: []string{"date", "net_inflow", "net_outflow", "balance", "solvency"},
	}
	for _, day := range ledger {
		sheet.Rows = append(sheet.Rows, []string{
			day.Date,
			money(day.NetInflow),
			money(day.NetOutflow),
			money(day.Balance),
			string(day.Solvency),
		})
	}

	return sheet
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
