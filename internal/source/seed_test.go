package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"teso/internal/domain"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing seed file: %v", err)
	}
	return path
}

const seedHeader = "id,date,client,driver,vehicle,channel,fare\n"

func TestSeedSource_LoadsRows(t *testing.T) {
	t.Parallel()

	path := writeSeedFile(t, seedHeader+
		"s-1,2025-03-01,COMPANY_01,COND-001,TES-101,CORPORATE,\"$125,000\"\n"+
		"s-2,2025-03-02 08:30:00,,COND-002,TES-102,ON_DEMAND,125000\n")

	ds, err := NewSeedSource(path).Load(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(ds.Trips))
	}
	if ds.Skipped != 0 {
		t.Errorf("expected 0 skipped, got %d", ds.Skipped)
	}

	first := ds.Trips[0]
	if first.Client != "COMPANY_01" || first.Channel != domain.ChannelCorporate {
		t.Errorf("first trip: client %s channel %s", first.Client, first.Channel)
	}
	if first.Fare != 125000 {
		t.Errorf("currency-formatted fare: got %f, want 125000", first.Fare)
	}

	// A blank client is the individual walk-up channel.
	second := ds.Trips[1]
	if second.Client != domain.ClientIndividual {
		t.Errorf("blank client: got %s, want INDIVIDUAL", second.Client)
	}
	if second.Channel != domain.ChannelOnDemand {
		t.Errorf("individual trip channel: got %s, want ON_DEMAND", second.Channel)
	}
}

func TestSeedSource_MalformedRowsSkippedAndCounted(t *testing.T) {
	t.Parallel()

	path := writeSeedFile(t, seedHeader+
		"s-1,2025-03-01,COMPANY_01,COND-001,TES-101,CORPORATE,125000\n"+
		"s-2,not-a-date,COMPANY_02,COND-002,TES-102,CORPORATE,125000\n"+
		"s-3,2025-03-03\n"+
		"s-4,2025-03-04,COMPANY_03,COND-003,TES-103,CORPORATE,125000\n")

	ds, err := NewSeedSource(path).Load(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Trips) != 2 {
		t.Errorf("expected 2 usable trips, got %d", len(ds.Trips))
	}
	if ds.Skipped != 2 {
		t.Errorf("expected 2 skipped rows, got %d", ds.Skipped)
	}
}

func TestSeedSource_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewSeedSource(filepath.Join(t.TempDir(), "absent.csv")).Load(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSeedSource_HeaderOnlyIsEmpty(t *testing.T) {
	t.Parallel()

	path := writeSeedFile(t, seedHeader)
	_, err := NewSeedSource(path).Load(context.Background(), Request{})
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		raw  string
		want float64
	}{
		{"125000", 125000},
		{"$125,000", 125000},
		{"$ 125,000.50", 125000.50},
		{"", 0},
		{"n/a", 0},
	}

	for _, tc := range testCases {
		if got := ParseAmount(tc.raw); got != tc.want {
			t.Errorf("ParseAmount(%q): got %f, want %f", tc.raw, got, tc.want)
		}
	}
}
