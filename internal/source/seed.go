package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"teso/internal/domain"
)

// seed CSV column layout. Header row required.
const (
	seedColID = iota
	seedColDate
	seedColClient
	seedColDriver
	seedColVehicle
	seedColChannel
	seedColFare
	seedColumns
)

var seedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// SeedSource resolves the dataset from the static seed CSV shipped
// with the system. Malformed rows are skipped and counted, never
// fatal.
type SeedSource struct {
	path string
}

// NewSeedSource creates a source over the given CSV path.
func NewSeedSource(path string) *SeedSource {
	return &SeedSource{path: path}
}

// Name implements Source.
func (s *SeedSource) Name() string { return "SEED_DATASET" }

// Load implements Source.
func (s *SeedSource) Load(ctx context.Context, _ Request) (*Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening seed dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading seed dataset: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrEmptyDataset
	}

	ds := &Dataset{}
	for i, record := range records {
		if i == 0 {
			continue // header
		}
		trip, ok := parseSeedRow(record)
		if !ok {
			ds.Skipped++
			continue
		}
		ds.Trips = append(ds.Trips, trip)
	}
	if len(ds.Trips) == 0 {
		return nil, ErrEmptyDataset
	}

	return ds, nil
}

// parseSeedRow converts one CSV row to a trip. Rows with unparseable
// dates are dropped; a blank or malformed fare falls back to the
// fixed tariff handled downstream by leaving Fare at zero.
func parseSeedRow(record []string) (domain.Trip, bool) {
	if len(record) < seedColumns {
		return domain.Trip{}, false
	}

	date, ok := parseSeedDate(strings.TrimSpace(record[seedColDate]))
	if !ok {
		return domain.Trip{}, false
	}

	client := strings.TrimSpace(record[seedColClient])
	if client == "" {
		client = domain.ClientIndividual
	}

	channel := domain.ChannelCorporate
	if strings.EqualFold(strings.TrimSpace(record[seedColChannel]), string(domain.ChannelOnDemand)) || client == domain.ClientIndividual {
		channel = domain.ChannelOnDemand
	}

	return domain.Trip{
		ID:      strings.TrimSpace(record[seedColID]),
		Date:    date,
		Client:  client,
		Channel: channel,
		Driver:  strings.TrimSpace(record[seedColDriver]),
		Vehicle: strings.TrimSpace(record[seedColVehicle]),
		Status:  domain.TripStatusScheduled,
		Fare:    ParseAmount(record[seedColFare]),
		Source:  "SEED_DATASET",
	}, true
}

func parseSeedDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range seedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAmount parses a currency value that may carry a symbol and
// thousands separators ("$125,000"). Returns 0 when unparseable; the
// engine substitutes the fixed tariff for zero fares.
func ParseAmount(raw string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}
