package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"teso/internal/domain"
	"teso/internal/source"
)

const corporateRosterSize = 20

// Generator synthesizes nominal trip datasets for a bounded horizon.
// All randomness flows through the injected rand source so runs can be
// reproduced under test.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator. A nil rng gets a time-seeded one.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, now: time.Now}
}

// Generate produces one nominal SCHEDULED trip per simulated service
// across the horizon ending today. Daily volume is the baseline scaled
// by traffic growth with a ±20% uniform variance. Outcome resolution
// happens later, in the engine, so stored and synthetic datasets share
// one chaos path.
func (g *Generator) Generate(ctx context.Context, req source.Request) ([]domain.Trip, error) {
	if req.HorizonDays <= 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	companies := make([]string, corporateRosterSize)
	for i := range companies {
		companies[i] = fmt.Sprintf("COMPANY_%02d", i+1)
	}

	start := g.now().AddDate(0, 0, -req.HorizonDays)
	trips := make([]domain.Trip, 0, req.HorizonDays*req.BaseDailyTrips)

	for d := 0; d < req.HorizonDays; d++ {
		date := start.AddDate(0, 0, d)
		dailyOps := int(float64(req.BaseDailyTrips) * req.TrafficGrowth * (0.8 + 0.4*g.rng.Float64()))

		for i := 0; i < dailyOps; i++ {
			corporate := g.rng.Float64() < req.CorporateShare

			client := domain.ClientIndividual
			channel := domain.ChannelOnDemand
			if corporate {
				client = companies[g.rng.Intn(len(companies))]
				channel = domain.ChannelCorporate
			}

			trips = append(trips, domain.Trip{
				ID:             uuid.New().String(),
				Date:           date,
				Client:         client,
				Channel:        channel,
				Driver:         fmt.Sprintf("COND-%03d", g.rng.Intn(req.DriverCount)+1),
				Vehicle:        fmt.Sprintf("TES-%03d", 100+g.rng.Intn(900)),
				Status:         domain.TripStatusScheduled,
				Fare:           TariffFare,
				Toll:           TollCost,
				CommissionRate: CommissionRate,
				Notes:          "Simulated event",
				Route:          "Optimized route",
				Source:         "SYNTHETIC",
			})
		}
	}

	return trips, nil
}
