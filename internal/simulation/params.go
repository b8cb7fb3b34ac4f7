package simulation

// Business constants for the simulated fleet. The tariff is a fixed
// contract rate, not a market price; per-trip fare variation is a
// future extension.
const (
	// TariffFare is the flat fare per service in currency minor units.
	TariffFare = 125000.0

	// TollCost is the fixed toll passed through to the client.
	TollCost = 18000.0

	// CommissionRate is the platform take on every fare.
	CommissionRate = 0.20

	// NominalDriverPayment is the driver pass-through for an
	// undisturbed trip: fare minus commission minus toll.
	NominalDriverPayment = TariffFare - TariffFare*CommissionRate - TollCost

	// fleetDailyServices is the fleet-wide service volume the
	// working-capital rule assumes, independent of the requested
	// baseline.
	fleetDailyServices = 240

	// workingCapitalDays is how many days of operating cost the
	// initial cash buffer covers.
	workingCapitalDays = 30
)

// InitialCashPosition returns the opening cash balance for a run:
// thirty days of fleet-wide daily operating cost (driver payments plus
// tolls).
func InitialCashPosition() float64 {
	return fleetDailyServices * (NominalDriverPayment + TollCost) * workingCapitalDays
}

// Params are the settlement and generation knobs for one simulation
// run. The zero value of any field other than HorizonDays is replaced
// by its documented default; a zero or negative horizon yields an
// empty result rather than an error.
type Params struct {
	// HorizonDays is the length of the simulated window. Default 360.
	HorizonDays int

	// TrafficGrowth scales the baseline daily volume. Default 1.0.
	TrafficGrowth float64

	// ReceivableDays is the corporate settlement cycle: corporate
	// commissions become cash T+ReceivableDays. Default 30.
	ReceivableDays int

	// PayableFrequencyDays is the payable-run cadence reflected in the
	// payables sheet. Default 7.
	PayableFrequencyDays int

	// StressMode amplifies the chaos probabilities.
	StressMode bool

	// BaseDailyTrips is the baseline service count per day. Default 40.
	BaseDailyTrips int

	// DriverCount is the size of the driver pool. Default 45.
	DriverCount int

	// CorporateShare is the fraction of trips on the corporate
	// channel. Default 0.90.
	CorporateShare float64
}

// DefaultParams returns the documented defaults for a full-year run.
func DefaultParams() Params {
	return Params{
		HorizonDays:          360,
		TrafficGrowth:        1.0,
		ReceivableDays:       30,
		PayableFrequencyDays: 7,
		StressMode:           false,
		BaseDailyTrips:       40,
		DriverCount:          45,
		CorporateShare:       0.90,
	}
}

// withDefaults fills unset fields. HorizonDays is left alone: a
// non-positive horizon is a valid request for an empty run.
func (p Params) withDefaults() Params {
	def := DefaultParams()
	if p.TrafficGrowth <= 0 {
		p.TrafficGrowth = def.TrafficGrowth
	}
	if p.ReceivableDays <= 0 {
		p.ReceivableDays = def.ReceivableDays
	}
	if p.PayableFrequencyDays <= 0 {
		p.PayableFrequencyDays = def.PayableFrequencyDays
	}
	if p.BaseDailyTrips <= 0 {
		p.BaseDailyTrips = def.BaseDailyTrips
	}
	if p.DriverCount <= 0 {
		p.DriverCount = def.DriverCount
	}
	if p.CorporateShare <= 0 {
		p.CorporateShare = def.CorporateShare
	}
	return p
}
