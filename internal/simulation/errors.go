package simulation

import "errors"

var (
	// ErrMissingFinancials is returned when a trip reaches outcome
	// resolution without a financial decomposition.
	ErrMissingFinancials = errors.New("trip has no financial fields")

	// ErrMalformedFinancials is returned when a trip's fare or driver
	// payment is absent or non-positive at outcome resolution.
	ErrMalformedFinancials = errors.New("trip financials malformed")

	// ErrNoDataSource is returned when every resolution rung,
	// including on-the-fly synthesis, failed.
	ErrNoDataSource = errors.New("no usable data source")
)
