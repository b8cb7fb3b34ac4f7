package service

import "errors"

var (
	// ErrNoSeedData is returned when seeding is requested but the seed
	// dataset resolves to no trips.
	ErrNoSeedData = errors.New("seed dataset has no trips")

	// ErrAlreadySeeded is returned when the durable store already
	// holds trips; seeding is a one-time migration.
	ErrAlreadySeeded = errors.New("trip store already seeded")

	// ErrSimulationInProgress is returned when another request holds
	// the regeneration lock.
	ErrSimulationInProgress = errors.New("a simulation is already running")

	// ErrNoCurrentRun is returned when no simulation snapshot exists
	// yet.
	ErrNoCurrentRun = errors.New("no current simulation run")
)
