package sim

import "errors"

// Setup errors. Every one of them aborts construction before the first tick;
// callers match them with errors.Is.
var (
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrUnknownStation        = errors.New("unknown station")
	ErrMissingDestination    = errors.New("station has no destination")
	ErrInvalidTravelTime     = errors.New("travel time must be positive")
	ErrNotACycle             = errors.New("track is not a single cycle over all stations")
	ErrDuplicateStartStation = errors.New("multiple trains start at the same station")
)
