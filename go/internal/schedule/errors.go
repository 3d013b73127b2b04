package schedule

import "errors"

// Configuration errors. Generation cannot start without these reference rows.
var (
	ErrMissingPeriodType     = errors.New("period type is not configured")
	ErrMissingPredictionKind = errors.New("no-pick prediction kind is not configured")
)
