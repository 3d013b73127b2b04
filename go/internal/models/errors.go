package models

import "errors"

// Error classes shared by the app layers. Package specific sentinels wrap one
// of these so transports can map them without knowing every package.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)
