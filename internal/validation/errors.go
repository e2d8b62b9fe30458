package validation

import "errors"

// Validation errors
var (
	ErrUnreasonablePrice    = errors.New("unreasonable price value")
	ErrUnreasonableVolume   = errors.New("unreasonable volume value")
	ErrInvalidSymbol        = errors.New("invalid stock symbol")
	ErrZeroDate             = errors.New("bar has no date")
	ErrInconsistentBar      = errors.New("bar high/low inconsistent with open/close")
	ErrMissingRequiredField = errors.New("missing required field")
)
