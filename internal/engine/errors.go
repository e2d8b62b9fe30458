package engine

import "errors"

// Engine errors
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownSymbol    = errors.New("unknown symbol")
	ErrInsufficientData = errors.New("insufficient data")
	ErrSameSymbol       = errors.New("cannot compare a symbol with itself")
)
