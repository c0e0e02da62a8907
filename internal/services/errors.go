// internal/services/errors.go
package services

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already registered")
	ErrNotSimulated      = errors.New("product has not been simulated")
	ErrInvalidSimulation = errors.New("sell price, product cost and exchange rate must be positive and finite")
	ErrUnknownField      = errors.New("unknown simulation field")
	ErrInvalidWeight     = errors.New("weight must be a non-negative number")
	ErrInvalidStatus     = errors.New("invalid product status")
)
