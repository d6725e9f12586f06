package compute

import "errors"

var (
	// ErrDivisionByZero is returned by Calculator.Divide when the divisor is
	// exactly zero. Nothing is recorded in that case.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrEmptyInput is returned by Processor.ProcessNumbers for an empty list.
	ErrEmptyInput = errors.New("input list is empty")

	ErrInvalidNumber = errors.New("invalid numeric input")
)
