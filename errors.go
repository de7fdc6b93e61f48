package polyrat

import "github.com/pkg/errors"

// ============================================================
// Error kinds
// ============================================================

// Every failure returned by the engine wraps exactly one of these sentinels,
// so callers can classify it with errors.Is.
var (
	ErrTypeMismatch    = errors.New("polyrat: type mismatch")
	ErrDivisionByZero  = errors.New("polyrat: division by zero")
	ErrInvalidExponent = errors.New("polyrat: invalid exponent")
	ErrConversion      = errors.New("polyrat: conversion error")
	ErrPole            = errors.New("polyrat: pole")
	ErrNumericAccuracy = errors.New("polyrat: numeric accuracy")
)

// Must panics if err is non-nil and returns v otherwise.
func Must(v Value, err error) Value {
	if err != nil {
		panic(err)
	}
	return v
}
