// Package config validates split parameters before any class directory is
// touched. A bad ratio or fixed-count shape fails the run up front rather
// than after half the output tree has been written.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// RatioSumTolerance is the floating-point slack allowed when checking
// that ratio fractions sum to 1.
const RatioSumTolerance = 1e-5

// DefaultExtensions is the file allow-list applied when none is given.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png"}

// DefaultSeed is the shuffle seed applied when none is given, so runs
// without an explicit seed are still reproducible across machines.
const DefaultSeed = 1337

// ValidateRatio checks that ratio has 2 or 3 non-negative fractions
// summing to 1 within RatioSumTolerance.
func ValidateRatio(ratio []float64) error {
	if len(ratio) != 2 && len(ratio) != 3 {
		return fmt.Errorf("%w: ratio must have 2 or 3 elements, got %d", ErrInvalid, len(ratio))
	}

	sum := 0.0
	for _, r := range ratio {
		if r < 0 {
			return fmt.Errorf("%w: ratio fractions must be non-negative, got %v", ErrInvalid, r)
		}
		sum += r
	}
	if math.Abs(sum-1) > RatioSumTolerance {
		return fmt.Errorf("%w: ratio fractions must sum to 1, got %v", ErrInvalid, sum)
	}
	return nil
}

// ValidateFixed checks that fixed has 1 or 2 non-negative counts.
func ValidateFixed(fixed []int) error {
	if len(fixed) != 1 && len(fixed) != 2 {
		return fmt.Errorf("%w: fixed must have 1 or 2 counts, got %d", ErrInvalid, len(fixed))
	}
	for _, c := range fixed {
		if c < 0 {
			return fmt.Errorf("%w: fixed counts must be non-negative, got %d", ErrInvalid, c)
		}
	}
	return nil
}

// ValidateGroupPrefix checks an optional group size: zero disables
// grouping, anything else must be at least 2.
func ValidateGroupPrefix(size int) error {
	if size != 0 && size < 2 {
		return fmt.Errorf("%w: group prefix size must be at least 2, got %d", ErrInvalid, size)
	}
	return nil
}
