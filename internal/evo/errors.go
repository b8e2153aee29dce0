package evo

import "errors"

var (
	// ErrInvalidSampleSize is returned when fewer than two parents are
	// available for breeding.
	ErrInvalidSampleSize = errors.New("invalid sample size")
	// ErrLengthMismatch is returned when a genome and the target disagree on
	// length.
	ErrLengthMismatch = errors.New("genome length mismatch")
)
