package gpe

import "errors"

// Domain errors for simulation construction and evaluation.
var (
	// ErrDerivativeOrder indicates a dispersion derivative order outside {0,1,2}.
	ErrDerivativeOrder = errors.New("gpe: unsupported derivative order")

	// ErrGridSize indicates non-positive grid dimensions.
	ErrGridSize = errors.New("gpe: grid dimensions must be positive")

	// ErrGridSpacing indicates a non-positive grid spacing.
	ErrGridSpacing = errors.New("gpe: grid spacing must be positive")

	// ErrHealingLength indicates a non-positive healing length.
	ErrHealingLength = errors.New("gpe: healing length must be positive")

	// ErrTimeStep indicates a non-positive time-step scale.
	ErrTimeStep = errors.New("gpe: time-step scale must be positive")

	// ErrTracerCount indicates a negative tracer particle count.
	ErrTracerCount = errors.New("gpe: tracer count must be non-negative")
)
