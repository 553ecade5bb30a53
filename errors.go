package salvia

import "errors"

// Sentinel errors for the rasterizer's error taxonomy (invalid parameter,
// unsupported state, internal invariant violation, resource conflict).
// Call sites wrap these with fmt.Errorf("%w", ...) to add context.
var (
	// ErrInvalidParameter indicates a caller passed a malformed argument:
	// a zero-area viewport, an out-of-range topology, a nil shader.
	ErrInvalidParameter = errors.New("salvia: invalid parameter")

	// ErrUnsupportedState indicates a request the core cannot satisfy:
	// a sample count outside {1, 2, 4}, an attribute count exceeding the
	// pipeline's maximum.
	ErrUnsupportedState = errors.New("salvia: unsupported state")

	// ErrInternalInvariant indicates a data-model invariant was violated.
	// Seeing this means a bug in geometry setup, binning, or the core,
	// not a caller mistake.
	ErrInternalInvariant = errors.New("salvia: internal invariant violated")

	// ErrResourceConflict indicates a target is mapped for CPU access
	// while the renderer still holds it for drawing.
	ErrResourceConflict = errors.New("salvia: resource conflict")
)
