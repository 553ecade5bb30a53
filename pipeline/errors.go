package pipeline

import "errors"

// These mirror the root package's error taxonomy; they are redeclared
// here (rather than imported) because the root package wires this
// package's Renderer into its Device/Queue surface, and pipeline must
// not import back up to avoid a cycle.
var (
	ErrInvalidParameter  = errors.New("pipeline: invalid parameter")
	ErrUnsupportedState  = errors.New("pipeline: unsupported state")
	ErrInternalInvariant = errors.New("pipeline: internal invariant violated")
)
