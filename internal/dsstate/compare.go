// Package dsstate implements the Depth-Stencil State Machine: compare
// function and stencil-op dispatch via tagged-variant switches instead
// of function-pointer tables.
package dsstate

// CompareFunc selects how a new value compares against the value
// already stored in the depth or stencil buffer.
type CompareFunc uint8

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// Evaluate reports whether newValue passes the test against ref under
// this compare function.
func (f CompareFunc) Evaluate(newValue, ref float32) bool {
	switch f {
	case CompareNever:
		return false
	case CompareLess:
		return newValue < ref
	case CompareEqual:
		return newValue == ref
	case CompareLessEqual:
		return newValue <= ref
	case CompareGreater:
		return newValue > ref
	case CompareNotEqual:
		return newValue != ref
	case CompareGreaterEqual:
		return newValue >= ref
	case CompareAlways:
		return true
	}
	return false
}
