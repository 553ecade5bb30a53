package dsstate

import "testing"

func TestCompareFuncEvaluate(t *testing.T) {
	tests := []struct {
		name            string
		f               CompareFunc
		newValue, ref   float32
		want            bool
	}{
		{"never", CompareNever, 0.1, 0.9, false},
		{"less_pass", CompareLess, 0.3, 0.5, true},
		{"less_fail", CompareLess, 0.7, 0.5, false},
		{"equal_pass", CompareEqual, 0.5, 0.5, true},
		{"equal_fail", CompareEqual, 0.5, 0.6, false},
		{"lessequal_boundary", CompareLessEqual, 0.5, 0.5, true},
		{"greater_pass", CompareGreater, 0.7, 0.5, true},
		{"notequal_pass", CompareNotEqual, 0.4, 0.5, true},
		{"greaterequal_boundary", CompareGreaterEqual, 0.5, 0.5, true},
		{"always", CompareAlways, 0.1, 0.9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Evaluate(tt.newValue, tt.ref); got != tt.want {
				t.Errorf("Evaluate(%v, %v) = %v, want %v", tt.newValue, tt.ref, got, tt.want)
			}
		})
	}
}
