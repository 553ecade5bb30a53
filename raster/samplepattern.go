package raster

// Offset2D is a per-sample position offset within a pixel, expressed in
// eighths of a pixel (matching the fixed patterns below).
type Offset2D struct {
	X, Y float32
}

var (
	pattern1 = []Offset2D{{X: 4, Y: 4}}
	pattern2 = []Offset2D{{X: 4, Y: 2}, {X: 4, Y: 6}}
	pattern4 = []Offset2D{{X: 2, Y: 2}, {X: 6, Y: 2}, {X: 2, Y: 6}, {X: 6, Y: 6}}
)

// SamplePattern returns the fixed per-sample offsets for a 1, 2, or 4
// sample pipeline, in eighths of a pixel. It returns nil for any other
// count.
func SamplePattern(count int) []Offset2D {
	switch count {
	case 1:
		return pattern1
	case 2:
		return pattern2
	case 4:
		return pattern4
	}
	return nil
}

// SampleOffset converts an eighths-of-a-pixel Offset2D into the
// fractional pixel-center offset used by edge evaluation.
func SampleOffset(o Offset2D) (float32, float32) {
	return o.X / 8, o.Y / 8
}
