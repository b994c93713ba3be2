package cluster

// Rect is an axis-aligned rectangle in pixel coordinates with origin at
// the top-left corner of the image.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Overlaps reports whether r and other intersect. Rectangles that merely
// touch along an edge or corner count as overlapping.
func (r Rect) Overlaps(other Rect) bool {
	return r.X <= other.X+other.W &&
		r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H &&
		r.Y+r.H >= other.Y
}

// Union returns the minimal rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	x1 := minInt(r.X, other.X)
	y1 := minInt(r.Y, other.Y)
	x2 := maxInt(r.X+r.W, other.X+other.W)
	y2 := maxInt(r.Y+r.H, other.Y+other.H)
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Contains reports whether other lies entirely inside r.
func (r Rect) Contains(other Rect) bool {
	return r.X <= other.X && r.Y <= other.Y &&
		r.X+r.W >= other.X+other.W &&
		r.Y+r.H >= other.Y+other.H
}

// Fragment is a single OCR-detected text span: its bounding box on the
// page, the recognized text, and the recognizer's confidence score.
// Fragments are immutable once built from an OCR record.
type Fragment struct {
	Rect
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
