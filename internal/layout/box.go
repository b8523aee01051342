package layout

// Rect is an axis-aligned rectangle in page points.
// X and Y name the lower-left corner unless a method says otherwise.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (r Rect) Right() float64 { return r.X + r.W }
func (r Rect) Top() float64   { return r.Y + r.H }

// Overlaps reports whether r and o share any interior area. Rectangles that
// only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Top() && o.Y < r.Top()
}

// Contains reports whether o lies entirely inside r, allowing eps of slack
// on every edge for floating point drift.
func (r Rect) Contains(o Rect, eps float64) bool {
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.Right() <= r.Right()+eps && o.Top() <= r.Top()+eps
}
