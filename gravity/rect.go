package gravity

import "github.com/quartercastle/vector"

// Rect is an axis-aligned box given by its top-left corner and its size.
type Rect struct {
	X, Y, Width, Height float64
}

// ContainsPoint uses half-open bounds, so a point on the right or bottom
// edge belongs to the neighbouring box.
func (r Rect) ContainsPoint(x, y float64) bool {
	return r.X <= x && x < r.X+r.Width && r.Y <= y && y < r.Y+r.Height
}

func (r Rect) Contains(pos vector.Vector) bool {
	return r.ContainsPoint(pos.X(), pos.Y())
}

// Intersects returns false only if the boxes are separated on one axis.
// Touching edges count as intersecting.
func (r Rect) Intersects(other Rect) bool {
	above := other.Y+other.Height < r.Y
	below := other.Y > r.Y+r.Height
	left := other.X+other.Width < r.X
	right := other.X > r.X+r.Width
	return !(above || below || left || right)
}

func (r Rect) Center() vector.Vector {
	return vector.Vector{r.X + r.Width/2, r.Y + r.Height/2}
}

func (r Rect) Empty() bool {
	return !(r.Width > 0 && r.Height > 0)
}

// quadrants splits r at its midpoint: top left, top right, bottom left,
// bottom right. The far edges are taken from r so the children tile it
// without gaps.
func (r Rect) quadrants() [4]Rect {
	midX := r.X + r.Width/2
	midY := r.Y + r.Height/2
	right := r.X + r.Width
	bottom := r.Y + r.Height
	return [4]Rect{
		{X: r.X, Y: r.Y, Width: midX - r.X, Height: midY - r.Y},        // Top Left
		{X: midX, Y: r.Y, Width: right - midX, Height: midY - r.Y},     // Top right
		{X: r.X, Y: midY, Width: midX - r.X, Height: bottom - midY},    // Bottom Left
		{X: midX, Y: midY, Width: right - midX, Height: bottom - midY}, // Bottom Right
	}
}
