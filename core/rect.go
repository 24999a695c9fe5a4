package core

// Rect is a screen-space bounding box in pixels
type Rect struct {
	Left, Top     int // Top-left corner
	Width, Height int
}

// Contains reports whether the point lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}
