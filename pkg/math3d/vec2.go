package math3d

// Vec2 represents a 2D point, used for normalized view-plane and pixel
// coordinates.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale returns the component-wise product with (sx, sy).
func (a Vec2) Scale(sx, sy float64) Vec2 {
	return Vec2{a.X * sx, a.Y * sy}
}

// Cross returns the 2D cross product (determinant) a.X*b.Y - b.X*a.Y.
func (a Vec2) Cross(b Vec2) float64 {
	return a.X*b.Y - b.X*a.Y
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (a Vec2) IsFinite() bool {
	return isFinite(a.X) && isFinite(a.Y)
}
