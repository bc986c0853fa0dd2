package flatui

// Vec2 is a position or size in virtual units.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Vec2i is a position or size in physical pixels.
// The origin is the top-left corner of the viewport.
type Vec2i struct {
	X, Y int
}

// Add returns the sum of two vectors.
func (v Vec2i) Add(other Vec2i) Vec2i {
	return Vec2i{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2i) Sub(other Vec2i) Vec2i {
	return Vec2i{X: v.X - other.X, Y: v.Y - other.Y}
}

// Axis returns the X component for axis 0 and the Y component otherwise.
func (v Vec2i) Axis(axis int) int {
	if axis == 0 {
		return v.X
	}
	return v.Y
}

// Min returns the component-wise minimum.
func (v Vec2i) Min(other Vec2i) Vec2i {
	return Vec2i{X: min(v.X, other.X), Y: min(v.Y, other.Y)}
}

// Max returns the component-wise maximum.
func (v Vec2i) Max(other Vec2i) Vec2i {
	return Vec2i{X: max(v.X, other.X), Y: max(v.Y, other.Y)}
}

// InRange reports whether p lies in the half-open box [lo, hi).
func InRange(p, lo, hi Vec2i) bool {
	return p.X >= lo.X && p.X < hi.X && p.Y >= lo.Y && p.Y < hi.Y
}

// Rect is an integer rectangle with a top-left position and a size.
type Rect struct {
	Pos  Vec2i
	Size Vec2i
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Vec2i) bool {
	return InRange(p, r.Pos, r.Pos.Add(r.Size))
}

// Margin holds per-edge spacing around a group's children.
type Margin struct {
	Left, Top, Right, Bottom float32
}

// UniformMargin returns a margin with the same value on every edge.
func UniformMargin(m float32) Margin {
	return Margin{Left: m, Top: m, Right: m, Bottom: m}
}

// pixelMargin is a Margin converted to physical pixels.
type pixelMargin struct {
	leftTop     Vec2i
	rightBottom Vec2i
}

func (m pixelMargin) total() Vec2i {
	return m.leftTop.Add(m.rightBottom)
}

// UVRect is a texture sub-rectangle as (u0, v0, u1, v1).
type UVRect [4]float32

// FullUV covers the whole texture.
var FullUV = UVRect{0, 0, 1, 1}

// Color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility)
const (
	ColorWhite       uint32 = 0xFFFFFFFF
	ColorBlack       uint32 = 0xFF000000
	ColorRed         uint32 = 0xFF0000FF
	ColorGreen       uint32 = 0xFF00FF00
	ColorBlue        uint32 = 0xFFFF0000
	ColorGray        uint32 = 0xFF808080
	ColorDarkGray    uint32 = 0xFF404040
	ColorTransparent uint32 = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// RGBAf creates a packed color from float components (0.0-1.0).
func RGBAf(r, g, b, a float32) uint32 {
	return RGBA(
		uint8(clampf(r, 0, 1)*255),
		uint8(clampf(g, 0, 1)*255),
		uint8(clampf(b, 0, 1)*255),
		uint8(clampf(a, 0, 1)*255),
	)
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
