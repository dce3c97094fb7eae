package arbor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned rectangle stored as min/max corners. The empty
// rectangle has Min greater than Max on both axes so that folding it with
// Include grows to exactly the included content.
type Rect struct {
	Min, Max Vec2
}

// EmptyRect returns the inverted rectangle used as the seed for folds.
func EmptyRect() Rect {
	return Rect{
		Min: Vec2{math.MaxFloat64, math.MaxFloat64},
		Max: Vec2{-math.MaxFloat64, -math.MaxFloat64},
	}
}

// RectFromSize returns the rectangle spanning (0,0) to size.
func RectFromSize(size Vec2) Rect {
	r := EmptyRect()
	r = r.IncludePoint(Vec2{})
	return r.IncludePoint(size)
}

// IsEmpty reports whether the rectangle covers nothing.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Width returns the horizontal extent, or 0 for an empty rectangle.
func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent, or 0 for an empty rectangle.
func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.Y - r.Min.Y
}

// Center returns the mid-point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// IncludePoint returns r grown to contain p.
func (r Rect) IncludePoint(p Vec2) Rect {
	r.Min.X = math.Min(r.Min.X, p.X)
	r.Min.Y = math.Min(r.Min.Y, p.Y)
	r.Max.X = math.Max(r.Max.X, p.X)
	r.Max.Y = math.Max(r.Max.Y, p.Y)
	return r
}

// Include returns r grown to contain o. Including an empty rectangle is a no-op.
func (r Rect) Include(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	return r.IncludePoint(o.Min).IncludePoint(o.Max)
}

// Contains reports whether p lies inside r. Points on the edge are inside.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Corners returns the four corners in the order min, (max.x,min.y), max, (min.x,max.y).
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		r.Min,
		{r.Max.X, r.Min.Y},
		r.Max,
		{r.Min.X, r.Max.Y},
	}
}

// Transform returns the axis-aligned bounds of r's four corners transformed
// by m. The empty rectangle stays empty.
func (r Rect) Transform(m Affine) Rect {
	if r.IsEmpty() {
		return r
	}
	out := EmptyRect()
	for _, c := range r.Corners() {
		out = out.IncludePoint(m.Apply(c))
	}
	return out
}

// Box is an axis-aligned 3D bounding box with the same empty convention as Rect.
type Box struct {
	Min, Max mgl64.Vec3
}

// EmptyBox returns the inverted box used as the seed for folds.
func EmptyBox() Box {
	return Box{
		Min: mgl64.Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		Max: mgl64.Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
	}
}

// BoxFromSize returns the box spanning the origin to size.
func BoxFromSize(size mgl64.Vec3) Box {
	return EmptyBox().IncludePoint(mgl64.Vec3{}).IncludePoint(size)
}

// IsEmpty reports whether the box covers nothing.
func (b Box) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Size returns the extent on each axis, or zero for an empty box.
func (b Box) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// IncludePoint returns b grown to contain p.
func (b Box) IncludePoint(p mgl64.Vec3) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Include returns b grown to contain o. Including an empty box is a no-op.
func (b Box) Include(o Box) Box {
	if o.IsEmpty() {
		return b
	}
	return b.IncludePoint(o.Min).IncludePoint(o.Max)
}

// Contains reports whether p lies inside b.
func (b Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Corners returns the eight corners of the box.
func (b Box) Corners() [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	for i := 0; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				out[i][axis] = b.Max[axis]
			} else {
				out[i][axis] = b.Min[axis]
			}
		}
	}
	return out
}

// Transform returns the axis-aligned bounds of b's corners transformed by m.
// The empty box stays empty.
func (b Box) Transform(m mgl64.Mat4) Box {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox()
	for _, c := range b.Corners() {
		out = out.IncludePoint(transformPoint3(m, c))
	}
	return out
}
