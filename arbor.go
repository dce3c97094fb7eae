package arbor

import "math"

// Vec2 is a 2D vector used for positions, scales, pivots, sizes and points
// throughout the 2D API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Viewport is a pixel rectangle on the render target. The origin is at the
// top-left, with Y increasing downward.
type Viewport struct {
	X, Y, Width, Height float64
}

// NodeKind is the closed set of node capabilities. It replaces runtime type
// identity when traversal code needs to filter nodes.
type NodeKind uint8

const (
	KindNode NodeKind = iota // plain tree node with no transform
	Kind2D                   // Node2D: affine 2D transform
	Kind3D                   // Node3D: projective 3D transform
)

// String returns a short lower-case name for the kind.
func (k NodeKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case Kind2D:
		return "node2d"
	case Kind3D:
		return "node3d"
	default:
		return "unknown"
	}
}

// Order selects the traversal strategy of an Iterator.
type Order uint8

const (
	DepthFirst   Order = iota // stack-backed pre-order
	BreadthFirst              // queue-backed level order
)

// HorizontalAlign selects which edge of a node is aligned to a vertical guide.
type HorizontalAlign uint8

const (
	AlignLeft   HorizontalAlign = iota // left boundary
	AlignCenter                        // horizontal mid-point (the pivot)
	AlignRight                         // right boundary
)

// VerticalAlign selects which edge of a node is aligned to a horizontal guide.
type VerticalAlign uint8

const (
	AlignTop    VerticalAlign = iota // top boundary
	AlignMiddle                      // vertical mid-point (the pivot)
	AlignBottom                      // bottom boundary
)
