package arbor

import (
	"cmp"
	"math"
)

// Node2D is a Node with a 2D affine transform. The local matrix is cached
// behind a dirty flag and recomputed lazily; the world matrix is written by
// DeepTransform, which must run top-down once per frame before any world
// query or draw.
type Node2D struct {
	Node

	position Vec2
	scale    Vec2
	pivot    Vec2
	rotation float64
	size     Vec2

	transformDirty bool
	local          Affine
	world          Affine

	// OnContentBounds returns the node's own content rectangle in object
	// space. When nil, the size rectangle is used (or nothing when size is zero).
	OnContentBounds func() Rect
}

// NewNode2D creates a 2D node named through DefaultRegistry.
func NewNode2D(name string, active bool) *Node2D {
	return DefaultRegistry.NewNode2D(name, active)
}

// NewNode2D creates a 2D node named through r.
func (r *Registry) NewNode2D(name string, active bool) *Node2D {
	n := &Node2D{
		scale:          Vec2{1, 1},
		transformDirty: true,
		local:          IdentityAffine,
		world:          IdentityAffine,
	}
	initNode(&n.Node, r, name, active, Kind2D, n)
	return n
}

// --- Properties ---

// Position returns the local position.
func (n *Node2D) Position() Vec2 { return n.position }

// Scale returns the local scale.
func (n *Node2D) Scale() Vec2 { return n.scale }

// Pivot returns the pivot in object space.
func (n *Node2D) Pivot() Vec2 { return n.pivot }

// Rotation returns the rotation in radians.
func (n *Node2D) Rotation() float64 { return n.rotation }

// RotationDegrees returns the rotation in degrees.
func (n *Node2D) RotationDegrees() float64 { return n.rotation * 180 / math.Pi }

// SetPosition sets the local position and marks the node dirty.
func (n *Node2D) SetPosition(x, y float64) {
	n.position = Vec2{x, y}
	n.transformDirty = true
}

// SetPositionVec sets the local position and marks the node dirty.
func (n *Node2D) SetPositionVec(p Vec2) {
	n.position = p
	n.transformDirty = true
}

// SetScale sets the scale and marks the node dirty.
func (n *Node2D) SetScale(sx, sy float64) {
	n.scale = Vec2{sx, sy}
	n.transformDirty = true
}

// SetScaleUniform sets both scale axes to s.
func (n *Node2D) SetScaleUniform(s float64) {
	n.SetScale(s, s)
}

// SetScaleVec sets the scale and marks the node dirty.
func (n *Node2D) SetScaleVec(s Vec2) {
	n.scale = s
	n.transformDirty = true
}

// SetRotation sets the rotation in radians and marks the node dirty.
func (n *Node2D) SetRotation(radians float64) {
	n.rotation = radians
	n.transformDirty = true
}

// SetRotationDegrees sets the rotation in degrees.
func (n *Node2D) SetRotationDegrees(degrees float64) {
	n.SetRotation(degrees * math.Pi / 180)
}

// SetPivot sets the pivot and marks the node dirty.
func (n *Node2D) SetPivot(x, y float64) {
	n.pivot = Vec2{x, y}
	n.transformDirty = true
}

// SetPivotVec sets the pivot and marks the node dirty.
func (n *Node2D) SetPivotVec(p Vec2) {
	n.pivot = p
	n.transformDirty = true
}

// PivotPercentage returns the pivot as a fraction of size per axis. It is
// zero when size has zero length; an individual zero axis yields 0 on that axis.
func (n *Node2D) PivotPercentage() Vec2 {
	if n.size.Len() == 0 {
		return Vec2{}
	}
	var pct Vec2
	if n.size.X != 0 {
		pct.X = n.pivot.X / n.size.X
	}
	if n.size.Y != 0 {
		pct.Y = n.pivot.Y / n.size.Y
	}
	return pct
}

// SetPivotPercentage places the pivot at pct of the current size.
func (n *Node2D) SetPivotPercentage(pct Vec2) {
	n.SetPivotVec(pct.Mul(n.size))
}

// Size returns the content size. Size does not affect the transform.
func (n *Node2D) Size() Vec2 { return n.size }

// SetSize sets the content size used by bounds, pivot percentages and alignment.
func (n *Node2D) SetSize(w, h float64) {
	n.size = Vec2{w, h}
}

// PositionRef returns a pointer to the position for in-place edits. The node
// is marked dirty because the caller may write through it.
func (n *Node2D) PositionRef() *Vec2 {
	n.transformDirty = true
	return &n.position
}

// ScaleRef returns a pointer to the scale and marks the node dirty.
func (n *Node2D) ScaleRef() *Vec2 {
	n.transformDirty = true
	return &n.scale
}

// PivotRef returns a pointer to the pivot and marks the node dirty.
func (n *Node2D) PivotRef() *Vec2 {
	n.transformDirty = true
	return &n.pivot
}

// RotationRef returns a pointer to the rotation and marks the node dirty.
func (n *Node2D) RotationRef() *float64 {
	n.transformDirty = true
	return &n.rotation
}

// MarkDirty forces the local matrix to be recomputed on the next Transform.
func (n *Node2D) MarkDirty() {
	n.transformDirty = true
}

// TransformDirty reports whether the local matrix is stale.
func (n *Node2D) TransformDirty() bool {
	return n.transformDirty
}

// --- Transform ---

// Transform recomputes the local matrix if the node is dirty.
func (n *Node2D) Transform() {
	if !n.transformDirty {
		return
	}
	n.local = ComposeAffine(n.position, n.scale, n.pivot, n.rotation)
	n.transformDirty = false
}

// DeepTransform recomputes this node's local matrix, sets its world matrix
// to parentWorld * local and continues into the subtree. Plain Node children
// pass the world matrix through to their descendants; 3D subtrees are skipped.
func (n *Node2D) DeepTransform(parentWorld Affine) {
	n.Transform()
	n.world = parentWorld.Mul(n.local)
	for _, c := range n.children {
		deepTransform2D(c, n.world)
	}
}

// DeepTransformRoot runs DeepTransform with the identity as parent world.
func (n *Node2D) DeepTransformRoot() {
	n.DeepTransform(IdentityAffine)
}

// DeepTransform2D runs the 2D transform pass over n's subtree. n itself is
// transparent when it is a plain Node.
func (n *Node) DeepTransform2D(parentWorld Affine) {
	deepTransform2D(n, parentWorld)
}

func deepTransform2D(n *Node, world Affine) {
	switch n.kind {
	case Kind2D:
		n.self.(*Node2D).DeepTransform(world)
	case KindNode:
		for _, c := range n.children {
			deepTransform2D(c, world)
		}
	}
}

// LocalTransform returns the local matrix, recomputing it first if dirty.
func (n *Node2D) LocalTransform() Affine {
	n.Transform()
	return n.local
}

// WorldTransform returns the world matrix written by the last DeepTransform.
func (n *Node2D) WorldTransform() Affine {
	return n.world
}

// --- Coordinate conversion ---

// ObjectToParent maps a point from object space into the parent's space.
func (n *Node2D) ObjectToParent(pt Vec2) Vec2 {
	return n.LocalTransform().Apply(pt)
}

// ParentToObject maps a point from the parent's space into object space.
// ok is false when the local matrix is singular.
func (n *Node2D) ParentToObject(pt Vec2) (Vec2, bool) {
	inv, ok := n.LocalTransform().Invert()
	if !ok {
		return Vec2{}, false
	}
	return inv.Apply(pt), true
}

// ObjectToWorld maps a point from object space into world space.
func (n *Node2D) ObjectToWorld(pt Vec2) Vec2 {
	return n.world.Apply(pt)
}

// WorldToObject maps a point from world space into object space.
// ok is false when the world matrix is singular.
func (n *Node2D) WorldToObject(pt Vec2) (Vec2, bool) {
	inv, ok := n.world.Invert()
	if !ok {
		return Vec2{}, false
	}
	return inv.Apply(pt), true
}

// ObjectToViewport maps a point from object space to viewport pixels.
// view maps world space into normalized device coordinates.
func (n *Node2D) ObjectToViewport(pt Vec2, view Affine, vp Viewport) Vec2 {
	return ObjectToViewport2D(pt, view.Mul(n.world), vp)
}

// ViewportToObject maps viewport pixels back into object space.
func (n *Node2D) ViewportToObject(pt Vec2, view Affine, vp Viewport) (Vec2, bool) {
	inv, ok := view.Mul(n.world).Invert()
	if !ok {
		return Vec2{}, false
	}
	return ViewportToObject2D(pt, inv, vp), true
}

// --- Bounds ---

// ContentBounds returns the node's own content rectangle in object space.
func (n *Node2D) ContentBounds() Rect {
	if n.OnContentBounds != nil {
		return n.OnContentBounds()
	}
	if n.size.Len() == 0 {
		return EmptyRect()
	}
	return RectFromSize(n.size)
}

// Bounds returns the rectangle covering this node's content and every 2D
// descendant, expressed in the parent's space. A node with no content and
// no children yields EmptyRect.
func (n *Node2D) Bounds() Rect {
	return n.ContentBounds().Include(n.ChildBounds()).Transform(n.LocalTransform())
}

// ChildBounds folds the bounds of the 2D children in this node's object space.
func (n *Node2D) ChildBounds() Rect {
	return childBounds2D(&n.Node)
}

func childBounds2D(n *Node) Rect {
	r := EmptyRect()
	for _, c := range n.children {
		switch c.kind {
		case Kind2D:
			r = r.Include(c.self.(*Node2D).Bounds())
		case KindNode:
			r = r.Include(childBounds2D(c))
		}
	}
	return r
}

// ScreenRect returns the viewport-pixel rectangle covering the node's
// content corners and every 2D descendant. World matrices must be current.
func (n *Node2D) ScreenRect(view Affine, vp Viewport) Rect {
	r := EmptyRect()
	content := n.ContentBounds()
	if !content.IsEmpty() {
		composed := view.Mul(n.world)
		for _, c := range content.Corners() {
			r = r.IncludePoint(ObjectToViewport2D(c, composed, vp))
		}
	}
	return r.Include(childScreenRect2D(&n.Node, view, vp))
}

func childScreenRect2D(n *Node, view Affine, vp Viewport) Rect {
	r := EmptyRect()
	for _, c := range n.children {
		switch c.kind {
		case Kind2D:
			r = r.Include(c.self.(*Node2D).ScreenRect(view, vp))
		case KindNode:
			r = r.Include(childScreenRect2D(c, view, vp))
		}
	}
	return r
}

// --- Ordering ---

// CompareByX orders nodes by local X position, for slices.SortFunc.
func CompareByX(a, b *Node2D) int {
	return cmp.Compare(a.position.X, b.position.X)
}

// CompareByY orders nodes by local Y position.
func CompareByY(a, b *Node2D) int {
	return cmp.Compare(a.position.Y, b.position.Y)
}

// CompareBySize orders nodes by the length of their size vector.
func CompareBySize(a, b *Node2D) int {
	return cmp.Compare(a.size.Len(), b.size.Len())
}
