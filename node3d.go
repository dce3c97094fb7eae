package arbor

import (
	"cmp"

	"github.com/go-gl/mathgl/mgl64"
)

// Node3D is a Node with a 3D transform built from a position, a quaternion
// rotation, a scale and a pivot. Like Node2D it caches the local matrix
// behind a dirty flag and receives its world matrix from DeepTransform.
type Node3D struct {
	Node

	position mgl64.Vec3
	scale    mgl64.Vec3
	pivot    mgl64.Vec3
	size     mgl64.Vec3
	rotation mgl64.Quat

	transformDirty bool
	local          mgl64.Mat4
	world          mgl64.Mat4

	// OnContentBox returns the node's own content box in object space.
	// When nil, the size box is used (or nothing when size is zero).
	OnContentBox func() Box
}

// NewNode3D creates a 3D node named through DefaultRegistry.
func NewNode3D(name string, active bool) *Node3D {
	return DefaultRegistry.NewNode3D(name, active)
}

// NewNode3D creates a 3D node named through r.
func (r *Registry) NewNode3D(name string, active bool) *Node3D {
	n := &Node3D{
		scale:          mgl64.Vec3{1, 1, 1},
		rotation:       mgl64.QuatIdent(),
		transformDirty: true,
		local:          mgl64.Ident4(),
		world:          mgl64.Ident4(),
	}
	initNode(&n.Node, r, name, active, Kind3D, n)
	return n
}

// Position returns the position in parent space.
func (n *Node3D) Position() mgl64.Vec3 { return n.position }

// Scale returns the per-axis scale.
func (n *Node3D) Scale() mgl64.Vec3 { return n.scale }

// Pivot returns the pivot in object space.
func (n *Node3D) Pivot() mgl64.Vec3 { return n.pivot }

// Rotation returns the orientation quaternion.
func (n *Node3D) Rotation() mgl64.Quat { return n.rotation }

// Size returns the content size.
func (n *Node3D) Size() mgl64.Vec3 { return n.size }

// SetPosition sets the position in parent space and marks the node dirty.
func (n *Node3D) SetPosition(x, y, z float64) {
	n.position = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetPositionVec is SetPosition taking a vector.
func (n *Node3D) SetPositionVec(p mgl64.Vec3) {
	n.position = p
	n.transformDirty = true
}

// SetScale sets the per-axis scale and marks the node dirty.
func (n *Node3D) SetScale(x, y, z float64) {
	n.scale = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetScaleUniform sets the same scale on every axis.
func (n *Node3D) SetScaleUniform(s float64) {
	n.SetScale(s, s, s)
}

// SetScaleVec is SetScale taking a vector.
func (n *Node3D) SetScaleVec(s mgl64.Vec3) {
	n.scale = s
	n.transformDirty = true
}

// SetRotation sets the orientation quaternion.
func (n *Node3D) SetRotation(q mgl64.Quat) {
	n.rotation = q
	n.transformDirty = true
}

// SetRotationAxisAngle rotates by radians around axis. A zero axis means
// the z axis.
func (n *Node3D) SetRotationAxisAngle(radians float64, axis mgl64.Vec3) {
	if axis.Len() == 0 {
		axis = mgl64.Vec3{0, 0, 1}
	}
	n.SetRotation(mgl64.QuatRotate(radians, axis.Normalize()))
}

// SetRotationEuler sets the orientation from Euler angles in radians,
// composed as Rx * Ry * Rz.
func (n *Node3D) SetRotationEuler(x, y, z float64) {
	qx := mgl64.QuatRotate(x, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(y, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(z, mgl64.Vec3{0, 0, 1})
	n.SetRotation(qx.Mul(qy).Mul(qz))
}

// SetRotationEulerDegrees is SetRotationEuler with angles in degrees.
func (n *Node3D) SetRotationEulerDegrees(x, y, z float64) {
	n.SetRotationEuler(mgl64.DegToRad(x), mgl64.DegToRad(y), mgl64.DegToRad(z))
}

// SetPivot sets the pivot in object space and marks the node dirty.
func (n *Node3D) SetPivot(x, y, z float64) {
	n.pivot = mgl64.Vec3{x, y, z}
	n.transformDirty = true
}

// SetPivotVec is SetPivot taking a vector.
func (n *Node3D) SetPivotVec(p mgl64.Vec3) {
	n.pivot = p
	n.transformDirty = true
}

// PivotPercentage returns the pivot as a fraction of size per axis, zero
// when size has zero length.
func (n *Node3D) PivotPercentage() mgl64.Vec3 {
	var pct mgl64.Vec3
	if n.size.Len() == 0 {
		return pct
	}
	for i := 0; i < 3; i++ {
		if n.size[i] != 0 {
			pct[i] = n.pivot[i] / n.size[i]
		}
	}
	return pct
}

// SetPivotPercentage places the pivot at pct of the current size.
func (n *Node3D) SetPivotPercentage(pct mgl64.Vec3) {
	n.SetPivotVec(mgl64.Vec3{pct[0] * n.size[0], pct[1] * n.size[1], pct[2] * n.size[2]})
}

// SetSize sets the content size. It does not affect the transform.
func (n *Node3D) SetSize(x, y, z float64) {
	n.size = mgl64.Vec3{x, y, z}
}

// PositionRef returns a pointer to the position and marks the node dirty.
func (n *Node3D) PositionRef() *mgl64.Vec3 {
	n.transformDirty = true
	return &n.position
}

// ScaleRef returns a pointer to the scale and marks the node dirty.
func (n *Node3D) ScaleRef() *mgl64.Vec3 {
	n.transformDirty = true
	return &n.scale
}

// PivotRef returns a pointer to the pivot and marks the node dirty.
func (n *Node3D) PivotRef() *mgl64.Vec3 {
	n.transformDirty = true
	return &n.pivot
}

// RotationRef returns a pointer to the rotation and marks the node dirty.
func (n *Node3D) RotationRef() *mgl64.Quat {
	n.transformDirty = true
	return &n.rotation
}

// MarkDirty forces the local matrix to be recomputed on the next Transform.
func (n *Node3D) MarkDirty() { n.transformDirty = true }

// TransformDirty reports whether the local matrix is stale.
func (n *Node3D) TransformDirty() bool { return n.transformDirty }

// Transform recomputes the local matrix if the node is dirty:
// T(position) * R(rotation) * S(scale) * T(-pivot).
func (n *Node3D) Transform() {
	if !n.transformDirty {
		return
	}
	n.local = mgl64.Translate3D(n.position[0], n.position[1], n.position[2]).
		Mul4(n.rotation.Mat4()).
		Mul4(mgl64.Scale3D(n.scale[0], n.scale[1], n.scale[2])).
		Mul4(mgl64.Translate3D(-n.pivot[0], -n.pivot[1], -n.pivot[2]))
	n.transformDirty = false
}

// DeepTransform recomputes the local matrix, sets world = parentWorld * local
// and continues into the subtree. Plain Node children are transparent and
// 2D subtrees are skipped.
func (n *Node3D) DeepTransform(parentWorld mgl64.Mat4) {
	n.Transform()
	n.world = parentWorld.Mul4(n.local)
	for _, c := range n.children {
		deepTransform3D(c, n.world)
	}
}

// DeepTransformRoot runs DeepTransform with the identity as parent world.
func (n *Node3D) DeepTransformRoot() {
	n.DeepTransform(mgl64.Ident4())
}

// DeepTransform3D runs the 3D transform pass over n's subtree.
func (n *Node) DeepTransform3D(parentWorld mgl64.Mat4) {
	deepTransform3D(n, parentWorld)
}

func deepTransform3D(n *Node, world mgl64.Mat4) {
	switch n.kind {
	case Kind3D:
		n.self.(*Node3D).DeepTransform(world)
	case KindNode:
		for _, c := range n.children {
			deepTransform3D(c, world)
		}
	}
}

// LocalTransform returns the local matrix, recomputing it first if dirty.
func (n *Node3D) LocalTransform() mgl64.Mat4 {
	n.Transform()
	return n.local
}

// WorldTransform returns the world matrix written by the last DeepTransform.
func (n *Node3D) WorldTransform() mgl64.Mat4 {
	return n.world
}

// ObjectToParent maps pt from object space into parent space.
func (n *Node3D) ObjectToParent(pt mgl64.Vec3) mgl64.Vec3 {
	return transformPoint3(n.LocalTransform(), pt)
}

// ParentToObject is the inverse of ObjectToParent. ok is false when the
// local matrix is singular.
func (n *Node3D) ParentToObject(pt mgl64.Vec3) (mgl64.Vec3, bool) {
	inv, ok := invertMat4(n.LocalTransform())
	if !ok {
		return mgl64.Vec3{}, false
	}
	return transformPoint3(inv, pt), true
}

// ObjectToWorld maps pt from object space into world space using the world
// matrix of the last transform pass.
func (n *Node3D) ObjectToWorld(pt mgl64.Vec3) mgl64.Vec3 {
	return transformPoint3(n.world, pt)
}

// WorldToObject is the inverse of ObjectToWorld. ok is false when the world
// matrix is singular.
func (n *Node3D) WorldToObject(pt mgl64.Vec3) (mgl64.Vec3, bool) {
	inv, ok := invertMat4(n.world)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return transformPoint3(inv, pt), true
}

// ObjectToViewport projects pt through viewProjection * world.
func (n *Node3D) ObjectToViewport(pt mgl64.Vec3, viewProjection mgl64.Mat4, vp Viewport) Vec2 {
	return ObjectToViewport3D(pt, viewProjection.Mul4(n.world), vp)
}

// ViewportToObject returns where the ray through pixel pt crosses this
// node's z = 0 plane. ok is false when viewProjection * world is singular.
func (n *Node3D) ViewportToObject(pt Vec2, viewProjection mgl64.Mat4, vp Viewport) (mgl64.Vec3, bool) {
	inv, ok := invertMat4(viewProjection.Mul4(n.world))
	if !ok {
		return mgl64.Vec3{}, false
	}
	return ViewportToObject3D(pt, inv, vp), true
}

// ContentBox returns the node's own content box in object space.
func (n *Node3D) ContentBox() Box {
	if n.OnContentBox != nil {
		return n.OnContentBox()
	}
	if n.size.Len() == 0 {
		return EmptyBox()
	}
	return BoxFromSize(n.size)
}

// Bounds returns the box covering this node's content and every 3D
// descendant, in the parent's space.
func (n *Node3D) Bounds() Box {
	return n.ContentBox().Include(n.ChildBounds()).Transform(n.LocalTransform())
}

// ChildBounds folds the bounds of the 3D children in this node's object space.
func (n *Node3D) ChildBounds() Box {
	return childBounds3D(&n.Node)
}

func childBounds3D(n *Node) Box {
	b := EmptyBox()
	for _, c := range n.children {
		switch c.kind {
		case Kind3D:
			b = b.Include(c.self.(*Node3D).Bounds())
		case KindNode:
			b = b.Include(childBounds3D(c))
		}
	}
	return b
}

// ScreenRect projects the corners of the node's content box, and the screen
// rectangles of every 3D descendant, into viewport pixels.
func (n *Node3D) ScreenRect(viewProjection mgl64.Mat4, vp Viewport) Rect {
	r := EmptyRect()
	content := n.ContentBox()
	if !content.IsEmpty() {
		composed := viewProjection.Mul4(n.world)
		for _, c := range content.Corners() {
			r = r.IncludePoint(ObjectToViewport3D(c, composed, vp))
		}
	}
	return r.Include(childScreenRect3D(&n.Node, viewProjection, vp))
}

func childScreenRect3D(n *Node, viewProjection mgl64.Mat4, vp Viewport) Rect {
	r := EmptyRect()
	for _, c := range n.children {
		switch c.kind {
		case Kind3D:
			r = r.Include(c.self.(*Node3D).ScreenRect(viewProjection, vp))
		case KindNode:
			r = r.Include(childScreenRect3D(c, viewProjection, vp))
		}
	}
	return r
}

// Compare3DByX orders nodes by position x, for use with slices.SortFunc.
func Compare3DByX(a, b *Node3D) int { return cmp.Compare(a.position[0], b.position[0]) }

// Compare3DByY orders nodes by position y.
func Compare3DByY(a, b *Node3D) int { return cmp.Compare(a.position[1], b.position[1]) }

// Compare3DByZ orders nodes by position z.
func Compare3DByZ(a, b *Node3D) int { return cmp.Compare(a.position[2], b.position[2]) }

// Compare3DBySize orders nodes by the length of their size vector.
func Compare3DBySize(a, b *Node3D) int {
	return cmp.Compare(a.size.Len(), b.size.Len())
}
