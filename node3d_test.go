package arbor

import (
	"math"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode3DDefaults(t *testing.T) {
	n := NewRegistry().NewNode3D("n", true)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, n.Scale())
	assert.Equal(t, mgl64.QuatIdent(), n.Rotation())
	assert.True(t, n.TransformDirty())
	assert.Equal(t, mgl64.Ident4(), n.WorldTransform())
}

func TestNode3DSettersMarkDirty(t *testing.T) {
	n := NewRegistry().NewNode3D("n", true)
	setters := map[string]func(){
		"SetPosition":             func() { n.SetPosition(1, 2, 3) },
		"SetPositionVec":          func() { n.SetPositionVec(mgl64.Vec3{1, 1, 1}) },
		"SetScale":                func() { n.SetScale(2, 2, 2) },
		"SetScaleUniform":         func() { n.SetScaleUniform(3) },
		"SetScaleVec":             func() { n.SetScaleVec(mgl64.Vec3{1, 2, 3}) },
		"SetRotation":             func() { n.SetRotation(mgl64.QuatIdent()) },
		"SetRotationAxisAngle":    func() { n.SetRotationAxisAngle(1, mgl64.Vec3{0, 1, 0}) },
		"SetRotationEuler":        func() { n.SetRotationEuler(0.1, 0.2, 0.3) },
		"SetRotationEulerDegrees": func() { n.SetRotationEulerDegrees(10, 20, 30) },
		"SetPivot":                func() { n.SetPivot(1, 1, 1) },
		"SetPivotVec":             func() { n.SetPivotVec(mgl64.Vec3{}) },
		"SetPivotPercentage":      func() { n.SetPivotPercentage(mgl64.Vec3{0.5, 0.5, 0.5}) },
		"PositionRef":             func() { n.PositionRef() },
		"ScaleRef":                func() { n.ScaleRef() },
		"PivotRef":                func() { n.PivotRef() },
		"RotationRef":             func() { n.RotationRef() },
		"MarkDirty":               n.MarkDirty,
	}
	for name, set := range setters {
		n.Transform()
		require.False(t, n.TransformDirty())
		set()
		assert.True(t, n.TransformDirty(), name)
	}
}

func TestNode3DLocalTransformOrder(t *testing.T) {
	n := NewRegistry().NewNode3D("n", true)
	n.SetPosition(10, 0, 0)
	n.SetRotationAxisAngle(math.Pi/2, mgl64.Vec3{0, 0, 1})
	n.SetScale(2, 2, 2)
	n.SetPivot(1, 0, 0)

	// The pivot lands on the position.
	assertVec3(t, "pivot", n.ObjectToParent(mgl64.Vec3{1, 0, 0}), mgl64.Vec3{10, 0, 0})
	// One unit along +x from the pivot is scaled to 2, then rotated onto +y.
	assertVec3(t, "x axis", n.ObjectToParent(mgl64.Vec3{2, 0, 0}), mgl64.Vec3{10, 2, 0})
}

func TestNode3DAxisAngleZeroAxisDefaultsToZ(t *testing.T) {
	a := NewRegistry().NewNode3D("a", true)
	b := NewRegistry().NewNode3D("b", true)
	a.SetRotationAxisAngle(0.7, mgl64.Vec3{})
	b.SetRotationAxisAngle(0.7, mgl64.Vec3{0, 0, 5})
	assert.True(t, a.Rotation().ApproxEqual(b.Rotation()))
}

func TestNode3DEulerDegreesMatchesRadians(t *testing.T) {
	a := NewRegistry().NewNode3D("a", true)
	b := NewRegistry().NewNode3D("b", true)
	a.SetRotationEulerDegrees(90, 0, 0)
	b.SetRotationEuler(math.Pi/2, 0, 0)
	assert.True(t, a.Rotation().ApproxEqual(b.Rotation()))

	// 90 degrees about x takes +y to +z.
	assertVec3(t, "y", a.ObjectToParent(mgl64.Vec3{0, 1, 0}), mgl64.Vec3{0, 0, 1})
}

func TestNode3DEulerComposition(t *testing.T) {
	n := NewRegistry().NewNode3D("n", true)
	n.SetRotationEuler(0.3, 0.5, 0.7)
	qx := mgl64.QuatRotate(0.3, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(0.5, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(0.7, mgl64.Vec3{0, 0, 1})
	assert.True(t, n.Rotation().ApproxEqual(qx.Mul(qy).Mul(qz)))
}

func TestNode3DDeepTransform(t *testing.T) {
	r := NewRegistry()
	root := r.NewNode("root", true)
	parent := r.NewNode3D("parent", true)
	group := r.NewNode("group", true)
	child := r.NewNode3D("child", true)
	flat := r.NewNode2D("flat", true)
	root.AddChild(parent)
	parent.AddChild(group)
	group.AddChild(child)
	parent.AddChild(flat)

	parent.SetPosition(0, 0, -10)
	parent.SetScaleUniform(2)
	child.SetPosition(1, 2, 3)
	root.DeepTransform3D(mgl64.Ident4())

	assertVec3(t, "child origin", child.ObjectToWorld(mgl64.Vec3{}), mgl64.Vec3{2, 4, -4})
	assert.True(t, flat.TransformDirty(), "3D pass must not enter 2D subtrees")

	back, ok := child.WorldToObject(mgl64.Vec3{2, 4, -4})
	require.True(t, ok)
	assertVec3(t, "inverse", back, mgl64.Vec3{})
}

func TestNode3DParentRoundTrip(t *testing.T) {
	n := NewRegistry().NewNode3D("n", true)
	n.SetPosition(4, -2, 9)
	n.SetRotationEuler(0.2, -0.4, 1.1)
	n.SetScale(1, 3, 0.5)
	n.SetPivot(0.5, 0.5, 0.5)

	pt := mgl64.Vec3{1, 2, 3}
	back, ok := n.ParentToObject(n.ObjectToParent(pt))
	require.True(t, ok)
	assertVec3(t, "roundtrip", back, pt)
}

func TestNode3DSingular(t *testing.T) {
	n := NewRegistry().NewNode3D("n", true)
	n.SetScale(1, 0, 1)
	n.DeepTransformRoot()
	_, ok := n.ParentToObject(mgl64.Vec3{})
	assert.False(t, ok)
	_, ok = n.WorldToObject(mgl64.Vec3{})
	assert.False(t, ok)
	_, ok = n.ViewportToObject(Vec2{}, mgl64.Ident4(), Viewport{Width: 10, Height: 10})
	assert.False(t, ok)
}

func TestNode3DPivotPercentage(t *testing.T) {
	n := NewRegistry().NewNode3D("n", true)
	n.SetPivot(1, 2, 3)
	assert.Equal(t, mgl64.Vec3{}, n.PivotPercentage())

	n.SetSize(2, 4, 0)
	assertVec3(t, "pct", n.PivotPercentage(), mgl64.Vec3{0.5, 0.5, 0})

	n.SetPivotPercentage(mgl64.Vec3{1, 0, 0.5})
	assertVec3(t, "pivot", n.Pivot(), mgl64.Vec3{2, 0, 0})
}

func TestNode3DBounds(t *testing.T) {
	r := NewRegistry()
	parent := r.NewNode3D("parent", true)
	child := r.NewNode3D("child", true)
	parent.AddChild(child)
	assert.True(t, parent.Bounds().IsEmpty())

	child.SetSize(1, 1, 1)
	child.SetPosition(2, 0, 0)
	parent.SetPosition(0, 10, 0)

	b := parent.Bounds()
	assertVec3(t, "min", b.Min, mgl64.Vec3{2, 10, 0})
	assertVec3(t, "max", b.Max, mgl64.Vec3{3, 11, 1})
}

func TestNode3DViewportRoundTripPerspective(t *testing.T) {
	vp := Viewport{X: 0, Y: 0, Width: 800, Height: 600}
	proj := mgl64.Perspective(mgl64.DegToRad(60), vp.Width/vp.Height, 0.1, 100)
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, 10}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	vpm := proj.Mul4(view)

	n := NewRegistry().NewNode3D("n", true)
	n.SetPosition(1, -1, 0)
	n.SetRotationAxisAngle(0.4, mgl64.Vec3{0, 0, 1})
	n.DeepTransformRoot()

	pt := mgl64.Vec3{2, 3, 0}
	px := n.ObjectToViewport(pt, vpm, vp)
	back, ok := n.ViewportToObject(px, vpm, vp)
	require.True(t, ok)
	assertVec3(t, "roundtrip", back, pt)
}

func TestNode3DScreenRect(t *testing.T) {
	vp := Viewport{Width: 100, Height: 100}
	// Orthographic projection mapping x, y in [0, 100] to NDC.
	ortho := mgl64.Ortho(0, 100, 0, 100, -1, 1)

	r := NewRegistry()
	root := r.NewNode3D("root", true)
	child := r.NewNode3D("child", true)
	root.AddChild(child)
	child.SetSize(10, 10, 0)
	child.SetPosition(20, 30, 0)
	root.DeepTransformRoot()

	sr := root.ScreenRect(ortho, vp)
	// Y is flipped: world y 30..40 becomes rows 60..70.
	assertVec2(t, "min", sr.Min, Vec2{20, 60})
	assertVec2(t, "max", sr.Max, Vec2{30, 70})
}

func TestCompareNode3D(t *testing.T) {
	r := NewRegistry()
	a := r.NewNode3D("a", true)
	b := r.NewNode3D("b", true)
	a.SetPosition(1, 2, 3)
	b.SetPosition(3, 1, 2)
	a.SetSize(5, 0, 0)
	b.SetSize(1, 0, 0)

	ns := []*Node3D{b, a}
	slices.SortFunc(ns, Compare3DByX)
	assert.Same(t, a, ns[0])
	slices.SortFunc(ns, Compare3DByY)
	assert.Same(t, b, ns[0])
	slices.SortFunc(ns, Compare3DByZ)
	assert.Same(t, b, ns[0])
	slices.SortFunc(ns, Compare3DBySize)
	assert.Same(t, b, ns[0])
}
