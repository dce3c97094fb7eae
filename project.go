package arbor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// transformPoint3 applies m to p as a homogeneous point and divides by the
// resulting w. A zero w leaves the components undivided.
func transformPoint3(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v[3] == 0 || v[3] == 1 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v[3])
}

// invertMat4 returns the inverse of m. ok is false, and the identity is
// returned, when the determinant is NaN or negligible next to the product of
// the column L1 norms.
func invertMat4(m mgl64.Mat4) (mgl64.Mat4, bool) {
	scale := 1.0
	for i := 0; i < 4; i++ {
		c := m.Col(i)
		scale *= math.Abs(c[0]) + math.Abs(c[1]) + math.Abs(c[2]) + math.Abs(c[3])
	}
	if nearSingular(m.Det(), scale) {
		return mgl64.Ident4(), false
	}
	return m.Inv(), true
}

// ObjectToViewport3D projects pt through composed (typically
// projection * view * world) and maps the normalized device coordinates to
// viewport pixels with row 0 at the top. A zero w after projection is
// treated as a reciprocal of 0, collapsing the point to the viewport centre.
func ObjectToViewport3D(pt mgl64.Vec3, composed mgl64.Mat4, vp Viewport) Vec2 {
	v := composed.Mul4x1(pt.Vec4(1))
	var recip float64
	if v[3] != 0 {
		recip = 1 / v[3]
	}
	return ndcToViewport(Vec2{v[0] * recip, v[1] * recip}, vp)
}

// Unproject maps a window-space point back through composedInverse. pt.X and
// pt.Y are viewport pixels measured from the viewport's bottom edge, pt.Z is
// depth in [0, 1] (0 near, 1 far).
func Unproject(pt mgl64.Vec3, composedInverse mgl64.Mat4, vp Viewport) mgl64.Vec3 {
	var x mgl64.Vec4
	if vp.Width != 0 {
		x[0] = (pt[0]-vp.X)/vp.Width*2 - 1
	}
	if vp.Height != 0 {
		x[1] = (pt[1]-vp.Y)/vp.Height*2 - 1
	}
	x[2] = 2*pt[2] - 1
	x[3] = 1

	b := composedInverse.Mul4x1(x)
	if b[3] != 0 {
		b[3] = 1 / b[3]
	}
	return mgl64.Vec3{b[0] * b[3], b[1] * b[3], b[2] * b[3]}
}

// ViewportToObject3D casts a ray through the viewport pixel pt (row 0 at the
// top) and returns where it crosses the object's z = 0 plane. When the ray
// is parallel to that plane the near-plane point is returned.
func ViewportToObject3D(pt Vec2, composedInverse mgl64.Mat4, vp Viewport) mgl64.Vec3 {
	y := vp.Y + vp.Height - (pt.Y - vp.Y)

	p0 := Unproject(mgl64.Vec3{pt.X, y, 0}, composedInverse, vp)
	p1 := Unproject(mgl64.Vec3{pt.X, y, 1}, composedInverse, vp)

	var alpha float64
	if p1[2] != p0[2] {
		alpha = (0 - p0[2]) / (p1[2] - p0[2])
	}
	return p0.Add(p1.Sub(p0).Mul(alpha))
}
