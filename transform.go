package arbor

import (
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrSingularTransform reports that a transform could not be inverted.
// Conversions return ok == false in that case; callers that prefer an error
// can return this sentinel.
var ErrSingularTransform = errors.New("arbor: singular transform")

// singularEpsilon is the relative tolerance for treating a matrix as
// non-invertible.
const singularEpsilon = 1e-12

// nearSingular reports whether det is NaN or negligible next to scale, the
// product of the matrix's column L1 norms. A zero scale is always singular.
func nearSingular(det, scale float64) bool {
	if math.IsNaN(det) || math.IsNaN(scale) || scale == 0 {
		return true
	}
	return math.Abs(det) <= singularEpsilon*scale
}

// Affine is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// IdentityAffine is the identity affine matrix.
var IdentityAffine = Affine{1, 0, 0, 1, 0, 0}

// TranslateAffine returns a translation matrix.
func TranslateAffine(x, y float64) Affine {
	return Affine{1, 0, 0, 1, x, y}
}

// ScaleAffine returns a scale matrix.
func ScaleAffine(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// RotateAffine returns a rotation matrix for an angle in radians.
func RotateAffine(radians float64) Affine {
	sin, cos := math.Sincos(radians)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// ComposeAffine computes a local matrix from transform properties.
//
// Composition order:
//
//	Translate(position) * Rotate(rotation) * Scale(scale) * Translate(-pivot)
func ComposeAffine(position, scale, pivot Vec2, rotation float64) Affine {
	sin, cos := math.Sincos(rotation)

	// After Scale * Translate(-pivot):
	//   a=sx, b=0, c=0, d=sy, tx=-px*sx, ty=-py*sy
	sx, sy := scale.X, scale.Y
	preTx := -pivot.X * sx
	preTy := -pivot.Y * sy

	// After Rotate:
	ra := cos * sx
	rb := sin * sx
	rc := -sin * sy
	rd := cos * sy
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	// After Translate(position):
	return Affine{ra, rb, rc, rd, rtx + position.X, rty + position.Y}
}

// Mul returns p * c, i.e. c applied first, then p.
func (p Affine) Mul(c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Det returns the determinant of the linear part.
func (m Affine) Det() float64 {
	return m[0]*m[3] - m[2]*m[1]
}

// Invert returns the inverse of m. ok is false, and the identity is returned,
// when the matrix contains NaN or |det| <= 1e-12 * (|a|+|b|) * (|c|+|d|).
func (m Affine) Invert() (inv Affine, ok bool) {
	det := m.Det()
	scale := (math.Abs(m[0]) + math.Abs(m[1])) * (math.Abs(m[2]) + math.Abs(m[3]))
	if nearSingular(det, scale) {
		return IdentityAffine, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// Apply transforms a point by m.
func (m Affine) Apply(pt Vec2) Vec2 {
	return Vec2{m[0]*pt.X + m[2]*pt.Y + m[4], m[1]*pt.X + m[3]*pt.Y + m[5]}
}

// GeoM converts m to an ebiten.GeoM for DrawImage.
func (m Affine) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// --- Viewport conversion ---

// ObjectToViewport2D transforms pt by the composed matrix into normalized
// device coordinates ([-1, 1] on both axes, Y up) and maps the result to
// viewport pixels with the vertical axis flipped so row 0 is at the top.
// A 2D affine matrix has an implicit homogeneous component of 1, so no
// perspective divide is needed.
func ObjectToViewport2D(pt Vec2, composed Affine, vp Viewport) Vec2 {
	return ndcToViewport(composed.Apply(pt), vp)
}

// ViewportToObject2D is the inverse of ObjectToViewport2D: it maps viewport
// pixels back to normalized device coordinates and transforms them by
// inverseComposed.
func ViewportToObject2D(pt Vec2, inverseComposed Affine, vp Viewport) Vec2 {
	return inverseComposed.Apply(viewportToNDC(pt, vp))
}

// PixelProjection returns the matrix that maps viewport pixels onto
// normalized device coordinates. Composing it with a pixel-space view gives
// the view argument expected by the viewport conversions. A zero-sized
// viewport yields the identity.
func PixelProjection(vp Viewport) Affine {
	if vp.Width == 0 || vp.Height == 0 {
		return IdentityAffine
	}
	return Affine{
		2 / vp.Width, 0,
		0, -2 / vp.Height,
		-2*vp.X/vp.Width - 1, 1 + 2*vp.Y/vp.Height,
	}
}

func ndcToViewport(ndc Vec2, vp Viewport) Vec2 {
	return Vec2{
		X: vp.X + vp.Width*(ndc.X+1)/2,
		Y: vp.Y + vp.Height*(1-(ndc.Y+1)/2),
	}
}

func viewportToNDC(pt Vec2, vp Viewport) Vec2 {
	var ndc Vec2
	if vp.Width != 0 {
		ndc.X = (pt.X-vp.X)/vp.Width*2 - 1
	}
	if vp.Height != 0 {
		ndc.Y = 1 - (pt.Y-vp.Y)/vp.Height*2
	}
	return ndc
}
