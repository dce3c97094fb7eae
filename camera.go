package arbor

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Camera is a 2D view into the scene: the world point it centres on, zoom,
// rotation and the viewport it renders into. Its View matrix maps world
// space to viewport pixels; ViewProjection maps world space to normalized
// device coordinates for the viewport conversions.
type Camera struct {
	// X and Y are the world point shown at the viewport centre.
	X, Y float64
	// Zoom scales world units to pixels; 2 shows everything twice as large.
	Zoom float64
	// Rotation turns the view by this many radians.
	Rotation float64
	// Viewport is the pixel rectangle this camera renders into.
	Viewport Viewport

	followTarget *Node2D
	followOffset Vec2
	followLerp   float64

	// BoundsEnabled keeps the visible world area inside Bounds.
	BoundsEnabled bool
	Bounds        Rect

	view    Affine
	invView Affine
	dirty   bool

	scroll *TweenGroup
}

// NewCamera creates a camera centred on the world origin rendering into vp.
func NewCamera(vp Viewport) *Camera {
	return &Camera{
		Zoom:     1.0,
		Viewport: vp,
		dirty:    true,
	}
}

// Follow makes the camera track a 2D node's world position plus offset.
// A lerp of 1.0 snaps immediately; lower values give smoother following.
func (c *Camera) Follow(node *Node2D, offset Vec2, lerp float64) {
	c.followTarget = node
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo moves the camera to the world point (x, y) over duration seconds
// using easeFn. It replaces any scroll already in progress.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	g := &TweenGroup{}
	g.add(&c.X, x, duration, easeFn)
	g.add(&c.Y, y, duration, easeFn)
	c.scroll = g
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scroll != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances follow, scroll and bounds clamping by dt seconds.
// Scene.Update calls it after the transform pass so follow targets are current.
func (c *Camera) Update(dt float32) {
	prevX, prevY := c.X, c.Y
	prevZoom, prevRot := c.Zoom, c.Rotation

	if c.followTarget != nil && !c.followTarget.IsDisposed() {
		w := c.followTarget.WorldTransform()
		c.X += (w[4] + c.followOffset.X - c.X) * c.followLerp
		c.Y += (w[5] + c.followOffset.Y - c.Y) * c.followLerp
	}

	if c.scroll != nil {
		c.scroll.Update(dt)
		if c.scroll.Done {
			c.scroll = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}

	if c.X != prevX || c.Y != prevY || c.Zoom != prevZoom || c.Rotation != prevRot {
		c.dirty = true
	}
}

func (c *Camera) clampToBounds() {
	c.X = clampAxis(c.X, c.Bounds.Min.X, c.Bounds.Max.X, c.Viewport.Width/(2*c.Zoom))
	c.Y = clampAxis(c.Y, c.Bounds.Min.Y, c.Bounds.Max.Y, c.Viewport.Height/(2*c.Zoom))
}

// clampAxis keeps a view of half-extent half centred at v inside [lo, hi].
// A range narrower than the view centres it.
func clampAxis(v, lo, hi, half float64) float64 {
	lo, hi = lo+half, hi-half
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(v, hi))
}

// MarkDirty forces a recomputation of the view matrix. Call it after
// changing Zoom, Rotation or Viewport directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// View returns the world-to-pixel matrix:
//
//	Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
//
// where (cx, cy) is the viewport centre.
func (c *Camera) View() Affine {
	if !c.dirty {
		return c.view
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	c.view = TranslateAffine(cx, cy).
		Mul(ScaleAffine(c.Zoom, c.Zoom)).
		Mul(RotateAffine(-c.Rotation)).
		Mul(TranslateAffine(-c.X, -c.Y))
	c.invView, _ = c.view.Invert()
	return c.view
}

// ViewProjection returns the world-to-NDC matrix expected by
// Node2D.ObjectToViewport and friends.
func (c *Camera) ViewProjection() Affine {
	return PixelProjection(c.Viewport).Mul(c.View())
}

// WorldToScreen converts world coordinates to viewport pixels.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	return c.View().Apply(p)
}

// ScreenToWorld converts viewport pixels to world coordinates.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	c.View()
	return c.invView.Apply(p)
}

// VisibleBounds returns the axis-aligned world rectangle the camera sees.
func (c *Camera) VisibleBounds() Rect {
	c.View()
	screen := EmptyRect().
		IncludePoint(Vec2{c.Viewport.X, c.Viewport.Y}).
		IncludePoint(Vec2{c.Viewport.X + c.Viewport.Width, c.Viewport.Y + c.Viewport.Height})
	return screen.Transform(c.invView)
}
