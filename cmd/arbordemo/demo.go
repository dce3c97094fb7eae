package main

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/arbor"
)

// whitePixel is scaled by each body's size to draw a solid square.
var whitePixel *ebiten.Image

func pixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// body creates a square node of the given size pivoting around its centre,
// spinning at spin radians per second.
func body(r *arbor.Registry, name string, size, spin float64) *arbor.Node2D {
	n := r.NewNode2D(name, true)
	n.SetSize(size, size)
	n.SetPivotPercentage(arbor.Vec2{X: 0.5, Y: 0.5})
	n.OnUpdate = func(elapsed float64) {
		*n.RotationRef() += spin * elapsed
	}
	n.OnDraw = func(dc *arbor.DrawContext) {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(size, size)
		op.GeoM.Concat(dc.GeoM())
		dc.Target.DrawImage(pixel(), &op)
	}
	return n
}

// buildSystem adds a sun with two orbiting planets and a moon to the scene
// root and scrolls the camera onto the sun.
func buildSystem(scene *arbor.Scene, vp arbor.Viewport) {
	r := scene.Registry()

	sun := body(r, "sun", 48, 0.4)
	scene.Root().AddChild(sun)

	inner := body(r, "inner", 16, 2)
	inner.SetPosition(24+80, 24)
	sun.AddChild(inner)

	outer := body(r, "outer", 24, 1)
	outer.SetPosition(24+160, 24)
	sun.AddChild(outer)

	moon := body(r, "moon", 6, 0)
	moon.SetPosition(12+24, 12)
	outer.AddChild(moon)

	scene.TransformAll()

	cam := scene.NewCamera(vp)
	cam.X, cam.Y = -vp.Width/2, -vp.Height/2
	cam.ScrollTo(0, 0, 1.5, ease.OutCubic)
	scene.AddTween(arbor.TweenScale(sun, arbor.Vec2{X: 1.25, Y: 1.25}, 2, ease.InOutSine))
}

// dumpTree writes one line per node: indentation by depth, the unique name,
// and for 2D nodes the world position of the pivot.
func dumpTree(w io.Writer, root *arbor.Node, order arbor.Order) error {
	for n := range root.All(order) {
		line := strings.Repeat("  ", n.Depth()) + n.Name()
		if n2 := n.As2D(); n2 != nil {
			p := n2.ObjectToWorld(n2.Pivot())
			line += fmt.Sprintf(" (%.2f, %.2f) rot=%.1f°", round2(p.X), round2(p.Y), n2.RotationDegrees())
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func round2(v float64) float64 {
	v = math.Round(v*100) / 100
	if v == 0 {
		return 0
	}
	return v
}
