package arbor

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the FPS widget re-reads the counters.
const fpsRefresh = 0.5

// NewFPSWidget creates a 2D node that shows the current FPS and TPS. Add it
// last under the root so it draws on top. The text is refreshed every half
// second of elapsed update time and drawn in screen space, ignoring the view.
func (r *Registry) NewFPSWidget() *Node2D {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	img := ebiten.NewImage(100, 32)

	node := r.NewNode2D("fps_widget", true)
	node.SetSize(100, 32)

	var since float64
	node.OnSetup = func() { redrawFPS(img) }
	node.OnUpdate = func(elapsed float64) {
		since += elapsed
		if since < fpsRefresh {
			return
		}
		since = 0
		redrawFPS(img)
	}
	node.OnDraw = func(dc *DrawContext) {
		var op ebiten.DrawImageOptions
		op.GeoM = node.WorldTransform().GeoM()
		dc.Target.DrawImage(img, &op)
	}
	return node
}

func redrawFPS(img *ebiten.Image) {
	img.Clear()
	// Semi-transparent background for readability
	img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}
