package arbor

import (
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene drives a node tree through the frame pipeline: setup once, then
// every frame update, tweens, deferred mutations and the transform pass.
// Draw walks the tree once per camera (or once with an identity view when
// there are no cameras).
type Scene struct {
	registry *Registry
	root     *Node
	debug    bool

	setupDone bool
	deferred  []func()
	tweens    []*TweenGroup
	cameras   []*Camera
}

// NewScene creates a scene whose nodes are named through DefaultRegistry.
func NewScene() *Scene {
	return NewSceneWithRegistry(DefaultRegistry)
}

// NewSceneWithRegistry creates a scene with a plain root node named through r.
func NewSceneWithRegistry(r *Registry) *Scene {
	if r == nil {
		r = DefaultRegistry
	}
	return &Scene{
		registry: r,
		root:     r.NewNode("root", true),
	}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Registry returns the registry the scene names its nodes with.
func (s *Scene) Registry() *Registry {
	return s.registry
}

// Defer queues fn to run after the current frame's update and tween passes
// and before the transform pass. Hooks that add, remove or reorder nodes must
// go through Defer.
func (s *Scene) Defer(fn func()) {
	if fn != nil {
		s.deferred = append(s.deferred, fn)
	}
}

// AddTween registers a tween group that the scene advances every frame.
// Finished groups are dropped automatically.
func (s *Scene) AddTween(g *TweenGroup) {
	if g != nil {
		s.tweens = append(s.tweens, g)
	}
}

// NumTweens returns the number of running tween groups.
func (s *Scene) NumTweens() int {
	return len(s.tweens)
}

// Update advances the scene by one tick of ebiten.TPS.
func (s *Scene) Update() {
	s.Step(1.0 / float64(ebiten.TPS()))
}

// Step advances the scene by elapsed seconds:
//
//  1. DeepSetup on the first call
//  2. DeepUpdate(elapsed)
//  3. tween groups
//  4. functions queued with Defer
//  5. the 2D and 3D transform passes
//  6. cameras (follow, scroll, bounds)
func (s *Scene) Step(elapsed float64) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if !s.setupDone {
		s.setupDone = true
		s.root.DeepSetup()
	}
	if s.debug {
		stats.setupTime = time.Since(t0)
		t0 = time.Now()
	}

	s.root.DeepUpdate(elapsed)
	s.updateTweens(float32(elapsed))
	if s.debug {
		stats.updateTime = time.Since(t0)
		t0 = time.Now()
	}

	s.flushDeferred()
	if s.debug {
		stats.deferTime = time.Since(t0)
		t0 = time.Now()
	}

	s.TransformAll()
	for _, cam := range s.cameras {
		cam.Update(float32(elapsed))
	}
	if s.debug {
		stats.transformTime = time.Since(t0)
		stats.nodeCount = countNodes(s.root)
		s.debugLog(stats)
	}
}

// TransformAll runs the 2D and 3D transform passes from the root with the
// identity as the parent world.
func (s *Scene) TransformAll() {
	s.root.DeepTransform2D(IdentityAffine)
	s.root.DeepTransform3D(mgl64.Ident4())
}

func (s *Scene) updateTweens(dt float32) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live
}

// flushDeferred runs queued functions in order. Functions queued while
// flushing run in the same flush.
func (s *Scene) flushDeferred() {
	for i := 0; i < len(s.deferred); i++ {
		s.deferred[i]()
	}
	clear(s.deferred)
	s.deferred = s.deferred[:0]
}

// Draw walks the tree and calls every active node's OnDraw.
func (s *Scene) Draw(screen *ebiten.Image) {
	if len(s.cameras) == 0 {
		dc := DrawContext{Target: screen, View: IdentityAffine}
		s.root.DeepDraw(&dc)
		return
	}

	for _, cam := range s.cameras {
		vp := cam.Viewport
		target := screen.SubImage(image.Rect(
			int(vp.X), int(vp.Y),
			int(vp.X+vp.Width), int(vp.Y+vp.Height),
		)).(*ebiten.Image)
		dc := DrawContext{Target: target, View: cam.View(), Camera: cam}
		s.root.DeepDraw(&dc)
	}
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
func (s *Scene) NewCamera(vp Viewport) *Camera {
	cam := NewCamera(vp)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame phase timings are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// DrawContext is passed to OnDraw hooks. Node is the node being drawn.
type DrawContext struct {
	Target *ebiten.Image
	Node   *Node
	// View maps world space to target pixels.
	View Affine
	// Camera is the camera being rendered, or nil for the implicit identity view.
	Camera *Camera
}

// Transform returns View * world for a 2D node and View for any other kind.
func (dc *DrawContext) Transform() Affine {
	if n := dc.Node.As2D(); n != nil {
		return dc.View.Mul(n.WorldTransform())
	}
	return dc.View
}

// GeoM returns Transform as an ebiten.GeoM for DrawImage.
func (dc *DrawContext) GeoM() ebiten.GeoM {
	return dc.Transform().GeoM()
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor.Color())
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window described by cfg and drives scene until it is closed.
func Run(scene *Scene, cfg RunConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("arbor: run: %w", err)
	}
	scene.SetDebugMode(cfg.Debug)
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(&game{scene: scene, cfg: cfg}); err != nil {
		return fmt.Errorf("arbor: run: %w", err)
	}
	return nil
}
