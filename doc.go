// Package arbor is a hierarchical scene graph for [Ebitengine].
//
// A scene is a tree of named nodes. Every node owns an ordered list of
// children (front = bottom, back = top) and carries lifecycle hooks that the
// scene calls once (setup) or every frame (update, draw). Transform nodes
// add a local geometric transform that composes with their ancestors'
// transforms into a world transform, cached behind a dirty flag.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := arbor.NewScene()
//	// ... add nodes ...
//	arbor.Run(scene, arbor.DefaultRunConfig())
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Nodes
//
// There are three node kinds: a plain [Node] (grouping only, transparent to
// transforms), [Node2D] (affine 2D transform) and [Node3D] (quaternion 3D
// transform backed by [mathgl]). Each constructor takes a base name and an
// initial active flag; the node's unique name is the base name followed by
// a zero-padded counter drawn from a [Registry].
//
//	layer := arbor.NewNode2D("layer", true)
//	scene.Root().AddChild(layer)
//
//	hero := arbor.NewNode2D("hero", true)
//	hero.SetPosition(100, 50)
//	hero.SetSize(32, 32)
//	hero.SetPivotPercentage(arbor.Vec2{X: 0.5, Y: 0.5})
//	layer.AddChild(hero)
//
// Structural operations report failure through a bool and never panic:
// adding a node to itself or to one of its descendants is refused.
//
// # Frame pipeline
//
// [Scene.Step] runs setup (first frame only), update, tweens, deferred
// mutations and the transform pass, in that order. Hooks that restructure
// the tree must queue the change with [Scene.Defer].
//
// # Coordinates
//
// 2D nodes convert points between object, parent, world and viewport space.
// Viewport conversions take a view matrix into normalized device
// coordinates ([Camera.ViewProjection] builds one) and map the result to
// pixels with row 0 at the top. 3D nodes do the same through a
// view-projection [mgl64.Mat4] and can cast a viewport pixel back onto their
// z = 0 plane.
//
// Tweens use [gween]; world transforms can be mirrored into a [Donburi]
// world with the arbor/ecs module.
//
// [Ebitengine]: https://ebitengine.org
// [mathgl]: https://github.com/go-gl/mathgl
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package arbor
