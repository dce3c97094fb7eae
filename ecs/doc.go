// Package ecs mirrors arbor scene graph state into a [Donburi] world.
//
// A [Mirror] tracks 2D nodes. Each tracked node gets an entity carrying a
// [TransformData] component that [Mirror.Sync] refreshes from the node's
// world transform, so ECS systems can query positions without walking the
// tree. Detaching a tracked node publishes a [DetachedEvent].
//
// Usage:
//
//	world := donburi.NewWorld()
//	mirror := ecs.NewMirror(world)
//	mirror.Track(hero)
//	// after scene.Step:
//	mirror.Sync()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
