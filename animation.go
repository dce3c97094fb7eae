package arbor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenTarget is the part of a transform node a TweenGroup needs.
type tweenTarget interface {
	IsDisposed() bool
	MarkDirty()
}

// TweenGroup animates up to 4 float64 transform fields of a node at once.
// Create one via the constructors (TweenPosition, TweenScale, TweenRotation,
// TweenPivot, TweenPosition3D) and call Update(dt) each frame, or hand it to
// Scene.AddTween. The group writes the values straight into the node and
// marks it dirty. If the target node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target tweenTarget
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenPosition animates a 2D node's position to to.
func TweenPosition(node *Node2D, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.position.X, to.X, duration, fn)
	g.add(&node.position.Y, to.Y, duration, fn)
	return g
}

// TweenScale animates a 2D node's scale to to.
func TweenScale(node *Node2D, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.scale.X, to.X, duration, fn)
	g.add(&node.scale.Y, to.Y, duration, fn)
	return g
}

// TweenRotation animates a 2D node's rotation to radians.
func TweenRotation(node *Node2D, radians float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.rotation, radians, duration, fn)
	return g
}

// TweenPivot animates a 2D node's pivot to to.
func TweenPivot(node *Node2D, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.pivot.X, to.X, duration, fn)
	g.add(&node.pivot.Y, to.Y, duration, fn)
	return g
}

// TweenPosition3D animates a 3D node's position to to.
func TweenPosition3D(node *Node3D, to mgl64.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	for i := 0; i < 3; i++ {
		g.add(&node.position[i], to[i], duration, fn)
	}
	return g
}
