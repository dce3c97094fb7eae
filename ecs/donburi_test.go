package ecs

import (
	"testing"

	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
)

func newTree(t *testing.T) (*arbor.Node, *arbor.Node2D) {
	t.Helper()
	r := arbor.NewRegistry()
	root := r.NewNode("root", true)
	hero := r.NewNode2D("hero", true)
	hero.SetPosition(10, 20)
	root.AddChild(hero)
	root.DeepTransform2D(arbor.IdentityAffine)
	return root, hero
}

func TestMirror_TrackWritesComponent(t *testing.T) {
	world := donburi.NewWorld()
	m := NewMirror(world)
	_, hero := newTree(t)

	e := m.Track(hero)
	if !world.Valid(e) {
		t.Fatal("tracked entity is not valid")
	}
	data := Transform.Get(world.Entry(e))
	if data.Name != hero.Name() {
		t.Errorf("Name = %q, want %q", data.Name, hero.Name())
	}
	if data.Position != (arbor.Vec2{X: 10, Y: 20}) {
		t.Errorf("Position = %+v, want (10,20)", data.Position)
	}
	if !data.Active {
		t.Error("Active = false, want true")
	}
}

func TestMirror_TrackTwiceReturnsSameEntity(t *testing.T) {
	world := donburi.NewWorld()
	m := NewMirror(world)
	_, hero := newTree(t)

	if m.Track(hero) != m.Track(hero) {
		t.Error("Track returned different entities for the same node")
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestMirror_SyncFollowsWorldTransform(t *testing.T) {
	world := donburi.NewWorld()
	m := NewMirror(world)
	root, hero := newTree(t)
	e := m.Track(hero)

	hero.SetPosition(-5, 7)
	root.DeepTransform2D(arbor.IdentityAffine)
	m.Sync()

	data := Transform.Get(world.Entry(e))
	if data.Position != (arbor.Vec2{X: -5, Y: 7}) {
		t.Errorf("Position = %+v, want (-5,7)", data.Position)
	}
	if data.World != hero.WorldTransform() {
		t.Errorf("World = %v, want %v", data.World, hero.WorldTransform())
	}
}

func TestMirror_SyncDropsDisposedNodes(t *testing.T) {
	world := donburi.NewWorld()
	m := NewMirror(world)
	_, hero := newTree(t)
	e := m.Track(hero)

	hero.Dispose()
	m.Sync()

	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
	if world.Valid(e) {
		t.Error("entity still valid after its node was disposed")
	}
}

func TestMirror_Untrack(t *testing.T) {
	world := donburi.NewWorld()
	m := NewMirror(world)
	_, hero := newTree(t)
	m.Track(hero)

	if !m.Untrack(hero) {
		t.Fatal("Untrack returned false for a tracked node")
	}
	if m.Untrack(hero) {
		t.Error("Untrack returned true for an untracked node")
	}
	if _, ok := m.Entity(hero); ok {
		t.Error("Entity still reports the node as tracked")
	}
}

func TestMirror_DetachPublishesEvent(t *testing.T) {
	world := donburi.NewWorld()
	m := NewMirror(world)
	_, hero := newTree(t)

	var hookCalls int
	hero.OnRemovedFromScene = func() { hookCalls++ }
	e := m.Track(hero)

	var received []DetachedEvent
	DetachedEventType.Subscribe(world, func(w donburi.World, ev DetachedEvent) {
		received = append(received, ev)
	})

	hero.RemoveFromParent()
	DetachedEventType.ProcessEvents(world)

	if hookCalls != 1 {
		t.Errorf("existing hook called %d times, want 1", hookCalls)
	}
	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	if received[0].Entity != e || received[0].Name != hero.Name() {
		t.Errorf("event = %+v", received[0])
	}
}

func TestMirror_UntrackStopsDetachEvents(t *testing.T) {
	world := donburi.NewWorld()
	m := NewMirror(world)
	_, hero := newTree(t)

	var hookCalls int
	hook := func() { hookCalls++ }
	hero.OnRemovedFromScene = hook

	stale := m.Track(hero)
	m.Untrack(hero)
	if hero.OnRemovedFromScene == nil {
		t.Fatal("Untrack dropped the node's own hook")
	}
	live := m.Track(hero)

	var received []DetachedEvent
	DetachedEventType.Subscribe(world, func(w donburi.World, ev DetachedEvent) {
		received = append(received, ev)
	})

	hero.RemoveFromParent()
	DetachedEventType.ProcessEvents(world)

	if hookCalls != 1 {
		t.Errorf("node hook called %d times, want 1", hookCalls)
	}
	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	if received[0].Entity != live {
		t.Errorf("event entity = %v, want live entity %v (stale %v)", received[0].Entity, live, stale)
	}
	if !world.Valid(received[0].Entity) {
		t.Error("event carries an entity that is no longer valid")
	}
}

func TestMirror_UntrackRestoresHook(t *testing.T) {
	world := donburi.NewWorld()
	m := NewMirror(world)
	_, hero := newTree(t)
	m.Track(hero)
	m.Untrack(hero)

	if hero.OnRemovedFromScene != nil {
		t.Error("OnRemovedFromScene still set after Untrack of a node with no hook")
	}
}

func TestEach(t *testing.T) {
	world := donburi.NewWorld()
	m := NewMirror(world)
	r := arbor.NewRegistry()
	for i := 0; i < 3; i++ {
		m.Track(r.NewNode2D("n", true))
	}

	count := 0
	Each(world, func(e donburi.Entity, data *TransformData) {
		count++
	})
	if count != 3 {
		t.Errorf("Each visited %d entities, want 3", count)
	}
}
