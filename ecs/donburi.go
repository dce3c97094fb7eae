package ecs

import (
	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// TransformData is the component a Mirror keeps in sync with a node.
type TransformData struct {
	// Name is the node's unique name.
	Name string
	// World is the node's world matrix in arbor.Affine layout.
	World arbor.Affine
	// Position is the world-space origin of the node.
	Position arbor.Vec2
	// Active mirrors the node's active flag.
	Active bool
}

// Transform is the Donburi component type holding TransformData.
var Transform = donburi.NewComponentType[TransformData]()

// DetachedEvent is published when a tracked node is removed from its parent.
type DetachedEvent struct {
	Entity donburi.Entity
	Name   string
}

// DetachedEventType is the Donburi event type for DetachedEvent.
// Subscribe to it and call ProcessEvents to receive detach notifications.
var DetachedEventType = events.NewEventType[DetachedEvent]()

var transformQuery = donburi.NewQuery(filter.Contains(Transform))

// Mirror keeps one Donburi entity per tracked 2D node.
type Mirror struct {
	world    donburi.World
	entities map[*arbor.Node2D]tracked
}

// tracked is a node's entity plus the OnRemovedFromScene hook it had
// before Track chained onto it.
type tracked struct {
	entity donburi.Entity
	prev   func()
}

// NewMirror creates a Mirror writing into world.
func NewMirror(world donburi.World) *Mirror {
	return &Mirror{
		world:    world,
		entities: make(map[*arbor.Node2D]tracked),
	}
}

// Track creates an entity for node and returns it. Tracking an already
// tracked node returns the existing entity. The node's OnRemovedFromScene
// hook is chained so that detaching publishes a DetachedEvent; Untrack
// restores the previous hook.
func (m *Mirror) Track(node *arbor.Node2D) donburi.Entity {
	if t, ok := m.entities[node]; ok {
		return t.entity
	}
	e := m.world.Create(Transform)
	prev := node.OnRemovedFromScene
	m.entities[node] = tracked{entity: e, prev: prev}
	m.write(node, e)

	node.OnRemovedFromScene = func() {
		if prev != nil {
			prev()
		}
		if t, ok := m.entities[node]; ok && t.entity == e {
			DetachedEventType.Publish(m.world, DetachedEvent{Entity: e, Name: node.Name()})
		}
	}
	return e
}

// Untrack removes node's entity and restores the OnRemovedFromScene hook
// the node had before Track. Returns false if node was not tracked.
func (m *Mirror) Untrack(node *arbor.Node2D) bool {
	t, ok := m.entities[node]
	if !ok {
		return false
	}
	delete(m.entities, node)
	node.OnRemovedFromScene = t.prev
	if m.world.Valid(t.entity) {
		m.world.Remove(t.entity)
	}
	return true
}

// Entity returns the entity tracking node.
func (m *Mirror) Entity(node *arbor.Node2D) (donburi.Entity, bool) {
	t, ok := m.entities[node]
	return t.entity, ok
}

// Len returns the number of tracked nodes.
func (m *Mirror) Len() int {
	return len(m.entities)
}

// Sync copies every tracked node's world transform into its component.
// Disposed nodes are untracked and their entities removed. Call it after
// the scene's transform pass.
func (m *Mirror) Sync() {
	for node, t := range m.entities {
		if node.IsDisposed() {
			m.Untrack(node)
			continue
		}
		m.write(node, t.entity)
	}
}

func (m *Mirror) write(node *arbor.Node2D, e donburi.Entity) {
	w := node.WorldTransform()
	Transform.SetValue(m.world.Entry(e), TransformData{
		Name:     node.Name(),
		World:    w,
		Position: arbor.Vec2{X: w[4], Y: w[5]},
		Active:   node.Active(),
	})
}

// Each calls fn for every entity carrying a Transform component.
func Each(world donburi.World, fn func(e donburi.Entity, t *TransformData)) {
	transformQuery.Each(world, func(entry *donburi.Entry) {
		fn(entry.Entity(), Transform.Get(entry))
	})
}
