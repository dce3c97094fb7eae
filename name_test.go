package arbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryNextNameFormat(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "sprite_00000000", r.NextName("sprite"))
	assert.Equal(t, "sprite_00000001", r.NextName("sprite"))
	assert.Equal(t, "other_00000002", r.NextName("other"))
	assert.Equal(t, uint64(3), r.Issued())
}

func TestRegistryNamesUnique(t *testing.T) {
	r := NewRegistry()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := r.NewNode("same", true)
		assert.False(t, seen[n.Name()], "duplicate name %q", n.Name())
		seen[n.Name()] = true
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	a.NextName("x")
	a.NextName("x")
	assert.Equal(t, "x_00000000", b.NextName("x"))
}

func TestEntityBaseName(t *testing.T) {
	r := NewRegistry()
	n := r.NewNode2D("hero", true)
	assert.Equal(t, "hero", n.BaseName())
	assert.Equal(t, "hero_00000000", n.Name())
}

func TestRegistryCounterSharedAcrossKinds(t *testing.T) {
	r := NewRegistry()
	a := r.NewNode("a", true)
	b := r.NewNode2D("b", true)
	c := r.NewNode3D("c", true)
	assert.Equal(t, "a_00000000", a.Name())
	assert.Equal(t, "b_00000001", b.Name())
	assert.Equal(t, "c_00000002", c.Name())
}
