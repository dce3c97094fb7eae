package arbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildIterTree builds
//
//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	├── b (2D)
//	│   └── b1 (3D)
//	└── c
func buildIterTree(t *testing.T) *Node {
	t.Helper()
	r := NewRegistry()
	root := r.NewNode("root", true)
	a := r.NewNode("a", true)
	b := r.NewNode2D("b", true)
	c := r.NewNode("c", true)
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)
	a.AddChild(r.NewNode("a1", true))
	a.AddChild(r.NewNode("a2", true))
	b.AddChild(r.NewNode3D("b1", true))
	return root
}

func drain(it *Iterator) []string {
	var out []string
	for it.HasNext() {
		out = append(out, it.Next().BaseName())
	}
	return out
}

func TestDepthFirstIsPreOrder(t *testing.T) {
	root := buildIterTree(t)
	got := drain(root.DepthFirstIter())
	assert.Equal(t, []string{"root", "a", "a1", "a2", "b", "b1", "c"}, got)
}

func TestDepthFirstMatchesDeepSetup(t *testing.T) {
	root := buildIterTree(t)
	var setup []string
	for n := range root.All(DepthFirst) {
		n.OnSetup = func() { setup = append(setup, n.BaseName()) }
	}
	root.DeepSetup()
	assert.Equal(t, setup, drain(root.Iter(DepthFirst)))
}

func TestBreadthFirstIsLevelOrder(t *testing.T) {
	root := buildIterTree(t)
	got := drain(root.BreadthFirstIter())
	assert.Equal(t, []string{"root", "a", "b", "c", "a1", "a2", "b1"}, got)
}

func TestIteratorVisitsEveryNodeOnce(t *testing.T) {
	root := buildIterTree(t)
	for _, order := range []Order{DepthFirst, BreadthFirst} {
		seen := map[*Node]int{}
		for n := range root.All(order) {
			seen[n]++
		}
		assert.Len(t, seen, 7)
		for n, count := range seen {
			assert.Equal(t, 1, count, "node %s", n.Name())
		}
	}
}

func TestIteratorSingleNode(t *testing.T) {
	n := NewRegistry().NewNode("solo", true)
	it := n.DepthFirstIter()
	require.True(t, it.HasNext())
	assert.Same(t, n, it.Next())
	assert.False(t, it.HasNext())
	assert.Equal(t, DepthFirst, it.Order())
}

func TestIteratorNextAfterExhaustionPanics(t *testing.T) {
	n := NewRegistry().NewNode("solo", true)
	for _, order := range []Order{DepthFirst, BreadthFirst} {
		it := n.Iter(order)
		it.Next()
		assert.Panics(t, func() { it.Next() })
	}
}

func TestIteratorTypedVariants(t *testing.T) {
	root := buildIterTree(t)

	it := root.DepthFirstIter()
	var twoD, threeD int
	for it.HasNext() {
		n := it.Next()
		switch n.Kind() {
		case Kind2D:
			twoD++
		case Kind3D:
			threeD++
		}
	}
	assert.Equal(t, 1, twoD)
	assert.Equal(t, 1, threeD)

	it = root.BreadthFirstIter()
	assert.Nil(t, it.Next2D(), "root is a plain node")
	assert.Nil(t, it.Next2D(), "a is a plain node")
	b := it.Next2D()
	require.NotNil(t, b)
	assert.Equal(t, "b", b.BaseName())

	var names3D []string
	for n := range root.All3D(DepthFirst) {
		names3D = append(names3D, n.BaseName())
	}
	assert.Equal(t, []string{"b1"}, names3D)

	var names2D []string
	for n := range root.All2D(BreadthFirst) {
		names2D = append(names2D, n.BaseName())
	}
	assert.Equal(t, []string{"b"}, names2D)
}

func TestAllEarlyBreak(t *testing.T) {
	root := buildIterTree(t)
	var got []string
	for n := range root.All(BreadthFirst) {
		got = append(got, n.BaseName())
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"root", "a"}, got)
}

func TestBreadthFirstWideTree(t *testing.T) {
	r := NewRegistry()
	root := r.NewNode("root", true)
	for i := 0; i < 200; i++ {
		child := r.NewNode("child", true)
		child.AddChild(r.NewNode("leaf", true))
		root.AddChild(child)
	}

	var count, leaves int
	for n := range root.All(BreadthFirst) {
		count++
		if n.BaseName() == "leaf" {
			leaves++
		} else {
			require.Zero(t, leaves, "non-leaf %s visited after a leaf", n.Name())
		}
	}
	assert.Equal(t, 401, count)
	assert.Equal(t, 200, leaves)
}
