package arbor

import "iter"

// Iterator is a stateful cursor over the subtree rooted at the node it was
// created from. It is not restartable: request a fresh Iterator to traverse
// again. Abandoning an Iterator early needs no cleanup.
//
// Depth-first iteration keeps a stack and uses space proportional to the tree
// height times the branching factor. Breadth-first iteration keeps a queue
// that holds an entire level at a time, so for wide, shallow trees it can
// grow to the total number of nodes.
type Iterator struct {
	order Order
	stack []*Node
	queue []*Node
	head  int
}

func newIterator(root *Node, order Order) *Iterator {
	it := &Iterator{order: order}
	if order == DepthFirst {
		it.stack = append(it.stack, root)
	} else {
		it.queue = append(it.queue, root)
	}
	return it
}

// Iter returns a fresh iterator over n's subtree in the given order.
func (n *Node) Iter(order Order) *Iterator {
	return newIterator(n, order)
}

// DepthFirstIter returns a fresh pre-order iterator over n's subtree.
func (n *Node) DepthFirstIter() *Iterator {
	return newIterator(n, DepthFirst)
}

// BreadthFirstIter returns a fresh level-order iterator over n's subtree.
func (n *Node) BreadthFirstIter() *Iterator {
	return newIterator(n, BreadthFirst)
}

// Order returns the traversal order the iterator was created with.
func (it *Iterator) Order() Order {
	return it.order
}

// HasNext reports whether Next may be called.
func (it *Iterator) HasNext() bool {
	if it.order == DepthFirst {
		return len(it.stack) > 0
	}
	return it.head < len(it.queue)
}

// Next returns the next node and expands its children into the backing
// container. Panics if HasNext is false.
func (it *Iterator) Next() *Node {
	if !it.HasNext() {
		panic("arbor: Iterator.Next called after exhaustion")
	}
	if it.order == DepthFirst {
		last := len(it.stack) - 1
		n := it.stack[last]
		it.stack[last] = nil
		it.stack = it.stack[:last]
		// Push in reverse so children pop in child order.
		for i := len(n.children) - 1; i >= 0; i-- {
			it.stack = append(it.stack, n.children[i])
		}
		return n
	}

	n := it.queue[it.head]
	it.queue[it.head] = nil
	it.head++
	it.queue = append(it.queue, n.children...)
	// Reclaim the consumed prefix once it dominates the slice.
	if it.head > 64 && it.head*2 > len(it.queue) {
		m := copy(it.queue, it.queue[it.head:])
		clear(it.queue[m:])
		it.queue = it.queue[:m]
		it.head = 0
	}
	return n
}

// Next2D advances like Next and returns the node as a *Node2D, or nil when
// the yielded node is not a 2D node.
func (it *Iterator) Next2D() *Node2D {
	return it.Next().As2D()
}

// Next3D advances like Next and returns the node as a *Node3D, or nil when
// the yielded node is not a 3D node.
func (it *Iterator) Next3D() *Node3D {
	return it.Next().As3D()
}

// All returns a range-over-func sequence over n's subtree. Breaking out of
// the loop simply drops the backing container.
func (n *Node) All(order Order) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		it := newIterator(n, order)
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// All2D is like All but yields only 2D nodes.
func (n *Node) All2D(order Order) iter.Seq[*Node2D] {
	return func(yield func(*Node2D) bool) {
		for node := range n.All(order) {
			if v := node.As2D(); v != nil && !yield(v) {
				return
			}
		}
	}
}

// All3D is like All but yields only 3D nodes.
func (n *Node) All3D(order Order) iter.Seq[*Node3D] {
	return func(yield func(*Node3D) bool) {
		for node := range n.All(order) {
			if v := node.As3D(); v != nil && !yield(v) {
				return
			}
		}
	}
}
