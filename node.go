package arbor

// Element is anything that wraps a tree Node: *Node itself, *Node2D and
// *Node3D. Structural operations accept an Element so callers never need to
// reach for the embedded Node.
type Element interface {
	TreeNode() *Node
}

// Node is the fundamental scene graph element. It owns its children through
// an ordered slice and keeps a non-owning pointer to its parent that is used
// only for navigation. Child order is z-order: the front of the slice is the
// bottom, the back is the top.
//
// Lifecycle hooks are plain function fields (nil by default; zero cost when
// unused). Concrete node types set them instead of overriding methods.
type Node struct {
	Entity

	kind NodeKind
	self Element

	parent   *Node
	children []*Node

	active   bool
	attached bool
	disposed bool

	// OnSetup runs once from DeepSetup.
	OnSetup func()
	// OnUpdate runs every frame from DeepUpdate with the caller's frame delta.
	OnUpdate func(elapsed float64)
	// OnDraw runs from DeepDraw for active nodes.
	OnDraw func(dc *DrawContext)
	// OnAddedToScene runs the first time the node ever gets a parent.
	OnAddedToScene func()
	// OnRemovedFromScene runs every time the node is detached from a parent.
	OnRemovedFromScene func()
}

// NewNode creates a plain node with no transform, named through DefaultRegistry.
func NewNode(name string, active bool) *Node {
	return DefaultRegistry.NewNode(name, active)
}

// NewNode creates a plain node named through r.
func (r *Registry) NewNode(name string, active bool) *Node {
	n := &Node{}
	initNode(n, r, name, active, KindNode, n)
	return n
}

// initNode sets the common fields shared by all constructors.
func initNode(n *Node, r *Registry, name string, active bool, kind NodeKind, self Element) {
	n.Entity = newEntity(r, name)
	n.kind = kind
	n.self = self
	n.active = active
}

// TreeNode returns n. It makes *Node (and every type embedding Node) an Element.
func (n *Node) TreeNode() *Node {
	return n
}

// Kind reports the node's capability.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Element returns the concrete wrapper of this node (*Node, *Node2D or *Node3D).
func (n *Node) Element() Element {
	return n.self
}

// As2D returns the Node2D wrapping n, or nil if n is not a 2D node.
func (n *Node) As2D() *Node2D {
	if n == nil {
		return nil
	}
	v, _ := n.self.(*Node2D)
	return v
}

// As3D returns the Node3D wrapping n, or nil if n is not a 3D node.
func (n *Node) As3D() *Node3D {
	if n == nil {
		return nil
	}
	v, _ := n.self.(*Node3D)
	return v
}

// As is the generic capability query: it returns the wrapper of n as T when
// the node is of that type.
func As[T Element](n *Node) (T, bool) {
	var zero T
	if n == nil {
		return zero, false
	}
	v, ok := n.self.(T)
	return v, ok
}

// Active reports whether the node is drawn. Inactive nodes still update.
func (n *Node) Active() bool {
	return n.active
}

// SetActive enables or disables drawing of this node and its subtree.
func (n *Node) SetActive(active bool) {
	n.active = active
}

// --- Tree queries ---

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// HasParent reports whether the node is attached to a parent.
func (n *Node) HasParent() bool {
	return n.parent != nil
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

// ChildAt returns the child at the given index, or nil when out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// HasChild reports whether child is a direct child of n.
func (n *Node) HasChild(child Element) bool {
	if isNilElement(child) {
		return false
	}
	return n.indexOf(child.TreeNode()) >= 0
}

// ChildByName returns the first direct child whose unique name or base name
// equals name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.name == name || c.base == name {
			return c
		}
	}
	return nil
}

// FindParent returns the nearest ancestor of the given kind, or nil.
func (n *Node) FindParent(kind NodeKind) *Node {
	for p := n.parent; p != nil; p = p.parent {
		if p.kind == kind {
			return p
		}
	}
	return nil
}

// Root returns the topmost ancestor of n (n itself when detached).
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// --- Tree manipulation ---

// AddChild appends child to this node's children, making it the topmost child.
// If child already has a different parent, it is removed from that parent
// first. Returns false without changing anything when child is nil, is n, is
// already a child of n, is an ancestor of n, or has been disposed.
//
// With debug mode on (Scene.SetDebugMode), adding a disposed child or adding
// to a disposed parent panics instead, so use-after-dispose bugs surface at
// the call site.
func (n *Node) AddChild(child Element) bool {
	return n.insertChild(child, -1)
}

// AddChildAt inserts child at the given index among n's children. The same
// rules as AddChild apply, including the debug-mode panic on disposed
// nodes; an out-of-range index also returns false.
func (n *Node) AddChildAt(child Element, index int) bool {
	if index < 0 || index > len(n.children) {
		return false
	}
	return n.insertChild(child, index)
}

func (n *Node) insertChild(child Element, index int) bool {
	if isNilElement(child) {
		return false
	}
	c := child.TreeNode()
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(c, "AddChild (child)")
	}
	if c == n || c.parent == n || c.disposed || n.disposed {
		return false
	}
	if isAncestor(c, n) {
		return false
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	if index < 0 || index >= len(n.children) {
		n.children = append(n.children, c)
	} else {
		n.children = append(n.children, nil)
		copy(n.children[index+1:], n.children[index:])
		n.children[index] = c
	}
	c.parent = n
	if !c.attached {
		c.attached = true
		if c.OnAddedToScene != nil {
			c.OnAddedToScene()
		}
	}
	if globalDebug {
		debugCheckTreeDepth(c)
		debugCheckChildCount(n)
	}
	return true
}

// RemoveChild detaches child from this node and notifies it through
// OnRemovedFromScene. Returns false if child is not a current child.
func (n *Node) RemoveChild(child Element) bool {
	if isNilElement(child) {
		return false
	}
	c := child.TreeNode()
	i := n.indexOf(c)
	if i < 0 {
		return false
	}
	n.removeChildAt(i)
	c.parent = nil
	c.notifyRemoved()
	return true
}

// RemoveFromParent detaches this node from its parent.
// Returns false if this node has no parent.
func (n *Node) RemoveFromParent() bool {
	if n.parent == nil {
		return false
	}
	return n.parent.RemoveChild(n)
}

// RemoveChildren detaches and tears down every child. Each child receives
// OnRemovedFromScene before its own subtree is disposed.
func (n *Node) RemoveChildren() {
	children := n.children
	n.children = nil
	for _, c := range children {
		c.parent = nil
		c.notifyRemoved()
		c.dispose()
	}
}

// MoveToTop moves child to the end of the child list.
// Returns false if child is not a child of n.
func (n *Node) MoveToTop(child Element) bool {
	if isNilElement(child) {
		return false
	}
	c := child.TreeNode()
	i := n.indexOf(c)
	if i < 0 {
		return false
	}
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = c
	return true
}

// MoveToBottom moves child to the front of the child list.
// Returns false if child is not a child of n.
func (n *Node) MoveToBottom(child Element) bool {
	if isNilElement(child) {
		return false
	}
	c := child.TreeNode()
	i := n.indexOf(c)
	if i < 0 {
		return false
	}
	copy(n.children[1:i+1], n.children[:i])
	n.children[0] = c
	return true
}

// IsOnTop reports whether child is the last (topmost) child of n.
func (n *Node) IsOnTop(child Element) bool {
	if isNilElement(child) || len(n.children) == 0 {
		return false
	}
	return n.children[len(n.children)-1] == child.TreeNode()
}

// IsOnBottom reports whether child is the first (bottommost) child of n.
func (n *Node) IsOnBottom(child Element) bool {
	if isNilElement(child) || len(n.children) == 0 {
		return false
	}
	return n.children[0] == child.TreeNode()
}

// MoveSelfToTop puts this node above all of its siblings.
func (n *Node) MoveSelfToTop() bool {
	if n.parent == nil {
		return false
	}
	return n.parent.MoveToTop(n)
}

// MoveSelfToBottom puts this node below all of its siblings.
func (n *Node) MoveSelfToBottom() bool {
	if n.parent == nil {
		return false
	}
	return n.parent.MoveToBottom(n)
}

// IsSelfOnTop reports whether this node is above all of its siblings.
// A node without a parent is neither on top nor on bottom.
func (n *Node) IsSelfOnTop() bool {
	return n.parent != nil && n.parent.IsOnTop(n)
}

// IsSelfOnBottom reports whether this node is below all of its siblings.
func (n *Node) IsSelfOnBottom() bool {
	return n.parent != nil && n.parent.IsOnBottom(n)
}

// --- Lifecycle ---

// DeepSetup calls OnSetup on this node and then on every descendant, pre-order.
func (n *Node) DeepSetup() {
	if n.OnSetup != nil {
		n.OnSetup()
	}
	for _, c := range n.children {
		c.DeepSetup()
	}
}

// DeepUpdate calls OnUpdate on this node and then on every descendant,
// pre-order. elapsed is passed unchanged to every node.
func (n *Node) DeepUpdate(elapsed float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(elapsed)
	}
	for _, c := range n.children {
		c.DeepUpdate(elapsed)
	}
}

// DeepDraw calls OnDraw on this node and then on every descendant, pre-order.
// Inactive nodes are skipped together with their subtree. The transform pass
// must have run before DeepDraw.
func (n *Node) DeepDraw(dc *DrawContext) {
	if !n.active {
		return
	}
	if n.OnDraw != nil {
		dc.Node = n
		n.OnDraw(dc)
	}
	for _, c := range n.children {
		c.DeepDraw(dc)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent and tears down its whole subtree.
// Every detached node receives OnRemovedFromScene once.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, c := range n.children {
		c.parent = nil
		c.notifyRemoved()
		c.dispose()
	}
	n.children = nil
	n.parent = nil
	n.OnSetup = nil
	n.OnUpdate = nil
	n.OnDraw = nil
	n.OnAddedToScene = nil
	n.OnRemovedFromScene = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

func (n *Node) notifyRemoved() {
	if n.OnRemovedFromScene != nil {
		n.OnRemovedFromScene()
	}
}

func (n *Node) indexOf(c *Node) int {
	for i, x := range n.children {
		if x == c {
			return i
		}
	}
	return -1
}

// removeChildAt removes the child at i without clearing its parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildAt(i int) {
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// isNilElement reports whether e is nil or a typed nil pointer of a known
// wrapper type.
func isNilElement(e Element) bool {
	switch v := e.(type) {
	case nil:
		return true
	case *Node:
		return v == nil
	case *Node2D:
		return v == nil
	case *Node3D:
		return v == nil
	}
	return false
}
