// Package scene is the live scene graph the converter reads from and builds into.
//
// Nodes form an ordered tree. Top-level nodes belong to the Scene directly,
// every other node is reachable through its parent's Childs. Capabilities
// (meshes, renderers, bodies, colliders) are component records attached by kind.
package scene

type Scene struct {
	roots []*Node
}

func NewScene() *Scene {
	return &Scene{roots: make([]*Node, 0)}
}

// RootNodes returns top-level nodes in order. The slice must not be modified.
func (s *Scene) RootNodes() []*Node {
	return s.roots
}

// NewNode creates a node and appends it to parent's children,
// or to the top level when parent is nil
func (s *Scene) NewNode(name string, parent *Node) *Node {
	n := newNode(name)
	s.link(n, parent)
	return n
}

func (s *Scene) link(n *Node, parent *Node) {
	n.Parent = parent
	if parent == nil {
		s.roots = append(s.roots, n)
	} else {
		parent.Childs = append(parent.Childs, n)
	}
}

func (s *Scene) unlink(n *Node) {
	siblings := &s.roots
	if n.Parent != nil {
		siblings = &n.Parent.Childs
	}
	for i, c := range *siblings {
		if c == n {
			*siblings = append((*siblings)[:i], (*siblings)[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// SetParent moves n to the end of parent's children
func (s *Scene) SetParent(n *Node, parent *Node) {
	s.unlink(n)
	s.link(n, parent)
}

// Destroy removes n and its subtree from the scene
func (s *Scene) Destroy(n *Node) {
	s.unlink(n)
}

// Walk visits nodes depth-first in sibling order.
// Returning false from fn skips the node's children.
func (s *Scene) Walk(fn func(n *Node, depth int) bool) {
	for _, n := range s.roots {
		n.Walk(fn)
	}
}

// Walk visits n and its subtree, n itself is at depth 0
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(n *Node, depth int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Childs {
		walk(c, depth+1, fn)
	}
}

func (s *Scene) Count() int {
	count := 0
	s.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Find returns the first node in walk order with the given name
func (s *Scene) Find(name string) *Node {
	var found *Node
	s.Walk(func(n *Node, _ int) bool {
		if found == nil && n.Name == name {
			found = n
		}
		return found == nil
	})
	return found
}
