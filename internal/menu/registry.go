package menu

import "github.com/atomicstack/buildtree/internal/session"

// Node represents a menu entry definition within the registry tree.
type Node struct {
	ID          string
	Action      Action
	Children    map[string]*Node
	MultiSelect bool
}

// Registry exposes lookup utilities for menu definitions.
type Registry struct {
	root  *Node
	nodes map[string]*Node
}

// BuildRegistry wires every session action to its handler.
func BuildRegistry() *Registry {
	root := &Node{ID: "root", Children: make(map[string]*Node)}
	nodes := map[string]*Node{root.ID: root}

	for action, handler := range ActionHandlers() {
		node := &Node{ID: string(action), Action: handler, Children: map[string]*Node{}}
		nodes[node.ID] = node
		root.Children[node.ID] = node
	}

	for _, action := range []session.Action{session.ActionAdd, session.ActionRename, session.ActionRemove} {
		if node, ok := nodes[string(action)]; ok {
			node.MultiSelect = true
		}
	}

	return &Registry{root: root, nodes: nodes}
}

// Root returns the registry root node.
func (r *Registry) Root() *Node {
	return r.root
}

// Find locates a node by ID.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}
