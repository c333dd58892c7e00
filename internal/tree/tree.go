// Package tree holds the labelled tree edited by buildtree.
//
// A Node is owned by exactly one parent's Children slice (the root is owned by
// the Tree). The parent back-reference is a lookup aid only: it is never
// persisted and is rebuilt after a document load by Tree.Rebuild.
package tree

import "github.com/charmbracelet/lipgloss"

// DefaultRootText labels the root of a tree decoded from a document that
// carried no root node.
const DefaultRootText = "Node"

// Node is a single labelled entry in the tree.
type Node struct {
	// Children are the node's child nodes in insertion order.
	Children []*Node
	// Expanded controls whether rendering descends into Children.
	Expanded bool

	rawText string
	label   Label
	parent  *Node
}

// NewNode creates a detached node with the given raw text.
func NewNode(text string) *Node {
	n := &Node{Expanded: true}
	n.setText(text)
	return n
}

// Text returns the raw, unprocessed text of the node.
func (n *Node) Text() string { return n.rawText }

// Label returns the derived display form of the node's text.
func (n *Node) Label() Label { return n.label }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

func (n *Node) String() string { return n.rawText }

func (n *Node) setText(text string) {
	n.rawText = text
	n.label = NewLabel(text)
}

// AddChild appends a new child with the given text to node.
func AddChild(node *Node, text string) *Node {
	child := NewNode(text)
	child.parent = node
	node.Children = append(node.Children, child)
	return child
}

// UpdateText replaces the node's raw text and recomputes its label.
func UpdateText(node *Node, text string) {
	node.setText(text)
}

// RemoveChild detaches child from parent. It does nothing when parent is nil
// or child is not one of its children.
func RemoveChild(parent, child *Node) {
	if parent == nil {
		return
	}
	for i, c := range parent.Children {
		if c != child {
			continue
		}
		copy(parent.Children[i:], parent.Children[i+1:])
		parent.Children[len(parent.Children)-1] = nil
		parent.Children = parent.Children[:len(parent.Children)-1]
		child.parent = nil
		return
	}
}

// Detach removes the node from its parent. The root cannot be detached.
func (n *Node) Detach() {
	RemoveChild(n.parent, n)
}

// Tree is a single owned root plus display configuration.
type Tree struct {
	Root *Node
	// Unicode selects box-drawing guides; false falls back to ASCII.
	Unicode bool
	// Style is applied to guide segments.
	Style lipgloss.Style
}

// New creates a tree whose root carries rootText.
func New(rootText string) *Tree {
	return &Tree{
		Root:    NewNode(rootText),
		Unicode: true,
		Style:   lipgloss.NewStyle(),
	}
}

// Nodes returns the root's children.
func (t *Tree) Nodes() []*Node {
	if t == nil || t.Root == nil {
		return nil
	}
	return t.Root.Children
}

// Rebuild recomputes every label, resets parent links and expands every node.
// It must run after the structure was populated from a document.
func (t *Tree) Rebuild() {
	if t == nil || t.Root == nil {
		return
	}
	t.Root.parent = nil
	stack := []*Node{t.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n.label = NewLabel(n.rawText)
		n.Expanded = true
		for i := len(n.Children) - 1; i >= 0; i-- {
			child := n.Children[i]
			child.parent = n
			stack = append(stack, child)
		}
	}
}

// Walk visits every node in pre-order, passing its depth (root is 0).
// Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	if t == nil || t.Root == nil {
		return
	}
	type frame struct {
		node  *Node
		depth int
	}
	stack := []frame{{node: t.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.node, f.depth) {
			continue
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], depth: f.depth + 1})
		}
	}
}

// Count returns the number of nodes including the root.
func (t *Tree) Count() int {
	count := 0
	t.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

