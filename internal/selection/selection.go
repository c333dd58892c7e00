// Package selection flattens a tree into an ordered list of selectable
// entries for menu-style prompts.
//
// Every node that has children appears twice: once as a Leaf entry that
// targets the node itself, and once as a Branch entry under which the node's
// descendants are nested. Menus open Branch entries and pick Leaf entries.
package selection

import "github.com/atomicstack/buildtree/internal/tree"

// Kind tags an Entry as a leaf target or a branch container.
type Kind int

const (
	// Leaf entries are picked to act on their node.
	Leaf Kind = iota
	// Branch entries hold the node's children in the menu hierarchy.
	Branch
)

func (k Kind) String() string {
	if k == Branch {
		return "branch"
	}
	return "leaf"
}

// TopLevel is the Parent value of entries that are not nested under a branch.
const TopLevel = -1

// Entry is one selectable row.
type Entry struct {
	Kind Kind
	Node *tree.Node
	// Parent is the index of the owning Branch entry, or TopLevel.
	Parent int
	// Depth is the nesting depth in the menu hierarchy (top level is 0).
	Depth int
}

// IsBranch reports whether the entry opens a nested level.
func (e Entry) IsBranch() bool { return e.Kind == Branch }

// Flatten returns the entries for t in depth-first order. includeRoot controls
// whether the root itself can be picked. A tree holding only its root with
// includeRoot false yields an empty, non-nil slice.
func Flatten(t *tree.Tree, includeRoot bool) []Entry {
	entries := []Entry{}
	if t == nil || t.Root == nil {
		return entries
	}
	if includeRoot {
		entries = append(entries, Entry{Kind: Leaf, Node: t.Root, Parent: TopLevel})
	}
	if !t.Root.HasChildren() {
		return entries
	}
	entries = append(entries, Entry{Kind: Branch, Node: t.Root, Parent: TopLevel})

	type frame struct {
		queue  []*tree.Node
		branch int
	}
	stack := []frame{{queue: t.Root.Children, branch: len(entries) - 1}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if len(top.queue) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		node := top.queue[0]
		top.queue = top.queue[1:]
		owner := top.branch
		depth := entries[owner].Depth + 1
		entries = append(entries, Entry{Kind: Leaf, Node: node, Parent: owner, Depth: depth})
		if !node.HasChildren() {
			continue
		}
		entries = append(entries, Entry{Kind: Branch, Node: node, Parent: owner, Depth: depth})
		stack = append(stack, frame{queue: node.Children, branch: len(entries) - 1})
	}
	return entries
}

// Children returns the indexes of entries nested directly under parent, in
// order. Pass TopLevel for the outermost level.
func Children(entries []Entry, parent int) []int {
	var out []int
	for i, e := range entries {
		if e.Parent == parent {
			out = append(out, i)
		}
	}
	return out
}

// Nodes resolves entry indexes to their nodes, dropping out-of-range indexes
// and repeated nodes while keeping first-seen order.
func Nodes(entries []Entry, indexes []int) []*tree.Node {
	seen := make(map[*tree.Node]struct{}, len(indexes))
	out := make([]*tree.Node, 0, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= len(entries) {
			continue
		}
		n := entries[idx].Node
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Path returns the chain of Branch entries leading to idx, outermost first.
func Path(entries []Entry, idx int) []int {
	var path []int
	for idx >= 0 && idx < len(entries) {
		parent := entries[idx].Parent
		if parent == TopLevel {
			break
		}
		path = append([]int{parent}, path...)
		idx = parent
	}
	return path
}
