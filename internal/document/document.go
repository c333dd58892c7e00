// Package document maps trees to a structural document and persists them.
//
// Only raw node text and child order are stored. Labels, parent links and
// expansion state are rebuilt after every decode.
package document

import (
	"errors"
	"fmt"

	"github.com/atomicstack/buildtree/internal/tree"
)

// ErrNoRoot is matched by a FormatError raised for a missing document element.
var ErrNoRoot = errors.New("document has no root element")

// FormatError reports a document that cannot be turned into a tree.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid tree document: %v", e.Err)
	}
	return fmt.Sprintf("invalid tree document %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Node is the persisted form of a tree node.
type Node struct {
	RawText string  `xml:"RawText" yaml:"text" json:"text"`
	Nodes   []*Node `xml:"Nodes>TreeNode" yaml:"nodes,omitempty" json:"nodes,omitempty"`
}

// Document is the persisted form of a tree. A nil Root decodes to a tree whose
// root carries tree.DefaultRootText.
type Document struct {
	Root *Node `xml:"Root" yaml:"root" json:"root"`
}

// ToDocument captures the raw text and shape of t.
func ToDocument(t *tree.Tree) *Document {
	if t == nil || t.Root == nil {
		return &Document{}
	}
	type frame struct {
		src *tree.Node
		dst *Node
	}
	root := &Node{RawText: t.Root.Text()}
	stack := []frame{{src: t.Root, dst: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(f.src.Children) == 0 {
			continue
		}
		f.dst.Nodes = make([]*Node, len(f.src.Children))
		for i, child := range f.src.Children {
			f.dst.Nodes[i] = &Node{RawText: child.Text()}
			stack = append(stack, frame{src: child, dst: f.dst.Nodes[i]})
		}
	}
	return &Document{Root: root}
}

// FromDocument rebuilds a tree from d and runs the rebuild pass over it.
func FromDocument(d *Document) (*tree.Tree, error) {
	if d == nil {
		return nil, &FormatError{Err: ErrNoRoot}
	}
	t := tree.New(tree.DefaultRootText)
	if d.Root == nil {
		return t, nil
	}
	type frame struct {
		src *Node
		dst *tree.Node
	}
	t.Root = tree.NewNode(d.Root.RawText)
	stack := []frame{{src: d.Root, dst: t.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range f.src.Nodes {
			if child == nil {
				continue
			}
			n := tree.NewNode(child.RawText)
			f.dst.Children = append(f.dst.Children, n)
			stack = append(stack, frame{src: child, dst: n})
		}
	}
	t.Rebuild()
	return t, nil
}
