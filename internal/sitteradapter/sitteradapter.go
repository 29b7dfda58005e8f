// Package sitteradapter adapts github.com/smacker/go-tree-sitter's
// *sitter.Node to the core's pkg/syntax.Node interface. SPEC_FULL declares
// the concrete tree-sitter grammar an external collaborator (spec §1); this
// package is the seam between that grammar and the formatter core, which
// never imports go-tree-sitter directly.
package sitteradapter

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/tuncb/dfixxer/pkg/syntax"
)

// Node wraps a *sitter.Node so it satisfies syntax.Node.
type Node struct {
	n *sitter.Node
}

// Wrap adapts a *sitter.Node, or nil if n is nil.
func Wrap(n *sitter.Node) syntax.Node {
	if n == nil {
		return nil
	}
	return &Node{n: n}
}

func (w *Node) Kind() string { return w.n.Kind() }

func (w *Node) StartByte() int { return int(w.n.StartByte()) }
func (w *Node) EndByte() int   { return int(w.n.EndByte()) }

func (w *Node) ChildCount() int { return int(w.n.ChildCount()) }

func (w *Node) Child(i int) syntax.Node {
	if i < 0 || i >= w.ChildCount() {
		return nil
	}
	return Wrap(w.n.Child(i))
}

func (w *Node) Parent() syntax.Node { return Wrap(w.n.Parent()) }

func (w *Node) HasError() bool { return w.n.HasError() }

// IsError reports whether this specific node is a synthesized ERROR node,
// the tree-sitter convention pkg/syntax's KindError constant names.
func (w *Node) IsError() bool { return w.n.Kind() == syntax.KindError }
