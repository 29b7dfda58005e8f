// Package syntax defines the minimal view of a parsed syntax tree the
// formatter core depends on. It deliberately does not depend on any
// concrete grammar or parser library: SPEC_FULL declares "the concrete
// tree-sitter grammar" an external collaborator, so the core is written
// against this interface and a real grammar is wired in at the edges (see
// internal/sitteradapter).
package syntax

// Node is a single node of a parsed syntax tree, addressed by byte offset
// into the original source. Its shape mirrors the subset of
// github.com/smacker/go-tree-sitter's *sitter.Node API the core actually
// needs, so wrapping a real tree-sitter parse in this interface is a thin
// adapter rather than a rewrite.
type Node interface {
	// Kind is the grammar's node type name, e.g. "genericTpl", "exprUnary",
	// "assignment", "usesSection", "ERROR".
	Kind() string

	StartByte() int
	EndByte() int

	ChildCount() int
	Child(i int) Node
	Parent() Node

	// HasError reports whether this node or any descendant was produced by
	// parser error recovery.
	HasError() bool

	// IsError reports whether this specific node is a synthesized error
	// node (as opposed to a valid node somewhere beneath an error).
	IsError() bool
}

// Walk visits node and every descendant in a pre-order traversal, calling
// visit for each. Traversal into a subtree stops when visit returns false.
func Walk(node Node, visit func(Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < node.ChildCount(); i++ {
		Walk(node.Child(i), visit)
	}
}

// FindKind returns the first descendant of node (node itself included)
// whose Kind equals kind, in pre-order, or nil if none exists.
func FindKind(node Node, kind string) Node {
	var found Node
	Walk(node, func(n Node) bool {
		if found != nil {
			return false
		}
		if n.Kind() == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

// Text returns the source slice spanned by node.
func Text(node Node, source []byte) []byte {
	return source[node.StartByte():node.EndByte()]
}
