package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNode is a minimal in-memory Node used to drive collector tests
// without a real tree-sitter grammar, matching the seam SPEC_FULL §1
// describes ("the concrete tree-sitter grammar" is an external
// collaborator; core tests construct trees directly).
type fakeNode struct {
	kind     string
	start    int
	end      int
	children []*fakeNode
	parent   *fakeNode
	isError  bool
}

func leaf(kind string, start, end int) *fakeNode {
	return &fakeNode{kind: kind, start: start, end: end}
}

func node(kind string, start, end int, children ...*fakeNode) *fakeNode {
	n := &fakeNode{kind: kind, start: start, end: end, children: children}
	for _, c := range children {
		c.parent = n
	}
	return n
}

func (f *fakeNode) Kind() string    { return f.kind }
func (f *fakeNode) StartByte() int  { return f.start }
func (f *fakeNode) EndByte() int    { return f.end }
func (f *fakeNode) ChildCount() int { return len(f.children) }
func (f *fakeNode) Child(i int) Node {
	if i < 0 || i >= len(f.children) {
		return nil
	}
	return f.children[i]
}
func (f *fakeNode) Parent() Node {
	if f.parent == nil {
		return nil
	}
	return f.parent
}
func (f *fakeNode) HasError() bool {
	if f.isError {
		return true
	}
	for _, c := range f.children {
		if c.HasError() {
			return true
		}
	}
	return false
}
func (f *fakeNode) IsError() bool { return f.isError }

func TestCollectGenericBrackets(t *testing.T) {
	// TArray<Integer>
	root := node(KindGenericTpl, 0, 15,
		leaf("ident", 0, 6),
		leaf("<", 6, 7),
		leaf("ident", 7, 14),
		leaf(">", 14, 15),
	)

	ctx := Collect(root, []byte("TArray<Integer>"))
	assert.True(t, ctx.GenericAnglePositions[6])
	assert.True(t, ctx.GenericAnglePositions[14])
}

func TestCollectUnarySign(t *testing.T) {
	root := node(KindExprUnary, 5, 7, leaf("-", 5, 6), leaf("num", 6, 7))
	ctx := Collect(root, []byte("X := -1"))
	assert.True(t, ctx.UnarySignPositions[5])
}

func TestCollectErrorRangesMerged(t *testing.T) {
	a := &fakeNode{kind: KindError, start: 10, end: 20, isError: true}
	b := &fakeNode{kind: KindError, start: 18, end: 30, isError: true}
	root := node("root", 0, 40, a, b)

	ctx := Collect(root, make([]byte, 40))
	require.Len(t, ctx.ErrorRanges, 1)
	assert.Equal(t, Range{Start: 10, End: 30}, ctx.ErrorRanges[0])
	assert.True(t, ctx.InErrorRange(15))
	assert.False(t, ctx.InErrorRange(35))
}

func TestCollectExponentSign(t *testing.T) {
	source := []byte("X := 1.5e+10;")
	ctx := Collect(node("root", 0, len(source)), source)
	assert.True(t, ctx.ExponentSignPositions[9])
}

func TestCollectNilRootReturnsEmptyContext(t *testing.T) {
	ctx := Collect(nil, nil)
	require.NotNil(t, ctx)
	assert.Empty(t, ctx.GenericAnglePositions)
}
