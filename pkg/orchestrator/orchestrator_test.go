package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuncb/dfixxer/pkg/config"
	"github.com/tuncb/dfixxer/pkg/diagnostics"
	"github.com/tuncb/dfixxer/pkg/syntax"
)

// node is the same minimal in-memory syntax.Node used across this repo's
// package tests, letting the pipeline run end to end without a real
// tree-sitter grammar.
type node struct {
	kind     string
	start    int
	end      int
	children []*node
	isError  bool
}

func (n *node) Kind() string    { return n.kind }
func (n *node) StartByte() int  { return n.start }
func (n *node) EndByte() int    { return n.end }
func (n *node) ChildCount() int { return len(n.children) }
func (n *node) Child(i int) syntax.Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}
func (n *node) Parent() syntax.Node { return nil }
func (n *node) HasError() bool {
	if n.isError {
		return true
	}
	for _, c := range n.children {
		if c.HasError() {
			return true
		}
	}
	return false
}
func (n *node) IsError() bool { return n.isError }

func TestProcessSpacesUntouchedGapsWithNoTree(t *testing.T) {
	source := "a,b ,c"
	result, err := Process(nil, []byte(source), config.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, "a, b, c", string(result.Output))
	assert.Equal(t, 1, result.ReplacementCount)
}

func TestProcessReformatsUsesSectionAndSpacesRemainder(t *testing.T) {
	source := "uses UnitB, UnitA;\nX := 1+2;"
	usesStart := indexOf(source, "uses")
	usesEnd := indexOf(source, ";") + 1
	root := &node{kind: "file", start: 0, end: len(source), children: []*node{
		{kind: syntax.KindUses, start: usesStart, end: usesEnd, children: []*node{
			{kind: "unitName", start: indexOf(source, "UnitB"), end: indexOf(source, "UnitB") + len("UnitB")},
			{kind: "unitName", start: indexOf(source, "UnitA"), end: indexOf(source, "UnitA") + len("UnitA")},
		}},
	}}

	opts := config.DefaultConfig()
	opts.Indentation = "  "
	result, err := Process(root, []byte(source), opts, nil)
	require.NoError(t, err)
	assert.Contains(t, string(result.Output), "uses\n  UnitA,\n  UnitB;")
	assert.Contains(t, string(result.Output), "X := 1 + 2;")
	assert.Empty(t, result.Warnings)
}

func TestProcessReportsWarningOnUsesParseError(t *testing.T) {
	source := "uses UnitA;"
	root := &node{kind: "file", start: 0, end: len(source), children: []*node{
		{kind: syntax.KindUses, start: 0, end: len(source), isError: true},
	}}

	result, err := Process(root, []byte(source), config.DefaultConfig(), nil)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, diagnostics.ParseErrorInSection, result.Warnings[0].Reason)
}

func TestProcessNoOpWhenTransformationsDisabled(t *testing.T) {
	source := "uses   UnitA  ,  UnitB ;\nX:=1+2;"
	opts := &config.Options{
		Indentation: "  ",
		LineEnding:  config.LineEndingLF,
	}

	result, err := Process(nil, []byte(source), opts, nil)
	require.NoError(t, err)
	assert.Equal(t, source, string(result.Output))
	assert.Equal(t, 0, result.ReplacementCount)
}

func TestProcessIdempotent(t *testing.T) {
	source := "uses UnitB, UnitA;\nX := 1+2;"
	root := &node{kind: "file", start: 0, end: len(source), children: []*node{
		{kind: syntax.KindUses, start: indexOf(source, "uses"), end: indexOf(source, ";") + 1, children: []*node{
			{kind: "unitName", start: indexOf(source, "UnitB"), end: indexOf(source, "UnitB") + len("UnitB")},
			{kind: "unitName", start: indexOf(source, "UnitA"), end: indexOf(source, "UnitA") + len("UnitA")},
		}},
	}}

	opts := config.DefaultConfig()
	first, err := Process(root, []byte(source), opts, nil)
	require.NoError(t, err)

	second, err := Process(nil, first.Output, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, string(first.Output), string(second.Output))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
