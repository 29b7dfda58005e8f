// Package tests exercises the orchestrator end to end against the worked
// scenarios fixed in the specification this formatter implements, using
// fixture pairs under golden/. Since no concrete tree-sitter grammar is
// vendored in this module (SPEC_FULL §1 treats it as an external
// collaborator), each case builds the minimal syntax tree its scenario
// actually needs by hand, the same fake-node convention used throughout the
// package test suites, rather than driving a real parser.
package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuncb/dfixxer/pkg/config"
	"github.com/tuncb/dfixxer/pkg/orchestrator"
	"github.com/tuncb/dfixxer/pkg/syntax"
)

// node is the minimal in-memory syntax.Node built by every package's test
// suite; golden_test.go uses the same shape so fixtures exercise the real
// orchestrator pipeline.
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

func readFixture(t *testing.T, name string) (source, golden []byte) {
	t.Helper()
	source, err := os.ReadFile(filepath.Join("golden", name+".pas"))
	require.NoError(t, err)
	golden, err = os.ReadFile(filepath.Join("golden", name+".golden"))
	require.NoError(t, err)
	return source, golden
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// TestGoldenUsesSortQualify is scenario (a): sort + priority qualification
// with a name_rewrites map, comma_at_end style.
func TestGoldenUsesSortQualify(t *testing.T) {
	source, golden := readFixture(t, "uses_sort_qualify")
	src := string(source)

	units := []string{"UnitC", "UnitA", "Classes", "Forms"}
	var children []*node
	for _, u := range units {
		start := indexOf(src, u)
		children = append(children, &node{kind: "unitName", start: start, end: start + len(u)})
	}
	root := &node{kind: "file", start: 0, end: len(source), children: []*node{
		{kind: syntax.KindUses, start: indexOf(src, "uses"), end: indexOf(src, ";") + 1, children: children},
	}}

	opts := config.DefaultConfig()
	opts.Indentation = "    "
	opts.UsesSection.PriorityPrefixes = []string{"System", "Vcl"}
	opts.UsesSection.NameRewrites = map[string]string{"Classes": "System", "Forms": "Vcl"}
	opts.LineEnding = config.LineEndingLF

	result, err := orchestrator.Process(root, source, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, string(golden), string(result.Output))
}

// TestGoldenUsesSortQualifyIdempotent is scenario (f): re-running the
// pipeline on scenario (a)'s own output changes nothing further, since the
// uses section is already sorted and qualified.
func TestGoldenUsesSortQualifyIdempotent(t *testing.T) {
	_, golden := readFixture(t, "uses_sort_qualify")
	src := string(golden)

	units := []string{"System.Classes", "UnitA", "UnitC", "Vcl.Forms"}
	var children []*node
	for _, u := range units {
		start := indexOf(src, u)
		children = append(children, &node{kind: "unitName", start: start, end: start + len(u)})
	}
	root := &node{kind: "file", start: 0, end: len(golden), children: []*node{
		{kind: syntax.KindUses, start: indexOf(src, "uses"), end: indexOf(src, ";") + 1, children: children},
	}}

	opts := config.DefaultConfig()
	opts.Indentation = "    "
	opts.UsesSection.PriorityPrefixes = []string{"System", "Vcl"}
	opts.LineEnding = config.LineEndingLF

	result, err := orchestrator.Process(root, golden, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, string(golden), string(result.Output))
}

// TestGoldenGenericPreservationUnderErrorRecovery is scenario (b): an error
// range covering an earlier function body never disturbs a generic's
// brackets elsewhere in the file.
func TestGoldenGenericPreservationUnderErrorRecovery(t *testing.T) {
	source, golden := readFixture(t, "generic_preservation")
	src := string(source)

	brokenStart := indexOf(src, "begin\n  Result := 1 + ;\n")
	brokenEnd := indexOf(src, "end;") + len("end;")

	genericOpen := indexOf(src, "<Integer>")

	root := &node{kind: "file", start: 0, end: len(source), children: []*node{
		{kind: syntax.KindError, start: brokenStart, end: brokenEnd, isError: true},
		{kind: syntax.KindGenericTpl, start: genericOpen, end: genericOpen + len("<Integer>"), children: []*node{
			{kind: "<", start: genericOpen, end: genericOpen + 1},
			{kind: "identifier", start: genericOpen + 1, end: genericOpen + 1 + len("Integer")},
			{kind: ">", start: genericOpen + len("<Integer>") - 1, end: genericOpen + len("<Integer>")},
		}},
	}}

	result, err := orchestrator.Process(root, source, config.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, string(golden), string(result.Output))
}

// TestGoldenUnaryVsBinarySign is scenario (c).
func TestGoldenUnaryVsBinarySign(t *testing.T) {
	source, golden := readFixture(t, "unary_vs_binary")
	src := string(source)

	firstSign := indexOf(src, "- 1")
	secondSign := indexOf(src, "- 2")
	thirdSign := indexOf(src, "-Foo")

	root := &node{kind: "file", start: 0, end: len(source), children: []*node{
		{kind: syntax.KindExprUnary, start: firstSign, end: firstSign + 3, children: []*node{
			{kind: "-", start: firstSign, end: firstSign + 1},
		}},
		{kind: syntax.KindExprUnary, start: secondSign, end: secondSign + 3, children: []*node{
			{kind: "-", start: secondSign, end: secondSign + 1},
		}},
		{kind: syntax.KindExprUnary, start: thirdSign, end: thirdSign + len("-Foo(1)"), children: []*node{
			{kind: "-", start: thirdSign, end: thirdSign + 1},
		}},
	}}

	result, err := orchestrator.Process(root, source, config.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, string(golden), string(result.Output))
}

// TestGoldenColonNumericException is scenario (d): the digit/') '-bounded
// ':' cluster of a write-format specifier is never spaced even though
// colon = after is configured.
func TestGoldenColonNumericException(t *testing.T) {
	source, golden := readFixture(t, "colon_numeric_exception")

	opts := config.DefaultConfig()
	opts.TextChanges.ColonNumericException = true

	result, err := orchestrator.Process(nil, source, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, string(golden), string(result.Output))
}

// TestGoldenCommaNormalizationOutsideStrings is scenario (e): commas inside
// a string literal are left alone; a comma outside one is followed by
// exactly one space (already the case in this fixture, so nothing changes).
func TestGoldenCommaNormalizationOutsideStrings(t *testing.T) {
	source, golden := readFixture(t, "comma_outside_strings")

	result, err := orchestrator.Process(nil, source, config.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, string(golden), string(result.Output))
}
