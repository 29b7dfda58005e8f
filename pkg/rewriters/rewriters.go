// Package rewriters implements the formatter's section rewriters (SPEC_FULL
// §4.5): small, focused rewriters each scoped to one node kind, producing at
// most one Edit per occurrence.
package rewriters

import (
	"strings"

	"github.com/tuncb/dfixxer/pkg/config"
	"github.com/tuncb/dfixxer/pkg/diagnostics"
	"github.com/tuncb/dfixxer/pkg/edit"
	"github.com/tuncb/dfixxer/pkg/syntax"
)

var sectionKeywords = map[string]bool{
	"interface": true, "implementation": true, "initialization": true,
	"finalization": true, "private": true, "public": true, "protected": true,
	"published": true, "var": true, "const": true, "type": true,
	"begin": true, "end": true,
}

// UnitProgramHeader normalizes internal whitespace of a `unit X;` /
// `program X;` header. It does not reposition the header within the file:
// the edit model is a flat set of non-overlapping byte-range replacements,
// and relocating a node to the top of the document is a whole-file
// reordering concern no single-node rewriter can express.
func UnitProgramHeader(node syntax.Node, source []byte) (edit.Edit, bool) {
	if node.HasError() {
		return edit.Edit{}, false
	}
	text := string(syntax.Text(node, source))
	body := strings.TrimSuffix(strings.TrimSpace(text), ";")
	fields := strings.Fields(body)
	if len(fields) != 2 {
		return edit.Edit{}, false
	}
	keyword := strings.ToLower(fields[0])
	if keyword != "unit" && keyword != "program" {
		return edit.Edit{}, false
	}
	rewritten := fields[0] + " " + fields[1] + ";"
	if rewritten == text {
		return edit.Edit{}, false
	}
	return edit.NewReplacement(node.StartByte(), node.EndByte(), rewritten, false), true
}

// KeywordSection ensures a section-start keyword appears at the start of
// its own line, moving any code that followed it on the same source line
// down to the next line.
func KeywordSection(node syntax.Node, source []byte, lineEnding string) (edit.Edit, bool) {
	if node.HasError() {
		return edit.Edit{}, false
	}
	text := string(syntax.Text(node, source))
	leading := len(text) - len(strings.TrimLeft(text, " \t"))
	trimmed := text[leading:]

	i := 0
	for i < len(trimmed) && isIdentChar(trimmed[i]) {
		i++
	}
	if i == 0 || !sectionKeywords[strings.ToLower(trimmed[:i])] {
		return edit.Edit{}, false
	}
	keyword := trimmed[:i]
	rest := strings.TrimLeft(trimmed[i:], " \t")
	if rest == "" {
		return edit.Edit{}, false
	}

	nl := resolveNewline(lineEnding)
	rewritten := keyword + nl + rest
	if rewritten == text {
		return edit.Edit{}, false
	}
	return edit.NewReplacement(node.StartByte(), node.EndByte(), rewritten, false), true
}

// ProcedureSignature inserts an empty parameter list on a parameterless
// `procedure Name;` / `function Name: T;` declaration whose name is not
// already followed by `(`. Declarations are the only node kind this
// rewriter is dispatched against, so a bare `inherited;` call statement
// (which looks superficially similar but is never a procedureDecl or
// functionDecl node) is never touched by this rule.
func ProcedureSignature(node syntax.Node, source []byte) (edit.Edit, bool) {
	if node.HasError() {
		return edit.Edit{}, false
	}
	text := string(syntax.Text(node, source))
	nameEnd, ok := declarationNameEnd(text)
	if !ok {
		return edit.Edit{}, false
	}
	rest := text[nameEnd:]
	if strings.HasPrefix(strings.TrimLeft(rest, " \t"), "(") {
		return edit.Edit{}, false
	}
	rewritten := text[:nameEnd] + "()" + rest
	return edit.NewReplacement(node.StartByte(), node.EndByte(), rewritten, false), true
}

// declarationNameEnd finds the byte offset just past the declared name in a
// `procedure Name` / `function Name` header.
func declarationNameEnd(text string) (int, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return 0, false
	}
	keyword := strings.ToLower(fields[0])
	if keyword != "procedure" && keyword != "function" {
		return 0, false
	}
	nameStart := strings.Index(text, fields[1])
	if nameStart < 0 {
		return 0, false
	}
	i := nameStart
	for i < len(text) && isIdentChar(text[i]) {
		i++
	}
	return i, true
}

func isIdentChar(b byte) bool {
	return b == '_' || b == '.' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func resolveNewline(lineEnding string) string {
	if lineEnding == "crlf" {
		return "\r\n"
	}
	return "\n"
}

// Dispatch walks root and runs every enabled section rewriter, collecting
// their edits. A node recognized by kind but sitting in a parser error
// state yields a ParseErrorInSection warning instead of an edit; a node
// whose shape a rewriter declines to handle (declarationNameEnd fails, a
// header that is not `unit X;`/`program X;`, etc.) produces no edit and no warning —
// the range is left as an identity edit, still subject to spacing.
func Dispatch(root syntax.Node, source []byte, t config.Transformations, lineEnding string) ([]edit.Edit, []diagnostics.Warning) {
	var edits []edit.Edit
	var warnings []diagnostics.Warning

	syntax.Walk(root, func(n syntax.Node) bool {
		switch n.Kind() {
		case syntax.KindUnitHeader, syntax.KindProgramHeader:
			if !t.UnitProgram {
				return true
			}
			dispatchOne(n, source, &edits, &warnings, func(n syntax.Node) (edit.Edit, bool) {
				return UnitProgramHeader(n, source)
			})
			return false
		case syntax.KindKeywordSection:
			if !t.SingleKeywordSections {
				return true
			}
			dispatchOne(n, source, &edits, &warnings, func(n syntax.Node) (edit.Edit, bool) {
				return KeywordSection(n, source, lineEnding)
			})
			return false
		case syntax.KindProcedureDecl, syntax.KindFunctionDecl:
			if !t.ProcedureSection {
				return true
			}
			dispatchOne(n, source, &edits, &warnings, func(n syntax.Node) (edit.Edit, bool) {
				return ProcedureSignature(n, source)
			})
			return false
		}
		return true
	})

	return edits, warnings
}

func dispatchOne(n syntax.Node, source []byte, edits *[]edit.Edit, warnings *[]diagnostics.Warning, rewrite func(syntax.Node) (edit.Edit, bool)) {
	if n.HasError() {
		*warnings = append(*warnings, diagnostics.Warning{
			Start: n.StartByte(), End: n.EndByte(),
			Reason: diagnostics.ParseErrorInSection,
			Detail: "section contains a parse error",
		})
		return
	}
	e, ok := rewrite(n)
	if !ok {
		return
	}
	*edits = append(*edits, e)
}
