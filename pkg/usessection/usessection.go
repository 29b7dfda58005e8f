// Package usessection implements the uses-section reformatter (SPEC_FULL
// §4.4): extraction of unit references from a `uses` node, namespace
// qualification, priority sorting, and comma-style layout.
package usessection

import (
	"sort"
	"strings"

	"github.com/tuncb/dfixxer/pkg/config"
	"github.com/tuncb/dfixxer/pkg/diagnostics"
	"github.com/tuncb/dfixxer/pkg/edit"
	"github.com/tuncb/dfixxer/pkg/syntax"
)

// unitNode is the minimal grammar shape the reformatter needs for each
// child of a uses node: a dotted name token plus an optional trailing
// same-line comment.
type unitNode struct {
	name    string
	comment string
}

// Reformat rewrites node (expected to be of kind syntax.KindUses) according
// to opts. It returns the produced edit, or ok=false with a warning when the
// section must be skipped (SPEC_FULL §4.4, "Preconditions").
func Reformat(node syntax.Node, source []byte, opts config.UsesSectionOptions, indent string, lineEnding string) (edit.Edit, *diagnostics.Warning, bool) {
	if node.HasError() || (node.Parent() != nil && node.Parent().HasError()) {
		return edit.Edit{}, &diagnostics.Warning{
			Start: node.StartByte(), End: node.EndByte(),
			Reason: diagnostics.ParseErrorInSection,
			Detail: "uses section contains a parse error",
		}, false
	}

	units, ok := extractUnits(node, source)
	if !ok {
		return edit.Edit{}, &diagnostics.Warning{
			Start: node.StartByte(), End: node.EndByte(),
			Reason: diagnostics.UnsupportedConstruct,
			Detail: "uses section has interleaved directives or comments",
		}, false
	}

	for i := range units {
		units[i].name = qualify(units[i].name, opts.NameRewrites)
	}

	sortUnits(units, opts.PriorityPrefixes)

	text := layout(units, opts.Style, indent, lineEnding)
	return edit.NewReplacement(node.StartByte(), node.EndByte(), text, false), nil, true
}

// extractUnits walks the direct children of a uses node and collects one
// unitNode per dotted unit name token. The grammar is expected to present
// each unit as a single "unitName" token (SPEC_FULL §4.4, "collect each
// dotted unit name as a single logical token"); a "lineComment" child
// attaches to the most recently seen unit as its trailing comment. It
// reports ok=false if it encounters a preprocessor directive, or a comment
// with no preceding unit to attach to, or any other unrecognized
// structural child.
func extractUnits(node syntax.Node, source []byte) ([]unitNode, bool) {
	var units []unitNode

	for i := 0; i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "uses", ",", ";":
			continue
		case "unitName":
			units = append(units, unitNode{name: strings.TrimSpace(string(syntax.Text(child, source)))})
		case "lineComment":
			if len(units) == 0 {
				return nil, false
			}
			units[len(units)-1].comment = strings.TrimSpace(string(syntax.Text(child, source)))
		case "directive", "blockComment":
			return nil, false
		default:
			if child.ChildCount() > 0 {
				return nil, false
			}
		}
	}

	if len(units) == 0 {
		return nil, false
	}
	return units, true
}

// qualify prepends the configured prefix to name when name has no dots of
// its own and matches a name_rewrites key (SPEC_FULL §4.4, "Unit
// extraction").
func qualify(name string, rewrites map[string]string) string {
	if rewrites == nil || strings.Contains(name, ".") {
		return name
	}
	if prefix, ok := rewrites[name]; ok {
		return prefix + "." + name
	}
	return name
}

// priorityIndex returns the index into prefixes of the first prefix that
// canonicalName equals or begins with ("prefix."), or -1 if none match.
func priorityIndex(canonicalName string, prefixes []string) int {
	for i, p := range prefixes {
		if canonicalName == p || strings.HasPrefix(canonicalName, p+".") {
			return i
		}
	}
	return -1
}

// sortUnits orders units by case-insensitive canonical name, stably,
// breaking ties between names equal up to case by priority_index (lower
// first, "none" last).
//
// The primary key is the canonical name rather than priority_index: a
// worked example in the original specification sorts
// {System.Classes, UnitA, UnitC, Vcl.Forms} with priority_prefixes
// ["System", "Vcl"] straight alphabetically (Vcl.Forms sorts after UnitC
// despite Vcl being prefix index 1, which would precede the "none"-priority
// UnitA/UnitC under a priority-primary sort). Treating priority_index as a
// tie-breaker rather than a grouping key is the only reading consistent
// with that example; see DESIGN.md.
func sortUnits(units []unitNode, prefixes []string) {
	sort.SliceStable(units, func(i, j int) bool {
		ni, nj := strings.ToLower(units[i].name), strings.ToLower(units[j].name)
		if ni != nj {
			return ni < nj
		}
		pi, pj := priorityIndex(units[i].name, prefixes), priorityIndex(units[j].name, prefixes)
		if pi == -1 {
			pi = len(prefixes)
		}
		if pj == -1 {
			pj = len(prefixes)
		}
		return pi < pj
	})
}

func newline(lineEnding string) string {
	switch lineEnding {
	case "crlf":
		return "\r\n"
	case "lf":
		return "\n"
	default:
		return "\n"
	}
}

// layout renders the sorted unit list as a multi-line `uses` section
// (SPEC_FULL §4.4, "Layout").
func layout(units []unitNode, style config.UsesStyle, indent string, lineEnding string) string {
	nl := newline(lineEnding)
	lines := []string{"uses"}

	if len(units) == 0 {
		return "uses;"
	}

	switch style {
	case config.CommaAtBeginning:
		continuationPrefix := ", "
		if len(indent) > 2 {
			continuationPrefix = indent[:len(indent)-2] + ", "
		}
		for i, u := range units {
			prefix := indent
			if i > 0 {
				prefix = continuationPrefix
			}
			line := prefix + u.name
			if u.comment != "" {
				line += " " + u.comment
			}
			lines = append(lines, line)
		}
		lines = append(lines, ";")
	default: // CommaAtEnd
		for i, u := range units {
			line := indent + u.name
			if i == len(units)-1 {
				line += ";"
			} else {
				line += ","
			}
			if u.comment != "" {
				line += " " + u.comment
			}
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, nl)
}
