package syntax

import "sort"

// SpacingContext is the read-only bundle of position-indexed hints the text
// spacing transformer consults to disambiguate tokens that the lexer alone
// cannot classify (SPEC_FULL §3, "SpacingContext").
type SpacingContext struct {
	GenericAnglePositions     map[int]bool
	UnarySignPositions        map[int]bool
	ExponentSignPositions     map[int]bool
	BinaryOperatorPositions   map[int]bool
	AssignmentPositions       map[int]bool
	DeclarationEqualsPositions map[int]bool

	// ErrorRanges is ordered and merged: adjacent/overlapping error spans
	// are coalesced into one range.
	ErrorRanges []Range
}

// Range is a half-open byte interval [Start, End).
type Range struct {
	Start, End int
}

func newContext() *SpacingContext {
	return &SpacingContext{
		GenericAnglePositions:      map[int]bool{},
		UnarySignPositions:         map[int]bool{},
		ExponentSignPositions:      map[int]bool{},
		BinaryOperatorPositions:    map[int]bool{},
		AssignmentPositions:        map[int]bool{},
		DeclarationEqualsPositions: map[int]bool{},
	}
}

// InErrorRange reports whether offset falls within any recorded error
// range — the signal the spacing transformer uses to downgrade its
// confidence in AST hints (SPEC_FULL §4.2, "Confidence").
func (c *SpacingContext) InErrorRange(offset int) bool {
	for _, r := range c.ErrorRanges {
		if offset >= r.Start && offset < r.End {
			return true
		}
	}
	return false
}

// Collect walks root once and produces the SpacingContext (SPEC_FULL §4.2).
// source is used only for the lexical exponent-sign scan, which is not
// tree-derived.
func Collect(root Node, source []byte) *SpacingContext {
	ctx := newContext()
	if root == nil {
		return ctx
	}

	var errorRanges []Range

	Walk(root, func(n Node) bool {
		switch n.Kind() {
		case KindGenericTpl, KindTyperefTpl, KindExprTpl:
			addBracketPositions(ctx, n)
		case KindExprUnary:
			addSignPosition(ctx.UnarySignPositions, n)
		case KindExprBinary:
			addOperatorPosition(ctx.BinaryOperatorPositions, n)
		case KindAssignment:
			addOperatorPosition(ctx.AssignmentPositions, n)
		case KindDefaultValue, KindDeclType, KindConstDecl, KindTypeDecl:
			addEqualsPositions(ctx.DeclarationEqualsPositions, n)
		}

		if n.IsError() {
			errorRanges = append(errorRanges, Range{Start: n.StartByte(), End: n.EndByte()})
		}
		return true
	})

	ctx.ErrorRanges = mergeRanges(errorRanges)
	collectExponentSigns(ctx, source)

	return ctx
}

// addBracketPositions records the offsets of the opening '<' and closing
// '>' direct-child tokens of a generic/template node.
func addBracketPositions(ctx *SpacingContext, n Node) {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		text := child.Kind()
		if text == "<" {
			ctx.GenericAnglePositions[child.StartByte()] = true
		}
		if text == ">" {
			ctx.GenericAnglePositions[child.StartByte()] = true
		}
	}
}

func addSignPosition(set map[int]bool, n Node) {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() == "+" || child.Kind() == "-" {
			set[child.StartByte()] = true
			return
		}
	}
}

func addOperatorPosition(set map[int]bool, n Node) {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if isOperatorToken(child.Kind()) {
			set[child.StartByte()] = true
		}
	}
}

func addEqualsPositions(set map[int]bool, n Node) {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.Kind() == "=" {
			set[child.StartByte()] = true
		}
	}
}

func isOperatorToken(kind string) bool {
	switch kind {
	case "+", "-", "*", "/", ":=", "+=", "-=", "*=", "/=",
		"<", ">", "<=", ">=", "<>", "=", "and", "or", "xor", "div", "mod":
		return true
	default:
		return false
	}
}

func mergeRanges(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })

	merged := []Range{ranges[0]}
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// collectExponentSigns scans source lexically for `[eE][+-]` inside numeric
// literals. This is deliberately not tree-derived: the sign character of a
// floating point exponent is effectively always unambiguous at the lexical
// level, and doing it this way keeps the AST-hint collector focused on
// genuinely structural ambiguity.
func collectExponentSigns(ctx *SpacingContext, source []byte) {
	for i := 0; i+1 < len(source); i++ {
		c := source[i]
		if c != 'e' && c != 'E' {
			continue
		}
		if i == 0 || !isDigit(source[i-1]) {
			continue
		}
		next := source[i+1]
		if next != '+' && next != '-' {
			continue
		}
		if i+2 >= len(source) || !isDigit(source[i+2]) {
			continue
		}
		ctx.ExponentSignPositions[i+1] = true
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
