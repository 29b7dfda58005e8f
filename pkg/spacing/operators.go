package spacing

import (
	"github.com/tuncb/dfixxer/pkg/config"
)

// operatorSpec pairs a token's literal text with the TextChanges field that
// governs its spacing.
type operatorSpec struct {
	text string
	get  func(config.TextChanges) config.SpaceOperation
}

// multiCharOperators is checked before single-character ones so that e.g.
// `:=` is recognized atomically and `:` is never re-examined on its own
// (SPEC_FULL §4.3, "Multi-character operators").
var multiCharOperators = []operatorSpec{
	{":=", func(o config.TextChanges) config.SpaceOperation { return o.Assign }},
	{"+=", func(o config.TextChanges) config.SpaceOperation { return o.Assign }},
	{"-=", func(o config.TextChanges) config.SpaceOperation { return o.Assign }},
	{"*=", func(o config.TextChanges) config.SpaceOperation { return o.Assign }},
	{"/=", func(o config.TextChanges) config.SpaceOperation { return o.Assign }},
	{"<=", func(o config.TextChanges) config.SpaceOperation { return o.Le }},
	{">=", func(o config.TextChanges) config.SpaceOperation { return o.Ge }},
	{"<>", func(o config.TextChanges) config.SpaceOperation { return o.Ne }},
}

var singleCharOperators = []operatorSpec{
	{",", func(o config.TextChanges) config.SpaceOperation { return o.Comma }},
	{";", func(o config.TextChanges) config.SpaceOperation { return o.Semi }},
	{":", func(o config.TextChanges) config.SpaceOperation { return o.Colon }},
	{"=", func(o config.TextChanges) config.SpaceOperation { return o.Eq }},
	{"+", func(o config.TextChanges) config.SpaceOperation { return o.Add }},
	{"-", func(o config.TextChanges) config.SpaceOperation { return o.Sub }},
	{"*", func(o config.TextChanges) config.SpaceOperation { return o.Mul }},
	{"/", func(o config.TextChanges) config.SpaceOperation { return o.Div }},
	{"<", func(o config.TextChanges) config.SpaceOperation { return o.Lt }},
	{">", func(o config.TextChanges) config.SpaceOperation { return o.Gt }},
}

type matchedOperator struct {
	spec  operatorSpec
	start int // absolute offset
}

// matchOperator checks whether the transformer's current position begins a
// recognized operator token, preferring the longer multi-character forms.
func (t *transformer) matchOperator() (matchedOperator, bool) {
	for _, spec := range multiCharOperators {
		if hasPrefixAt(t.src, t.pos, spec.text) {
			return matchedOperator{spec: spec, start: t.base + t.pos}, true
		}
	}
	for _, spec := range singleCharOperators {
		if hasPrefixAt(t.src, t.pos, spec.text) {
			return matchedOperator{spec: spec, start: t.base + t.pos}, true
		}
	}
	return matchedOperator{}, false
}

func hasPrefixAt(src []byte, pos int, prefix string) bool {
	if pos+len(prefix) > len(src) {
		return false
	}
	return string(src[pos:pos+len(prefix)]) == prefix
}

// emitOperator applies precedence rules (SPEC_FULL §4.3) for the matched
// operator and advances the transformer past it.
func (t *transformer) emitOperator(m matchedOperator) {
	absStart := m.start
	textLen := len(m.spec.text)

	// Inside a parser error range AST hints are not trusted: the operator is
	// emitted with its surrounding whitespace exactly as in the source.
	if t.ctx != nil && t.ctx.InErrorRange(absStart) {
		t.out = append(t.out, m.spec.text...)
		t.pos += textLen
		return
	}

	// 1. Template/generic brackets override everything for '<' and '>'.
	if (m.spec.text == "<" || m.spec.text == ">") && t.ctx != nil && t.ctx.GenericAnglePositions[absStart] {
		t.trimSpaceBefore()
		t.out = append(t.out, m.spec.text...)
		t.pos += textLen
		t.suppressSpaceAfter()
		return
	}

	// 3. Unary / exponent signs: no space between sign and operand.
	if (m.spec.text == "+" || m.spec.text == "-") && t.ctx != nil &&
		(t.ctx.UnarySignPositions[absStart] || t.ctx.ExponentSignPositions[absStart]) {
		t.applySpacing(config.Before, m.spec.text)
		t.suppressSpaceAfter()
		return
	}

	// Colon-numeric exception: a lone ':' between two digits is left alone.
	if m.spec.text == ":" && t.opts.ColonNumericException && t.isDigitSurroundedColon() {
		t.out = append(t.out, ':')
		t.pos++
		return
	}

	// 4. Declaration '=' defaults to preserving original spacing unless the
	// caller explicitly configured a non-default operation.
	if m.spec.text == "=" && t.ctx != nil && t.ctx.DeclarationEqualsPositions[absStart] && t.opts.Eq == config.NoChange {
		t.out = append(t.out, '=')
		t.pos++
		return
	}

	op := m.spec.get(t.opts)
	t.applySpacing(op, m.spec.text)
}

// isDigitSurroundedColon reports whether the ':' at the current position
// sits in a Delphi write-format specifier (`expr:width:decimals`) or a
// plain numeric ratio (`1:10`): the character after it is always required
// to be a digit, and the character before it is either a digit itself or
// the closing ')' of the expression the specifier applies to. A ':' that
// participates in ':=' is never considered (matchOperator excludes it by
// trying the multi-character forms first).
func (t *transformer) isDigitSurroundedColon() bool {
	before := lastNonSpaceByte(t.out)
	after := t.peek(1)
	return (isDigit(before) || before == ')') && isDigit(after)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func lastNonSpaceByte(out []byte) byte {
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] != ' ' && out[i] != '\t' {
			return out[i]
		}
	}
	return 0
}

// applySpacing writes text to the output applying the SpaceOperation around
// it, then advances the cursor past the matched token in the source. A
// token directly adjacent to an identical character (e.g. the second '+'
// of "++") is never separated from it, matching a tight operator cluster.
func (t *transformer) applySpacing(op config.SpaceOperation, text string) {
	clusterBefore := lastNonSpaceByte(t.out) == text[0]
	clusterAfter := t.peekPastToken(len(text)) == text[len(text)-1]

	switch {
	case clusterBefore:
		// leave whatever separation already existed
	case op == config.Before || op == config.BeforeAndAfter:
		t.ensureSingleSpaceBefore()
	case op == config.NoChange:
		// leave existing whitespace before untouched
	default:
		t.trimSpaceBefore()
	}

	t.out = append(t.out, text...)
	t.pos += len(text)

	switch {
	case clusterAfter:
		// leave whatever separation already exists in the source
	case op == config.After || op == config.BeforeAndAfter:
		t.ensureSingleSpaceAfterCursor()
	case op == config.NoChange:
		// leave existing whitespace after untouched
	default:
		t.suppressSpaceAfter()
	}
}

// peekPastToken returns the next non-space/tab byte in the source starting
// tokenLen bytes past the current cursor (i.e. just past the token about to
// be emitted), without consuming it.
func (t *transformer) peekPastToken(tokenLen int) byte {
	i := t.pos + tokenLen
	for i < len(t.src) && (t.src[i] == ' ' || t.src[i] == '\t') {
		i++
	}
	if i >= len(t.src) {
		return 0
	}
	return t.src[i]
}

// trimSpaceBefore collapses any run of trailing spaces/tabs already written
// to out down to zero.
func (t *transformer) trimSpaceBefore() {
	end := len(t.out)
	start := end
	for start > 0 && (t.out[start-1] == ' ' || t.out[start-1] == '\t') {
		start--
	}
	t.out = t.out[:start]
}

// ensureSingleSpaceBefore collapses any run of trailing spaces/tabs to
// exactly one, unless out is empty or ends in a newline.
func (t *transformer) ensureSingleSpaceBefore() {
	if len(t.out) == 0 {
		return
	}
	if last := t.out[len(t.out)-1]; last == '\n' || last == '\r' {
		return
	}
	t.trimSpaceBefore()
	t.out = append(t.out, ' ')
}

// suppressSpaceAfter consumes and discards any run of spaces/tabs in the
// source immediately following the cursor.
func (t *transformer) suppressSpaceAfter() {
	for t.pos < len(t.src) && (t.src[t.pos] == ' ' || t.src[t.pos] == '\t') {
		t.pos++
	}
}

// ensureSingleSpaceAfterCursor consumes any run of spaces/tabs after the
// cursor and writes back exactly one, unless the next non-space character
// is end-of-input or a line break.
func (t *transformer) ensureSingleSpaceAfterCursor() {
	save := t.pos
	t.suppressSpaceAfter()
	if t.pos >= len(t.src) {
		return
	}
	if next := t.src[t.pos]; next == '\n' || next == '\r' {
		return
	}
	if save != t.pos || t.src[save] != t.src[t.pos] {
		t.out = append(t.out, ' ')
		return
	}
	t.out = append(t.out, ' ')
}
