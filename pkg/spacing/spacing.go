// Package spacing implements the text spacing transformer (SPEC_FULL §4.3):
// a single-pass scan that normalizes horizontal whitespace around operators
// and punctuation in code, while leaving string and comment interiors
// untouched. Code and string contents alternate as a genuine two-state
// machine (a `'` flips the state); a comment marker instead makes stepCode
// consume the whole comment body in one step and render it through
// renderBraceComment/renderParenStarComment/renderLineComment, so there is
// no separate per-character comment state to dispatch through.
package spacing

import (
	"strings"

	"github.com/tuncb/dfixxer/pkg/config"
	"github.com/tuncb/dfixxer/pkg/syntax"
)

type state int

const (
	stateCode state = iota
	stateString
)

// token is a classified run of one or more characters in the code state.
type token struct {
	text  string
	start int // absolute offset into the original slice passed to Transform
}

// Transform rewrites slice (a byte range of the original source, starting
// at baseOffset within it) according to opts, consulting ctx for positions
// that the lexer alone cannot classify. It returns the rewritten text.
func Transform(slice []byte, baseOffset int, ctx *syntax.SpacingContext, opts config.TextChanges) string {
	t := &transformer{
		src:    slice,
		base:   baseOffset,
		ctx:    ctx,
		opts:   opts,
		out:    make([]byte, 0, len(slice)+16),
		state:  stateCode,
	}
	t.run()
	result := string(t.out)
	if opts.TrimTrailingWhitespace {
		result = trimTrailingWhitespacePerLine(result)
	}
	return result
}

type transformer struct {
	src   []byte
	base  int
	ctx   *syntax.SpacingContext
	opts  config.TextChanges
	out   []byte
	pos   int
	state state
}

func (t *transformer) run() {
	for t.pos < len(t.src) {
		switch t.state {
		case stateCode:
			t.stepCode()
		case stateString:
			t.stepString()
		}
	}
}

func (t *transformer) stepCode() {
	c := t.src[t.pos]

	switch {
	case c == '\'':
		t.out = append(t.out, c)
		t.pos++
		t.state = stateString
		return
	case c == '{':
		t.enterBraceComment()
		return
	case c == '(' && t.peek(1) == '*':
		t.enterParenStarComment()
		return
	case c == '/' && t.peek(1) == '/':
		t.enterLineComment()
		return
	}

	if tok, ok := t.matchOperator(); ok {
		t.emitOperator(tok)
		return
	}

	t.out = append(t.out, c)
	t.pos++
}

func (t *transformer) peek(offset int) byte {
	if t.pos+offset >= len(t.src) {
		return 0
	}
	return t.src[t.pos+offset]
}

func (t *transformer) stepString() {
	c := t.src[t.pos]
	t.out = append(t.out, c)
	t.pos++
	if c == '\'' {
		// Pascal escapes a literal quote as '', so a quote followed by
		// another quote stays inside the string.
		if t.pos < len(t.src) && t.src[t.pos] == '\'' {
			t.out = append(t.out, '\'')
			t.pos++
			return
		}
		t.state = stateCode
	}
}

func (t *transformer) enterBraceComment() {
	start := t.pos
	end := findByte(t.src, start, '}')
	if end < 0 {
		end = len(t.src)
	} else {
		end++
	}
	body := t.src[start:end]
	t.out = append(t.out, renderBraceComment(body, t.opts)...)
	t.pos = end
}

func (t *transformer) enterParenStarComment() {
	start := t.pos
	end := findSubstring(t.src, start, "*)")
	if end < 0 {
		end = len(t.src)
	} else {
		end += 2
	}
	body := t.src[start:end]
	t.out = append(t.out, renderParenStarComment(body, t.opts)...)
	t.pos = end
}

func (t *transformer) enterLineComment() {
	start := t.pos
	end := findByte(t.src, start, '\n')
	if end < 0 {
		end = len(t.src)
	}
	body := t.src[start:end]
	t.out = append(t.out, renderLineComment(body, t.opts)...)
	t.pos = end
}

func findByte(src []byte, from int, b byte) int {
	for i := from; i < len(src); i++ {
		if src[i] == b {
			return i
		}
	}
	return -1
}

func findSubstring(src []byte, from int, sub string) int {
	idx := strings.Index(string(src[from:]), sub)
	if idx < 0 {
		return -1
	}
	return from + idx
}

func trimTrailingWhitespacePerLine(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		cr := ""
		if strings.HasSuffix(line, "\r") {
			cr = "\r"
			line = line[:len(line)-1]
		}
		lines[i] = strings.TrimRight(line, " \t") + cr
	}
	return strings.Join(lines, "\n")
}
