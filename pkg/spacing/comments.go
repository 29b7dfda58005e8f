package spacing

import (
	"strings"

	"github.com/tuncb/dfixxer/pkg/config"
)

// renderBraceComment pads the interior of a `{ ... }` comment with exactly
// one space on each side when opts.SpaceInsideBraceComments is set.
// Compiler directives (`{$...}`) are opaque and returned unchanged.
func renderBraceComment(body []byte, opts config.TextChanges) string {
	return renderDelimited(string(body), "{", "}", opts.SpaceInsideBraceComments)
}

// renderParenStarComment is the `(* ... *)` analog of renderBraceComment.
func renderParenStarComment(body []byte, opts config.TextChanges) string {
	return renderDelimited(string(body), "(*", "*)", opts.SpaceInsideParenStarComments)
}

// renderLineComment ensures exactly one space after the leading `//` (or
// `///`, `////`, ...) run when opts.SpaceAfterLineCommentSlashes is set.
func renderLineComment(body []byte, opts config.TextChanges) string {
	s := string(body)
	if !opts.SpaceAfterLineCommentSlashes {
		return s
	}
	i := 0
	for i < len(s) && s[i] == '/' {
		i++
	}
	marker := s[:i]
	rest := s[i:]
	trimmed := strings.TrimLeft(rest, " \t")
	if trimmed == "" {
		return marker
	}
	return marker + " " + trimmed
}

func renderDelimited(s, open, close string, pad bool) string {
	if !pad {
		return s
	}
	if !strings.HasPrefix(s, open) {
		return s
	}
	inner := s[len(open):]
	closed := strings.HasSuffix(inner, close)
	if closed {
		inner = inner[:len(inner)-len(close)]
	}
	if strings.HasPrefix(strings.TrimLeft(inner, " \t\r\n"), "$") {
		return s // compiler directive, left opaque
	}
	trimmed := strings.TrimSpace(inner)
	var rendered string
	if trimmed == "" {
		rendered = open + close
	} else if closed {
		rendered = open + " " + trimmed + " " + close
	} else {
		rendered = open + " " + trimmed
	}
	return rendered
}
