// Package diagnostics renders rustc-style warnings and errors for the
// formatter: a header line, a source snippet with a few lines of context,
// and a caret span under the offending range.
//
// Unlike a compiler front end, the core never holds a token.FileSet or a
// file path — everything it sees is a byte offset into one file's source
// already in memory. Diagnostics are computed straight from that offset and
// that source slice, once per file, with nothing cached between files: the
// formatter's concurrency model forbids shared state across files.
package diagnostics

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Reason classifies why a range produced a warning instead of an edit.
type Reason string

const (
	ParseErrorInSection  Reason = "ParseErrorInSection"
	UnsupportedConstruct Reason = "UnsupportedConstruct"
	RewriterDeclined     Reason = "RewriterDeclined"
)

// Warning is a single recoverable diagnostic produced while processing one
// file (SPEC_FULL §6, "warnings is a sequence of {range, reason} items").
type Warning struct {
	Start  int
	End    int
	Reason Reason
	Detail string
}

// Diagnostic is the rendered, human-facing form of a Warning or a fatal
// error, with a source snippet resolved against the file's bytes.
type Diagnostic struct {
	Filename string
	Line     int // 1-indexed
	Column   int // 1-indexed
	Length   int

	SourceLines   []string
	HighlightLine int // index into SourceLines

	Message    string
	Annotation string
}

// New builds a Diagnostic for a byte range within source, resolving
// line/column from the offset directly rather than from a cached file read.
func New(filename string, source []byte, start, end int, message string) *Diagnostic {
	line, col := lineCol(source, start)
	length := 1
	if end > start {
		length = utf8.RuneCount(source[start:end])
	}

	sourceLines, highlight := extractLines(source, line, 2)

	return &Diagnostic{
		Filename:      filename,
		Line:          line,
		Column:        col,
		Length:        length,
		SourceLines:   sourceLines,
		HighlightLine: highlight,
		Message:       message,
	}
}

// FromWarning builds a Diagnostic from a core Warning.
func FromWarning(filename string, source []byte, w Warning) *Diagnostic {
	d := New(filename, source, w.Start, w.End, string(w.Reason))
	d.Annotation = w.Detail
	return d
}

// WithAnnotation sets the text printed after the caret span.
func (d *Diagnostic) WithAnnotation(annotation string) *Diagnostic {
	d.Annotation = annotation
	return d
}

// Format renders the diagnostic the way the CLI prints it to the user.
func (d *Diagnostic) Format() string {
	var buf strings.Builder

	if d.Line > 0 {
		fmt.Fprintf(&buf, "%s at %s:%d:%d\n\n", d.Message, d.Filename, d.Line, d.Column)
	} else {
		fmt.Fprintf(&buf, "%s\n\n", d.Message)
	}

	if len(d.SourceLines) > 0 && d.Line > 0 {
		startLine := d.Line - d.HighlightLine

		for i, line := range d.SourceLines {
			lineNum := startLine + i
			fmt.Fprintf(&buf, "  %4d | %s\n", lineNum, line)

			if i == d.HighlightLine {
				caretIndent := utf8.RuneCountInString(line[:min(d.Column-1, len(line))])
				caretLen := d.Length
				if caretLen < 1 {
					caretLen = 1
				}
				fmt.Fprintf(&buf, "       | %s%s", strings.Repeat(" ", caretIndent), strings.Repeat("^", caretLen))
				if d.Annotation != "" {
					fmt.Fprintf(&buf, " %s", d.Annotation)
				}
				buf.WriteString("\n")
			}
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

func (d *Diagnostic) Error() string { return d.Format() }

// lineCol computes the 1-indexed line and column of a byte offset.
func lineCol(source []byte, offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	line = 1
	lastNewline := -1
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	col = utf8.RuneCount(source[lastNewline+1:offset]) + 1
	return line, col
}

// extractLines returns up to contextLines lines of context before and after
// targetLine (1-indexed), plus the index of targetLine within the slice.
func extractLines(source []byte, targetLine, contextLines int) ([]string, int) {
	normalized := strings.ReplaceAll(string(source), "\r\n", "\n")
	allLines := strings.Split(normalized, "\n")
	if len(allLines) > 0 && allLines[len(allLines)-1] == "" {
		allLines = allLines[:len(allLines)-1]
	}

	targetIdx := targetLine - 1
	if targetIdx < 0 || targetIdx >= len(allLines) {
		return nil, 0
	}

	start := max(0, targetIdx-contextLines)
	end := min(len(allLines), targetIdx+contextLines+1)

	return allLines[start:end], targetIdx - start
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
