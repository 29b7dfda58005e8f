// Package edit implements the formatter's edit model and merge engine
// (SPEC_FULL §4.1): a byte-range replacement record and the algorithm that
// composes a set of them with the original source into a single output.
package edit

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"go.uber.org/multierr"
)

// Edit is a single byte-range replacement. Text is nil for an identity
// edit: a range whose content has not (yet) been rewritten by a section
// rewriter, but which may still be rewritten by the spacing pass before
// merge.
type Edit struct {
	Start   int
	End     int
	Text    *string
	IsFinal bool
}

// NewIdentity returns an edit covering [start,end) with no replacement text.
func NewIdentity(start, end int) Edit {
	return Edit{Start: start, End: end}
}

// NewReplacement returns an edit covering [start,end) that replaces the
// range with text.
func NewReplacement(start, end int, text string, final bool) Edit {
	return Edit{Start: start, End: end, Text: &text, IsFinal: final}
}

// WithText returns a copy of e with its replacement text set. It panics if
// called on a final edit; callers (the spacing pass) must check IsFinal
// first.
func (e Edit) WithText(text string) Edit {
	if e.IsFinal {
		panic("edit: cannot mutate text of a final edit")
	}
	e.Text = &text
	return e
}

// Replaced reports whether the edit differs from the original source slice
// it covers — used to compute the core's replacement_count without double
// counting gaps that the spacing pass left untouched.
func (e Edit) Replaced(source []byte) bool {
	if e.Text == nil {
		return false
	}
	return *e.Text != string(source[e.Start:e.End])
}

// ErrOverlappingEdits is returned by Validate when two edits' ranges
// intersect.
type ErrOverlappingEdits struct {
	A, B Edit
}

func (e ErrOverlappingEdits) Error() string {
	return fmt.Sprintf("overlapping edits: [%d,%d) and [%d,%d)", e.A.Start, e.A.End, e.B.Start, e.B.End)
}

// ErrBoundaryMisaligned is returned by Validate when an edit's boundary is
// not on a UTF-8 rune boundary of the source.
type ErrBoundaryMisaligned struct {
	Offset int
}

func (e ErrBoundaryMisaligned) Error() string {
	return fmt.Sprintf("edit boundary %d is not on a UTF-8 character boundary", e.Offset)
}

// Validate checks that edits are pairwise non-overlapping and that every
// boundary lies on a UTF-8 character boundary of source. It collects every
// violation found rather than stopping at the first.
func Validate(source []byte, edits []Edit) error {
	var errs []error

	for _, e := range edits {
		if e.Start < 0 || e.End > len(source) || e.Start > e.End {
			errs = append(errs, fmt.Errorf("edit range [%d,%d) out of bounds for source of length %d", e.Start, e.End, len(source)))
			continue
		}
		if !utf8.RuneStart(byteAt(source, e.Start)) {
			errs = append(errs, ErrBoundaryMisaligned{Offset: e.Start})
		}
		if e.End < len(source) && !utf8.RuneStart(byteAt(source, e.End)) {
			errs = append(errs, ErrBoundaryMisaligned{Offset: e.End})
		}
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			errs = append(errs, ErrOverlappingEdits{A: sorted[i-1], B: sorted[i]})
		}
	}

	return multierr.Combine(errs...)
}

func byteAt(source []byte, offset int) byte {
	if offset >= len(source) {
		return 0
	}
	return source[offset]
}

// Merge composes source and a set of non-overlapping, sorted-by-start edits
// into the final output. Regions not covered by any edit are copied
// verbatim. Merge assumes Validate has already succeeded; it does not
// re-check invariants.
func Merge(source []byte, edits []Edit) []byte {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var out []byte
	prevEnd := 0
	for _, e := range sorted {
		out = append(out, source[prevEnd:e.Start]...)
		if e.Text != nil {
			out = append(out, *e.Text...)
		} else {
			out = append(out, source[e.Start:e.End]...)
		}
		prevEnd = e.End
	}
	out = append(out, source[prevEnd:]...)
	return out
}

// ReplacementCount returns the number of edits whose final text differs
// from the original source slice they cover.
func ReplacementCount(source []byte, edits []Edit) int {
	n := 0
	for _, e := range edits {
		if e.Replaced(source) {
			n++
		}
	}
	return n
}

// Gaps computes the maximal byte intervals of [0,length) not covered by any
// edit in edits (SPEC_FULL §4.6, "gap ranges"). edits need not be sorted.
func Gaps(length int, edits []Edit) []Edit {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var gaps []Edit
	cursor := 0
	for _, e := range sorted {
		if e.Start > cursor {
			gaps = append(gaps, NewIdentity(cursor, e.Start))
		}
		if e.End > cursor {
			cursor = e.End
		}
	}
	if cursor < length {
		gaps = append(gaps, NewIdentity(cursor, length))
	}
	return gaps
}
