// Package diffrender renders the unified diff the update/check commands
// print with --diff (spec §1, "preview a unified diff"), using the same
// github.com/pmezard/go-difflib library the teacher pulls in transitively
// via testify.
package diffrender

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Unified renders a unified diff between before and after, labeled with
// path on both sides (the file is rewritten in place, not renamed).
func Unified(path string, before, after []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path,
		ToFile:   path,
		FromDate: "",
		ToDate:   "",
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diffrender: %w", err)
	}
	return text, nil
}
