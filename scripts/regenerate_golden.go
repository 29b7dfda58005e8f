// Command regenerate_golden rewrites a tests/golden/*.golden fixture from
// its *.pas input by running only the text spacing transformer (SPEC_FULL
// §4.3) over the whole file with an empty SpacingContext.
//
// It intentionally cannot regenerate fixtures whose expected output depends
// on the uses-section reformatter, a section rewriter, or AST-derived hints
// (generic brackets, unary signs): those need a syntax tree, and no
// concrete Pascal tree-sitter grammar is vendored in this module (SPEC_FULL
// §1 treats it as an external collaborator). For those fixtures, edit the
// .golden file by hand against the scenario description it implements.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tuncb/dfixxer/pkg/config"
	"github.com/tuncb/dfixxer/pkg/spacing"
	"github.com/tuncb/dfixxer/pkg/syntax"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: regenerate_golden <file.pas>")
		os.Exit(1)
	}

	pasFile := os.Args[1]
	source, err := os.ReadFile(pasFile)
	if err != nil {
		fmt.Printf("failed to read %s: %v\n", pasFile, err)
		os.Exit(1)
	}

	opts := config.DefaultConfig()
	ctx := syntax.Collect(nil, source)
	rewritten := spacing.Transform(source, 0, ctx, opts.TextChanges)

	base := strings.TrimSuffix(filepath.Base(pasFile), ".pas")
	goldenFile := filepath.Join(filepath.Dir(pasFile), base+".golden")

	if err := os.WriteFile(goldenFile, []byte(rewritten), 0o644); err != nil {
		fmt.Printf("failed to write %s: %v\n", goldenFile, err)
		os.Exit(1)
	}

	fmt.Printf("regenerated %s (text-spacing pass only; review by hand if the fixture depends on a section rewriter)\n", goldenFile)
}
