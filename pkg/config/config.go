// Package config describes the formatter's tunable options.
//
// Options is pure data: it has no knowledge of files, globs, or TOML. The
// on-disk representation and discovery rules for it live in
// internal/configfile, which keeps this package usable by callers embedding
// the formatter as a library with options built entirely in code.
package config

import (
	"fmt"
	"runtime"

	"go.uber.org/multierr"
)

// UsesStyle controls the comma placement used when a uses section is
// reformatted onto multiple lines.
type UsesStyle string

const (
	CommaAtEnd       UsesStyle = "comma_at_end"
	CommaAtBeginning UsesStyle = "comma_at_beginning"
)

func (s UsesStyle) IsValid() bool {
	switch s {
	case CommaAtEnd, CommaAtBeginning:
		return true
	default:
		return false
	}
}

// LineEnding selects the newline sequence used for lines the formatter
// introduces. Untouched source lines always keep their original ending.
type LineEnding string

const (
	LineEndingAuto LineEnding = "auto"
	LineEndingCRLF LineEnding = "crlf"
	LineEndingLF   LineEnding = "lf"
)

func (e LineEnding) IsValid() bool {
	switch e {
	case LineEndingAuto, LineEndingCRLF, LineEndingLF:
		return true
	default:
		return false
	}
}

// Resolve returns the concrete newline sequence ("crlf" or "lf") to use for
// line breaks the formatter introduces. Auto resolves to the host
// platform's conventional ending (SPEC_FULL §6, "Line-ending policy").
func (e LineEnding) Resolve() string {
	switch e {
	case LineEndingCRLF:
		return "crlf"
	case LineEndingLF:
		return "lf"
	default:
		if runtime.GOOS == "windows" {
			return "crlf"
		}
		return "lf"
	}
}

// SpaceOperation is the whitespace policy applied around a single token.
type SpaceOperation string

const (
	NoChange       SpaceOperation = "no_change"
	Before         SpaceOperation = "before"
	After          SpaceOperation = "after"
	BeforeAndAfter SpaceOperation = "before_and_after"
)

func (o SpaceOperation) IsValid() bool {
	switch o {
	case NoChange, Before, After, BeforeAndAfter:
		return true
	default:
		return false
	}
}

// UsesSectionOptions configures the uses-section reformatter (SPEC_FULL §4.4).
type UsesSectionOptions struct {
	Style            UsesStyle         `toml:"style"`
	PriorityPrefixes []string          `toml:"priority_prefixes"`
	NameRewrites     map[string]string `toml:"name_rewrites"`
}

// Transformations is the set of per-rewriter enable flags.
type Transformations struct {
	UsesSection           bool `toml:"uses_section"`
	UnitProgram            bool `toml:"unit_program"`
	SingleKeywordSections bool `toml:"single_keyword_sections"`
	ProcedureSection      bool `toml:"procedure_section"`
	Text                   bool `toml:"text"`
}

// TextChanges configures the text spacing transformer (SPEC_FULL §4.3).
type TextChanges struct {
	Comma    SpaceOperation `toml:"comma"`
	Semi     SpaceOperation `toml:"semi"`
	Colon    SpaceOperation `toml:"colon"`
	Eq       SpaceOperation `toml:"eq"`
	Assign   SpaceOperation `toml:"assign"`
	Add      SpaceOperation `toml:"add"`
	Sub      SpaceOperation `toml:"sub"`
	Mul      SpaceOperation `toml:"mul"`
	Div      SpaceOperation `toml:"div"`
	Lt       SpaceOperation `toml:"lt"`
	Gt       SpaceOperation `toml:"gt"`
	Le       SpaceOperation `toml:"le"`
	Ge       SpaceOperation `toml:"ge"`
	Ne       SpaceOperation `toml:"ne"`

	ColonNumericException          bool `toml:"colon_numeric_exception"`
	SpaceInsideBraceComments        bool `toml:"space_inside_brace_comments"`
	SpaceInsideParenStarComments    bool `toml:"space_inside_paren_star_comments"`
	SpaceAfterLineCommentSlashes    bool `toml:"space_after_line_comment_slashes"`
	TrimTrailingWhitespace          bool `toml:"trim_trailing_whitespace"`
}

// Options is the full set of formatter knobs consumed by the orchestrator
// (SPEC_FULL §3, "Options").
type Options struct {
	Indentation string     `toml:"indentation"`
	LineEnding  LineEnding `toml:"line_ending"`

	UsesSection UsesSectionOptions `toml:"uses_section"`

	Transformations Transformations `toml:"transformations"`
	TextChanges     TextChanges     `toml:"text_changes"`

	// CustomConfigPatterns maps a glob pattern to an alternate config file
	// path; a file whose path matches a pattern here is loaded from that
	// path instead of the discovered dfixxer.toml (external collaborator
	// concern, carried here only because it is serialized alongside the
	// rest of the file).
	CustomConfigPatterns map[string]string `toml:"custom_config_patterns"`
}

// DefaultConfig returns the configuration used when no dfixxer.toml is
// found and no overrides are supplied.
func DefaultConfig() *Options {
	return &Options{
		Indentation: "  ",
		LineEnding:  LineEndingAuto,
		UsesSection: UsesSectionOptions{
			Style:            CommaAtEnd,
			PriorityPrefixes: []string{"System", "Vcl", "FMX"},
			NameRewrites:     map[string]string{},
		},
		Transformations: Transformations{
			UsesSection:           true,
			UnitProgram:            true,
			SingleKeywordSections: true,
			ProcedureSection:      true,
			Text:                   true,
		},
		TextChanges: TextChanges{
			Comma:  After,
			Semi:   After,
			Colon:  After,
			Eq:     NoChange,
			Assign: BeforeAndAfter,
			Add:    BeforeAndAfter,
			Sub:    BeforeAndAfter,
			Mul:    BeforeAndAfter,
			Div:    BeforeAndAfter,
			Lt:     BeforeAndAfter,
			Gt:     BeforeAndAfter,
			Le:     BeforeAndAfter,
			Ge:     BeforeAndAfter,
			Ne:     BeforeAndAfter,

			ColonNumericException:       true,
			SpaceInsideBraceComments:     true,
			SpaceInsideParenStarComments: true,
			SpaceAfterLineCommentSlashes: true,
			TrimTrailingWhitespace:       true,
		},
	}
}

// Validate reports whether the options are internally consistent. It
// collects every violation it finds rather than stopping at the first one,
// since a hand-edited dfixxer.toml commonly has more than one typo.
func (o *Options) Validate() error {
	var errs []error

	if !o.LineEnding.IsValid() {
		errs = append(errs, fmt.Errorf("invalid line_ending: %q (must be %q, %q, or %q)", o.LineEnding, LineEndingAuto, LineEndingCRLF, LineEndingLF))
	}
	if !o.UsesSection.Style.IsValid() {
		errs = append(errs, fmt.Errorf("invalid uses_section.style: %q (must be %q or %q)", o.UsesSection.Style, CommaAtEnd, CommaAtBeginning))
	}

	ops := map[string]SpaceOperation{
		"comma": o.TextChanges.Comma, "semi": o.TextChanges.Semi, "colon": o.TextChanges.Colon,
		"eq": o.TextChanges.Eq, "assign": o.TextChanges.Assign, "add": o.TextChanges.Add,
		"sub": o.TextChanges.Sub, "mul": o.TextChanges.Mul, "div": o.TextChanges.Div,
		"lt": o.TextChanges.Lt, "gt": o.TextChanges.Gt, "le": o.TextChanges.Le,
		"ge": o.TextChanges.Ge, "ne": o.TextChanges.Ne,
	}
	for name, op := range ops {
		if op != "" && !op.IsValid() {
			errs = append(errs, fmt.Errorf("invalid text_changes.%s: %q", name, op))
		}
	}

	return multierr.Combine(errs...)
}
