// Package orchestrator implements the formatter's top-level entrypoint
// (SPEC_FULL §4.6, §6): given a parsed syntax tree, the original bytes, and
// options, it runs the spacing context collector, dispatches the enabled
// section rewriters, computes the untouched gap ranges, feeds every
// non-final edit through the spacing transformer, and hands the result to
// the merge engine.
package orchestrator

import (
	"github.com/tuncb/dfixxer/pkg/config"
	"github.com/tuncb/dfixxer/pkg/diagnostics"
	"github.com/tuncb/dfixxer/pkg/edit"
	"github.com/tuncb/dfixxer/pkg/rewriters"
	"github.com/tuncb/dfixxer/pkg/spacing"
	"github.com/tuncb/dfixxer/pkg/syntax"
	"github.com/tuncb/dfixxer/pkg/usessection"

	"go.uber.org/zap"
)

// Result is the core's public return value (SPEC_FULL §6, "Core API").
type Result struct {
	Output           []byte
	ReplacementCount int
	Warnings         []diagnostics.Warning
}

// Process runs the full pipeline over one file's parsed tree and source
// bytes. logger may be nil, in which case a no-op logger is used — the
// orchestrator is usable as a library with no ambient logging configured.
func Process(root syntax.Node, source []byte, opts *config.Options, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts == nil {
		opts = config.DefaultConfig()
	}

	ctx := syntax.Collect(root, source)
	lineEnding := opts.LineEnding.Resolve()

	var edits []edit.Edit
	var warnings []diagnostics.Warning

	if opts.Transformations.UsesSection {
		syntax.Walk(root, func(n syntax.Node) bool {
			if n.Kind() != syntax.KindUses {
				return true
			}
			e, warn, ok := usessection.Reformat(n, source, opts.UsesSection, opts.Indentation, lineEnding)
			if ok {
				edits = append(edits, e)
			} else if warn != nil {
				warnings = append(warnings, *warn)
				logSkip(logger, *warn)
			}
			return false
		})
	}

	rewriterEdits, rewriterWarnings := rewriters.Dispatch(root, source, opts.Transformations, lineEnding)
	edits = append(edits, rewriterEdits...)
	for _, w := range rewriterWarnings {
		logSkip(logger, w)
	}
	warnings = append(warnings, rewriterWarnings...)

	gaps := edit.Gaps(len(source), edits)
	pending := append(append([]edit.Edit{}, edits...), gaps...)

	final := make([]edit.Edit, 0, len(pending))
	for _, e := range pending {
		if e.IsFinal {
			final = append(final, e)
			continue
		}
		if !opts.Transformations.Text {
			final = append(final, e)
			continue
		}

		var slice []byte
		if e.Text != nil {
			slice = []byte(*e.Text)
		} else {
			slice = source[e.Start:e.End]
		}

		rewritten := spacing.Transform(slice, e.Start, ctx, opts.TextChanges)
		if e.Text == nil && rewritten == string(source[e.Start:e.End]) {
			final = append(final, e)
			continue
		}
		final = append(final, e.WithText(rewritten))
	}

	if err := edit.Validate(source, final); err != nil {
		logger.Error("invariant violation before merge", zap.Error(err))
		return Result{}, err
	}

	output := edit.Merge(source, final)
	count := edit.ReplacementCount(source, final)

	return Result{Output: output, ReplacementCount: count, Warnings: warnings}, nil
}

func logSkip(logger *zap.Logger, w diagnostics.Warning) {
	logger.Warn("section skipped",
		zap.String("reason", string(w.Reason)),
		zap.String("detail", w.Detail),
		zap.Int("start", w.Start),
		zap.Int("end", w.End),
	)
}
