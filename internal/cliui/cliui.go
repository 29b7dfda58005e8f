// Package cliui provides styled CLI output for the dfixxer command line,
// adapted from the teacher's pkg/ui palette and BuildOutput shape to the
// formatter's own verbs (Reformatted, Unchanged, Would reformat, Skipped)
// in place of a compiler's build steps.
package cliui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tuncb/dfixxer/pkg/diagnostics"
)

var (
	colorPrimary   = lipgloss.Color("#7D56F4")
	colorSecondary = lipgloss.Color("#56C3F4")
	colorSuccess   = lipgloss.Color("#5AF78E")
	colorWarning   = lipgloss.Color("#F7DC6F")
	colorError     = lipgloss.Color("#FF6B9D")
	colorMuted     = lipgloss.Color("#6C7086")

	colorText      = lipgloss.Color("#CDD6F4")
	colorHighlight = lipgloss.Color("#F5E0DC")
	colorBorder    = lipgloss.Color("#45475A")
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2).
			MarginBottom(1)

	styleVersion = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	styleSection = lipgloss.NewStyle().Bold(true).Foreground(colorSecondary).MarginTop(1)

	styleFilePath = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)

	styleReformatted   = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleUnchanged      = lipgloss.NewStyle().Foreground(colorMuted)
	styleWouldReformat = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	styleSkipped        = lipgloss.NewStyle().Foreground(colorWarning)

	styleError = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleMuted = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	styleSummary = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(colorBorder).
			MarginTop(1).
			PaddingTop(1)

	styleIndent     = lipgloss.NewStyle().PaddingLeft(2)
	styleNormalText = lipgloss.NewStyle().Foreground(colorText)
)

// Verb is the outcome of processing a single file, printed as a short
// label next to its path.
type Verb int

const (
	Reformatted Verb = iota
	Unchanged
	WouldReformat
	Skipped
)

func (v Verb) label() (text string, style lipgloss.Style) {
	switch v {
	case Reformatted:
		return "reformatted", styleReformatted
	case WouldReformat:
		return "would reformat", styleWouldReformat
	case Skipped:
		return "skipped", styleSkipped
	default:
		return "unchanged", styleUnchanged
	}
}

// Reporter accumulates run-wide state (start time, file count) across a CLI
// invocation and renders each phase of output.
type Reporter struct {
	startTime time.Time
	fileCount int
}

// NewReporter returns a Reporter with its clock started.
func NewReporter() *Reporter {
	return &Reporter{startTime: time.Now()}
}

// PrintHeader prints the command banner.
func (r *Reporter) PrintHeader(version string) {
	header := styleHeader.Render("dfixxer")
	badge := styleVersion.Render("v" + version)
	fmt.Println(header + " " + badge)
}

// PrintRunStart announces how many files are about to be processed.
func (r *Reporter) PrintRunStart(fileCount int) {
	r.fileCount = fileCount

	var msg string
	if fileCount == 1 {
		msg = "Processing 1 file"
	} else {
		msg = fmt.Sprintf("Processing %d files", fileCount)
	}
	fmt.Println(styleSection.Render(msg))
}

// PrintFileResult prints one line per processed file: its path, the verb
// describing what happened to it, and the replacement count when relevant.
// source is the file's original bytes, used to render each warning
// rustc-style with a line/column and a source snippet.
func (r *Reporter) PrintFileResult(path string, source []byte, verb Verb, replacementCount int, warnings []diagnostics.Warning) {
	label, style := verb.label()
	renderedPath := styleFilePath.Render(path)

	line := fmt.Sprintf("  %s  %s", renderedPath, style.Render(label))
	if verb == Reformatted || verb == WouldReformat {
		line += styleMuted.Render(fmt.Sprintf(" (%d replacement%s)", replacementCount, plural(replacementCount)))
	}
	fmt.Println(line)

	for _, w := range warnings {
		d := diagnostics.FromWarning(path, source, w)
		fmt.Print(styleIndent.Render(styleWouldReformat.Render(d.Format())))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// PrintSummary prints the final tally across every processed file.
func (r *Reporter) PrintSummary(filesChanged, totalReplacements int, hadErrors bool) {
	elapsed := time.Since(r.startTime)
	fmt.Println()

	var line string
	if hadErrors {
		line = styleError.Render("dfixxer finished with errors")
	} else if filesChanged == 0 {
		line = styleUnchanged.Render(fmt.Sprintf("nothing to reformat (%s)", formatDuration(elapsed)))
	} else {
		line = styleReformatted.Render(fmt.Sprintf(
			"reformatted %d file%s, %d replacement%s (%s)",
			filesChanged, plural(filesChanged), totalReplacements, plural(totalReplacements), formatDuration(elapsed),
		))
	}
	fmt.Println(styleSummary.Render(line))
}

// PrintError prints a terminal error message.
func (r *Reporter) PrintError(msg string) {
	fmt.Println(styleIndent.Render(styleError.Render("error: ") + msg))
}

// PrintWarning prints a standalone warning not tied to a specific file line.
func (r *Reporter) PrintWarning(msg string) {
	fmt.Println(styleIndent.Render(styleWouldReformat.Render("warning: ") + msg))
}

// PrintInfo prints an informational message.
func (r *Reporter) PrintInfo(msg string) {
	fmt.Println(styleIndent.Render(styleMuted.Render(msg)))
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// Box draws a bordered box around content, used by `parse` to frame its
// summary table.
func Box(title, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2)

	if title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
		content = titleStyle.Render(title) + "\n\n" + content
	}
	return boxStyle.Render(content)
}

// Table renders a simple two-column table, used by `parse` to print the
// extracted unit list and hint counts.
func Table(rows [][]string) string {
	var lines []string
	maxWidth := 0
	for _, row := range rows {
		if len(row) > 0 && len(row[0]) > maxWidth {
			maxWidth = len(row[0])
		}
	}
	for _, row := range rows {
		if len(row) >= 2 {
			label := styleMuted.Render(fmt.Sprintf("%-*s", maxWidth, row[0]))
			value := styleNormalText.Render(row[1])
			lines = append(lines, fmt.Sprintf("  %s  %s", label, value))
		}
	}
	return strings.Join(lines, "\n")
}

// Divider returns a horizontal rule separating sections of output.
func Divider() string {
	return styleMuted.Render(strings.Repeat("─", 60))
}
