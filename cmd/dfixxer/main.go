// Package main implements the dfixxer CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tuncb/dfixxer/internal/cliui"
	"github.com/tuncb/dfixxer/internal/configfile"
	"github.com/tuncb/dfixxer/internal/diffrender"
	"github.com/tuncb/dfixxer/internal/logging"
	"github.com/tuncb/dfixxer/internal/sitteradapter"
	"github.com/tuncb/dfixxer/pkg/config"
	"github.com/tuncb/dfixxer/pkg/orchestrator"
	"github.com/tuncb/dfixxer/pkg/syntax"
)

const version = "0.1.0"

// pascalLanguage is the concrete Delphi/Pascal tree-sitter grammar the core
// consumes through internal/sitteradapter. Spec §1 declares "the concrete
// tree-sitter grammar" an external collaborator out of core scope, and none
// is vendored in this module; a deployment wires a real grammar in here
// (see DESIGN.md, "internal/sitteradapter").
var pascalLanguage *sitter.Language

var logLevel string

func main() {
	rootCmd := &cobra.Command{
		Use:          "dfixxer",
		Short:        "dfixxer - a formatter for Delphi/Pascal source files",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(updateCmd(), checkCmd(), initConfigCmd(), parseCmd(), parseDebugCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func updateCmd() *cobra.Command {
	var configPath string
	var multi bool
	var diff bool

	cmd := &cobra.Command{
		Use:   "update <path>",
		Short: "Reformat files in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMulti(args[0], multi, configPath, diff, false)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a dfixxer.toml to use instead of discovery")
	cmd.Flags().BoolVar(&multi, "multi", false, "expand path as a glob pattern across multiple files")
	cmd.Flags().BoolVar(&diff, "diff", false, "print a unified diff instead of writing the file")
	return cmd
}

func checkCmd() *cobra.Command {
	var configPath string
	var multi bool
	var diff bool

	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Report how many replacements would be made without writing them",
		Long: "Report how many replacements would be made without writing them.\n\n" +
			"Exit status: 0 when nothing would change, 1 on error, otherwise the total\n" +
			"replacement count across all processed files, capped at 125 because the\n" +
			"raw count can exceed the range of a process exit status.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMulti(args[0], multi, configPath, diff, true)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a dfixxer.toml to use instead of discovery")
	cmd.Flags().BoolVar(&multi, "multi", false, "expand path as a glob pattern across multiple files")
	cmd.Flags().BoolVar(&diff, "diff", false, "print a unified diff whenever replacements would be made")
	return cmd
}

func initConfigCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config <path>",
		Short: "Write a fully-commented default dfixxer.toml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := cliui.NewReporter()
			if err := configfile.WriteDefault(args[0], force); err != nil {
				reporter.PrintError(err.Error())
				return err
			}
			reporter.PrintInfo(fmt.Sprintf("wrote %s", args[0]))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func parseCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "parse <path>",
		Short: "Print the uses-section unit list and hint counts for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, root, err := readAndParse(args[0])
			if err != nil {
				return err
			}
			ctx := syntax.Collect(root, source)

			var uses []string
			syntax.Walk(root, func(n syntax.Node) bool {
				if n.Kind() == syntax.KindUses {
					for i := 0; i < n.ChildCount(); i++ {
						c := n.Child(i)
						if c.Kind() == "unitName" {
							uses = append(uses, string(syntax.Text(c, source)))
						}
					}
				}
				return true
			})

			rows := [][]string{
				{"units", fmt.Sprintf("%d", len(uses))},
				{"generic brackets", fmt.Sprintf("%d", len(ctx.GenericAnglePositions))},
				{"unary signs", fmt.Sprintf("%d", len(ctx.UnarySignPositions))},
				{"error ranges", fmt.Sprintf("%d", len(ctx.ErrorRanges))},
			}
			for _, u := range uses {
				rows = append(rows, []string{"unit", u})
			}
			fmt.Println(cliui.Box(args[0], cliui.Table(rows)))
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a dfixxer.toml to use instead of discovery")
	return cmd
}

func parseDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-debug <path>",
		Short: "Dump the raw syntax tree (kind and byte range per node)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, root, err := readAndParse(args[0])
			if err != nil {
				return err
			}
			dumpTree(root, 0)
			return nil
		},
	}
}

func dumpTree(n syntax.Node, depth int) {
	if n == nil {
		return
	}
	fmt.Printf("%s%s [%d,%d)\n", indentOf(depth), n.Kind(), n.StartByte(), n.EndByte())
	for i := 0; i < n.ChildCount(); i++ {
		dumpTree(n.Child(i), depth+1)
	}
}

func indentOf(depth int) string {
	out := make([]byte, depth*2)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

// runMulti expands path as a glob when multi is set, runs one file through
// the core per match, and applies the check/update exit-code and output
// contract (SPEC_FULL's "Exit-code contract for check").
func runMulti(path string, multi bool, configPath string, diff bool, checkOnly bool) error {
	logger, err := logging.New(logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	paths := []string{path}
	if multi {
		matches, err := filepath.Glob(path)
		if err != nil {
			return fmt.Errorf("expanding glob %q: %w", path, err)
		}
		paths = matches
	}

	reporter := cliui.NewReporter()
	reporter.PrintRunStart(len(paths))

	totalReplacements := 0
	filesChanged := 0
	hadErrors := false

	for _, p := range paths {
		n, changed, err := runOne(p, configPath, diff, checkOnly, reporter, logger)
		if err != nil {
			hadErrors = true
			reporter.PrintFileResult(p, nil, cliui.Skipped, 0, nil)
			reporter.PrintError(err.Error())
			continue
		}
		totalReplacements += n
		if changed {
			filesChanged++
		}
	}

	reporter.PrintSummary(filesChanged, totalReplacements, hadErrors)

	if hadErrors {
		return fmt.Errorf("one or more files failed to process")
	}
	if checkOnly && totalReplacements > 0 {
		os.Exit(capExitCode(totalReplacements))
	}
	return nil
}

// capExitCode clamps a replacement count to the POSIX exit-status range.
func capExitCode(n int) int {
	if n > 125 {
		return 125
	}
	return n
}

func runOne(path, configPath string, diff, checkOnly bool, reporter *cliui.Reporter, logger *zap.Logger) (replacementCount int, changed bool, err error) {
	source, root, err := readAndParse(path)
	if err != nil {
		return 0, false, err
	}

	opts, err := resolveOptions(path, configPath)
	if err != nil {
		return 0, false, err
	}

	result, err := orchestrator.Process(root, source, opts, logger)
	if err != nil {
		return 0, false, err
	}

	verb := cliui.Unchanged
	if result.ReplacementCount > 0 {
		if checkOnly {
			verb = cliui.WouldReformat
		} else {
			verb = cliui.Reformatted
		}
	}
	reporter.PrintFileResult(path, source, verb, result.ReplacementCount, result.Warnings)

	if diff && result.ReplacementCount > 0 {
		text, derr := diffrender.Unified(path, source, result.Output)
		if derr == nil {
			fmt.Println(text)
		}
	}

	if !checkOnly && !diff && result.ReplacementCount > 0 {
		if err := os.WriteFile(path, result.Output, 0o644); err != nil {
			return 0, false, fmt.Errorf("writing %s: %w", path, err)
		}
	}

	return result.ReplacementCount, result.ReplacementCount > 0, nil
}

func resolveOptions(path, configPath string) (*config.Options, error) {
	if configPath != "" {
		return configfile.Load(configPath, nil)
	}
	base, err := configfile.Load(path, nil)
	if err != nil {
		return nil, err
	}
	return configfile.Load(path, base)
}

func readAndParse(path string) ([]byte, syntax.Node, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	root, err := parseSource(context.Background(), source)
	if err != nil {
		return nil, nil, err
	}
	return source, root, nil
}

func parseSource(ctx context.Context, source []byte) (syntax.Node, error) {
	if pascalLanguage == nil {
		return nil, fmt.Errorf("no Pascal tree-sitter grammar configured")
	}
	parser := sitter.NewParser()
	parser.SetLanguage(pascalLanguage)
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	defer tree.Close()
	return sitteradapter.Wrap(tree.RootNode()), nil
}
