package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"entdef/internal/diagfmt"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] [file...]",
	Short: "Resolve class inheritance and print the resolved classes",
	Long: `Resolve loads the given declaration files, or the definitions listed in entdef.toml,
resolves class inheritance and prints the resolved point and brush classes.`,
	RunE: runResolve,
}

func init() {
	registerRunFlags(resolveCmd, "pretty|json")
	resolveCmd.Flags().Bool("properties", false, "list properties under each class")
	resolveCmd.Flags().Int("width", 0, "truncate table lines to this width (0=unlimited)")
}

// resolveOutput is the JSON document of "resolve --format json".
type resolveOutput struct {
	Classes     diagfmt.ClassesOutput     `json:"classes"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	opts, err := readRunOptions(cmd, "pretty", "json")
	if err != nil {
		return err
	}
	showProps, err := cmd.Flags().GetBool("properties")
	if err != nil {
		return fmt.Errorf("failed to get properties flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}

	report, err := executeRun(cmd, args, opts)
	if err != nil {
		return err
	}
	res := report.result
	out := cmd.OutOrStdout()

	switch opts.format {
	case "json":
		doc := resolveOutput{
			Classes: diagfmt.BuildClassesOutput(res.Classes, res.FileSet, opts.pathMode()),
			Diagnostics: diagfmt.BuildDiagnosticsOutput(report.diags, res.FileSet, diagfmt.JSONOpts{
				PathMode:     opts.pathMode(),
				Max:          opts.maxDiagnostics,
				IncludeNotes: opts.withNotes,
			}),
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode resolve output: %w", err)
		}
	default:
		diagfmt.Classes(out, res.Classes, res.FileSet, diagfmt.ClassOpts{
			PathMode:   opts.pathMode(),
			Properties: showProps,
			Width:      width,
		})
		// диагностики в stderr, чтобы таблицу можно было перенаправить
		diagfmt.PrettyDiagnostics(cmd.ErrOrStderr(), capDiagnostics(report.diags, opts.maxDiagnostics), res.FileSet, diagfmt.PrettyOpts{
			Color:     opts.color,
			Context:   true,
			PathMode:  opts.pathMode(),
			ShowNotes: opts.withNotes,
		})
		if !opts.quiet {
			printSummary(cmd.ErrOrStderr(), "resolved", report)
		}
	}
	return finish(cmd, report, opts)
}
