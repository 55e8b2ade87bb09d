package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"entdef/internal/diag"
	"entdef/internal/diagfmt"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file...]",
	Short: "Report declaration and inheritance diagnostics",
	Long: `Check loads and resolves the declarations like resolve does, but prints only the
diagnostics. The exit status is non-zero when errors (or, with --warnings-as-errors,
warnings) were reported.`,
	RunE: runCheck,
}

func init() {
	registerRunFlags(checkCmd, "pretty|short|json")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := readRunOptions(cmd, "pretty", "short", "json")
	if err != nil {
		return err
	}
	report, err := executeRun(cmd, args, opts)
	if err != nil {
		return err
	}
	fs := report.result.FileSet
	out := cmd.OutOrStdout()
	diags := capDiagnostics(report.diags, opts.maxDiagnostics)

	switch opts.format {
	case "short":
		if err := diagfmt.Short(out, diags, fs, opts.withNotes); err != nil {
			return fmt.Errorf("failed to write diagnostics: %w", err)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{PathMode: opts.pathMode(), IncludeNotes: opts.withNotes}
		if err := diagfmt.JSON(out, diags, fs, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		diagfmt.PrettyDiagnostics(out, diags, fs, diagfmt.PrettyOpts{
			Color:     opts.color,
			Context:   true,
			PathMode:  opts.pathMode(),
			ShowNotes: opts.withNotes,
		})
		if !opts.quiet {
			printSummary(cmd.ErrOrStderr(), "checked", report)
		}
	}
	return finish(cmd, report, opts)
}

// capDiagnostics обрезает вывод, не список для кода выхода.
func capDiagnostics(diags []diag.Diagnostic, limit int) []diag.Diagnostic {
	if limit > 0 && len(diags) > limit {
		return diags[:limit]
	}
	return diags
}
