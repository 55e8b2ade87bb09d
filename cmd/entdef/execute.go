package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"entdef/internal/cache"
	"entdef/internal/diag"
	"entdef/internal/observ"
	"entdef/internal/pipeline"
)

// runReport bundles a finished pipeline run with the diagnostics to show.
type runReport struct {
	inputs runInputs
	result *pipeline.Result
	diags  []diag.Diagnostic
	timer  *observ.Timer
}

// executeRun resolves the inputs selected by args and opts.
func executeRun(cmd *cobra.Command, args []string, opts runOptions) (*runReport, error) {
	inputs, err := collectInputs(args, opts)
	if err != nil {
		return nil, err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	timer := observ.NewTimer()
	req := pipeline.Request{
		Files:          inputs.files,
		Mode:           inputs.mode,
		FlagsKey:       inputs.flagsKey,
		Jobs:           opts.jobs,
		MaxDiagnostics: opts.maxDiagnostics,
		BaseDir:        inputs.baseDir,
		Timer:          timer,
	}
	if opts.useCache {
		if req.Cache, err = openCache(opts.cacheDir); err != nil {
			return nil, err
		}
	}

	var result *pipeline.Result
	if !opts.quiet && shouldUseTUI(opts.ui) {
		result, err = runWithUI(cmd.Context(), inputs.title, req)
	} else {
		result, err = pipeline.Run(cmd.Context(), req)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve failed: %w", err)
	}

	return &runReport{
		inputs: inputs,
		result: result,
		diags:  filterDiagnostics(result.Diagnostics(), opts.noWarnings),
		timer:  timer,
	}, nil
}

func openCache(dir string) (*cache.DiskCache, error) {
	if dir != "" {
		return cache.OpenDir(dir)
	}
	c, err := cache.Open("entdef")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return c, nil
}

// filterDiagnostics drops warnings and infos when noWarnings is set.
func filterDiagnostics(diags []diag.Diagnostic, noWarnings bool) []diag.Diagnostic {
	if !noWarnings {
		return diags
	}
	return slices.DeleteFunc(slices.Clone(diags), func(d diag.Diagnostic) bool {
		return d.Severity < diag.SevError
	})
}

// failed reports whether the run should exit non-zero.
func failed(diags []diag.Diagnostic, warningsAsErrors bool) bool {
	for _, d := range diags {
		if d.Severity == diag.SevError {
			return true
		}
		if warningsAsErrors && d.Severity == diag.SevWarning {
			return true
		}
	}
	return false
}

// printSummary пишет итоговую строку вида "resolved 12 classes from 3 files: 1 error, 2 warnings".
func printSummary(out io.Writer, verb string, report *runReport) {
	var errs, warns int
	for _, d := range report.diags {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		case diag.SevInfo:
		}
	}
	cached := ""
	if report.result.CacheHit {
		cached = " (cached)"
	}
	fmt.Fprintf(out, "%s %s from %s%s: %s, %s\n",
		verb,
		plural(len(report.result.Classes), "class", "classes"),
		plural(len(report.inputs.files), "file", "files"),
		cached,
		plural(errs, "error", "errors"),
		plural(warns, "warning", "warnings"),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// finish prints timings and turns a failed run into errDiagnostics.
func finish(cmd *cobra.Command, report *runReport, opts runOptions) error {
	if opts.timings {
		printStageTimings(cmd.ErrOrStderr(), report.result.Timings)
		fmt.Fprint(cmd.ErrOrStderr(), report.timer.Summary())
	}
	if failed(report.diags, opts.warningsAsErrors) {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errDiagnostics
	}
	return nil
}
