package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"entdef/internal/diagfmt"
)

// runOptions collects the flags shared by resolve and check.
type runOptions struct {
	format           string
	jobs             int
	flagsKey         string
	mode             string
	ui               uiMode
	useCache         bool
	cacheDir         string
	noWarnings       bool
	warningsAsErrors bool
	withNotes        bool
	fullPath         bool
	manifest         string

	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

// registerRunFlags adds the flags read by readRunOptions.
func registerRunFlags(cmd *cobra.Command, formats string) {
	cmd.Flags().String("format", "pretty", "output format ("+formats+")")
	cmd.Flags().Int("jobs", 0, "max parallel workers for decoding (0=auto)")
	cmd.Flags().String("flags-key", "", "key of the flags property (default from manifest or spawnflags)")
	cmd.Flags().String("mode", "", "resolve mode (combined|per-file), overrides the manifest")
	cmd.Flags().String("ui", "auto", "progress UI on stderr (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse resolved results from the disk cache")
	cmd.Flags().String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/entdef)")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().String("manifest", "", "path to entdef.toml (default: search upwards from the working directory)")
}

func readRunOptions(cmd *cobra.Command, formats ...string) (runOptions, error) {
	var (
		opts runOptions
		err  error
	)
	flags := cmd.Flags()
	if opts.format, err = flags.GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	opts.format = strings.ToLower(strings.TrimSpace(opts.format))
	if !slices.Contains(formats, opts.format) {
		return opts, fmt.Errorf("unknown format %q (expected %s)", opts.format, strings.Join(formats, "|"))
	}
	if opts.jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if opts.flagsKey, err = flags.GetString("flags-key"); err != nil {
		return opts, fmt.Errorf("failed to get flags-key flag: %w", err)
	}
	if opts.mode, err = flags.GetString("mode"); err != nil {
		return opts, fmt.Errorf("failed to get mode flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = readUIMode(uiValue); err != nil {
		return opts, err
	}
	if opts.useCache, err = flags.GetBool("cache"); err != nil {
		return opts, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if opts.cacheDir, err = flags.GetString("cache-dir"); err != nil {
		return opts, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	if opts.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return opts, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if opts.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return opts, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if opts.noWarnings && opts.warningsAsErrors {
		return opts, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if opts.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if opts.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return opts, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if opts.manifest, err = flags.GetString("manifest"); err != nil {
		return opts, fmt.Errorf("failed to get manifest flag: %w", err)
	}

	persistent := cmd.Root().PersistentFlags()
	colorFlag, err := persistent.GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	colorFor, err := readColorMode(colorFlag)
	if err != nil {
		return opts, err
	}
	opts.color = colorFor(os.Stdout)
	if opts.quiet, err = persistent.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = persistent.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = persistent.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return opts, nil
}

func (o runOptions) pathMode() diagfmt.PathMode {
	if o.fullPath {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeRelative
}
