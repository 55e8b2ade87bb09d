package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"entdef/internal/project"
)

const noManifestMessage = "no entdef.toml found\nplease pass declaration files explicitly, e.g.:\n  entdef resolve defs/base.toml defs/monsters.yaml"

// runInputs is what a resolve/check run operates on after merging the
// manifest with the command line.
type runInputs struct {
	title    string
	files    []string
	baseDir  string
	mode     project.ResolveMode
	flagsKey string
}

// collectInputs merges file arguments, the manifest and flag overrides.
// Explicit files win over the manifest's definitions; the manifest still
// supplies mode and flags key when present. Flags override both.
func collectInputs(args []string, opts runOptions) (runInputs, error) {
	manifest, err := findManifest(opts.manifest, len(args) == 0)
	if err != nil {
		return runInputs{}, err
	}

	in := runInputs{mode: project.ModeCombined}
	if manifest != nil {
		in.title = manifest.Config.Game.Name
		in.baseDir = manifest.Root
		in.mode = manifest.Mode()
		in.flagsKey = manifest.Config.Resolve.FlagsKey
	}

	if len(args) > 0 {
		in.files = append([]string(nil), args...)
		if in.baseDir == "" {
			if wd, wdErr := os.Getwd(); wdErr == nil {
				in.baseDir = wd
			}
		}
	} else {
		in.files = manifest.Definitions()
	}
	if in.title == "" {
		in.title = "entdef"
	}

	if opts.mode != "" {
		mode, err := project.ParseResolveMode(opts.mode)
		if err != nil {
			return runInputs{}, fmt.Errorf("--mode: %w", err)
		}
		in.mode = mode
	}
	if opts.flagsKey != "" {
		in.flagsKey = opts.flagsKey
	}
	return in, nil
}

// findManifest reads an explicit manifest or searches for one from the
// working directory. required reports whether a missing manifest is an error.
func findManifest(explicit string, required bool) (*project.Manifest, error) {
	if explicit != "" {
		path := explicit
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, project.ManifestName)
		}
		return project.ReadManifest(path)
	}
	manifest, ok, err := project.LoadManifest(".")
	if err != nil {
		return nil, err
	}
	if !ok {
		if required {
			return nil, errors.New(noManifestMessage)
		}
		return nil, nil
	}
	return manifest, nil
}
