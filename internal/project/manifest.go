package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ResolveMode says whether the declaration files of a game are resolved as
// one list or one by one.
type ResolveMode uint8

const (
	// ModeCombined concatenates all files, so classes may inherit across files.
	ModeCombined ResolveMode = iota
	ModePerFile
)

func (m ResolveMode) String() string {
	switch m {
	case ModeCombined:
		return "combined"
	case ModePerFile:
		return "per-file"
	}
	return "unknown"
}

// ParseResolveMode accepts "combined" and "per-file"; empty means combined.
func ParseResolveMode(s string) (ResolveMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "combined":
		return ModeCombined, nil
	case "per-file", "perfile", "per_file":
		return ModePerFile, nil
	}
	return ModeCombined, fmt.Errorf("unknown resolve mode %q (want combined or per-file)", s)
}

var (
	// ErrGameSectionMissing indicates that [game] is missing in entdef.toml.
	ErrGameSectionMissing = errors.New("missing [game]")
	// ErrGameNameMissing indicates that [game].name is missing in entdef.toml.
	ErrGameNameMissing = errors.New("missing [game].name")
	// ErrDefinitionsMissing indicates that [game].definitions is missing or empty.
	ErrDefinitionsMissing = errors.New("missing [game].definitions")
)

// Manifest is a decoded entdef.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Game    GameConfig    `toml:"game"`
	Resolve ResolveConfig `toml:"resolve"`
}

type GameConfig struct {
	Name        string   `toml:"name"`
	Definitions []string `toml:"definitions"`
}

type ResolveConfig struct {
	Mode     string `toml:"mode"`
	FlagsKey string `toml:"flags_key"`
}

// LoadManifest finds entdef.toml above startDir and decodes it.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := ReadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// ReadManifest decodes the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("game") {
		return nil, fmt.Errorf("%s: %w", path, ErrGameSectionMissing)
	}
	if !meta.IsDefined("game", "name") || strings.TrimSpace(cfg.Game.Name) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrGameNameMissing)
	}
	if !meta.IsDefined("game", "definitions") || len(cfg.Game.Definitions) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrDefinitionsMissing)
	}
	if _, err := ParseResolveMode(cfg.Resolve.Mode); err != nil {
		return nil, fmt.Errorf("%s: [resolve].mode: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// Definitions returns the declaration files relative to the manifest root.
func (m *Manifest) Definitions() []string {
	out := make([]string, 0, len(m.Config.Game.Definitions))
	for _, rel := range m.Config.Game.Definitions {
		rel = strings.TrimSpace(rel)
		if rel == "" {
			continue
		}
		if filepath.IsAbs(rel) {
			out = append(out, filepath.Clean(rel))
			continue
		}
		out = append(out, filepath.Join(m.Root, filepath.FromSlash(rel)))
	}
	return out
}

// Mode returns the configured resolve mode. ReadManifest already validated it.
func (m *Manifest) Mode() ResolveMode {
	mode, _ := ParseResolveMode(m.Config.Resolve.Mode)
	return mode
}
