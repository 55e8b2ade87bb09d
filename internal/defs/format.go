package defs

import (
	"path/filepath"
	"strings"
)

type Format uint8

const (
	FormatUnknown Format = iota
	FormatTOML
	FormatYAML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatUnknown:
	}
	return "unknown"
}

// DetectFormat picks the decoder from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json", ".jsonc":
		return FormatJSON
	}
	return FormatUnknown
}

// Supported reports whether path has a known declaration file extension.
func Supported(path string) bool {
	return DetectFormat(path) != FormatUnknown
}
