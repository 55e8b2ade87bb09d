package defs

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"entdef/internal/source"
)

const tomlClassHeader = "[[class]]"

// decodeTOML positions classes at their [[class]] headers. Classes written as
// an inline array keep an unknown position.
func decodeTOML(f *source.File) ([]rawClass, error) {
	var doc document
	meta, err := toml.Decode(string(f.Content), &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	headers := f.LinesWithPrefix(tomlClassHeader)
	out := make([]rawClass, len(doc.Class))
	for i, c := range doc.Class {
		out[i].doc = c
		if len(headers) == len(doc.Class) {
			out[i].pos = source.LineCol{Line: headers[i], Col: 1}
		}
	}
	return out, nil
}
