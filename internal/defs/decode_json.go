package defs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/tidwall/jsonc"

	"entdef/internal/source"
)

// decodeJSON accepts JSON with comments and trailing commas. The stripped
// text keeps the byte offsets of the original, so each class is positioned
// at its opening brace.
func decodeJSON(fs *source.FileSet, f *source.File) ([]rawClass, error) {
	stripped := jsonc.ToJSON(f.Content)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(stripped))
	dec.DisallowUnknownFields()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var out []rawClass
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		if key, _ := tok.(string); key != "class" {
			return nil, fmt.Errorf("unknown key %q", tok)
		}
		if err := expectDelim(dec, '['); err != nil {
			return nil, err
		}
		for dec.More() {
			off := skipSeparators(stripped, dec.InputOffset())
			var c classDoc
			if err := dec.Decode(&c); err != nil {
				return nil, fmt.Errorf("failed to parse JSON: %w", err)
			}
			out = append(out, rawClass{doc: c, pos: offsetPos(fs, f.ID, off)})
		}
		if err := expectDelim(dec, ']'); err != nil {
			return nil, err
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the top-level object")
	}
	return out, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func skipSeparators(data []byte, off int64) int64 {
	for off < int64(len(data)) && bytes.IndexByte([]byte(" \t\r\n,"), data[off]) >= 0 {
		off++
	}
	return off
}

func offsetPos(fs *source.FileSet, id source.FileID, off int64) source.LineCol {
	o, err := safecast.Conv[uint32](off)
	if err != nil {
		return source.LineCol{}
	}
	return fs.Position(id, o)
}
