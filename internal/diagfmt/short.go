package diagfmt

import (
	"io"

	"entdef/internal/diag"
	"entdef/internal/source"
)

// Short печатает диагностики по одной на строку, в стабильном порядке.
func Short(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(diags, fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
