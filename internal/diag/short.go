package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"entdef/internal/source"
)

// shortLine is one rendered row; notes become rows of their own.
type shortLine struct {
	sev, code, path string
	line, col       uint32
	msg             string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

func compareShort(a, b shortLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.sev, b.sev),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatShortDiagnostics prints one line per diagnostic (and per note when
// includeNotes is set), sorted by location. Used by tests and by
// `check --format short`. With a nil fs locations print as fileN.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	var lines []shortLine
	row := func(sev string, code Code, loc source.Location, msg string) {
		lines = append(lines, shortLine{
			sev:  sev,
			code: code.ID(),
			path: shortPath(fs, loc),
			line: loc.Line,
			col:  loc.Column,
			msg:  oneLine(msg),
		})
	}
	for _, d := range diags {
		row(severityWord(d.Severity), d.Code, d.Primary, d.Message)
		if includeNotes {
			for _, n := range d.Notes {
				row("note", d.Code, n.Loc, n.Msg)
			}
		}
	}
	slices.SortStableFunc(lines, compareShort)

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func shortPath(fs *source.FileSet, loc source.Location) string {
	switch {
	case fs != nil:
		return strings.TrimPrefix(fs.DisplayPath(loc, "relative"), "./")
	case loc.HasFile():
		return fmt.Sprintf("file%d", loc.File)
	default:
		return "<unknown>"
	}
}

func severityWord(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "info"
}

// oneLine folds line breaks into spaces.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
