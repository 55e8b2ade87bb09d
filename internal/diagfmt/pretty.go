package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"entdef/internal/diag"
	"entdef/internal/source"
)

type palette struct {
	err, warn, info, note, code, loc *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgCyan),
		note: color.New(color.FgBlue),
		code: color.New(color.Faint),
		loc:  color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.loc} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	case diag.SevInfo:
		return p.info
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем, если включено, строку исходника с ^ под колонкой, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	PrettyDiagnostics(w, bag.Items(), fs, opts)
}

// PrettyDiagnostics is Pretty over a plain slice.
func PrettyDiagnostics(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.loc.Sprint(locationString(fs, d.Primary, opts.PathMode)),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		)
		if opts.Context {
			writeContext(w, fs, d.Primary, p.severity(d.Severity))
		}
		if !opts.ShowNotes && d.Code != diag.ObsTimings {
			continue
		}
		for _, note := range d.Notes {
			if note.Loc.HasFile() {
				fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), locationString(fs, note.Loc, opts.PathMode), note.Msg)
			} else {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), note.Msg)
			}
		}
	}
}

func writeContext(w io.Writer, fs *source.FileSet, loc source.Location, c *color.Color) {
	if fs == nil || !loc.HasFile() || !loc.HasPosition() {
		return
	}
	f := fs.Get(loc.File)
	if f == nil || loc.Line > f.LineCount() {
		return
	}
	line := strings.TrimRight(f.GetLine(loc.Line), "\r\n")
	gutter := fmt.Sprintf("%d", loc.Line)
	fmt.Fprintf(w, " %s | %s\n", gutter, strings.ReplaceAll(line, "\t", " "))

	// колонка 1-based
	col := int(loc.Column)
	runes := []rune(line)
	if col < 1 {
		col = 1
	}
	if col > len(runes)+1 {
		col = len(runes) + 1
	}
	pad := runewidth.StringWidth(string(runes[:col-1]))
	fmt.Fprintf(w, " %s | %s%s\n", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", pad), c.Sprint("^"))
}
