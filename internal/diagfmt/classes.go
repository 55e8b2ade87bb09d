package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"entdef/internal/entity"
	"entdef/internal/source"
)

var classHeader = []string{"KIND", "NAME", "LOCATION", "PROPS", "BASES"}

// Classes prints resolved classes as an aligned table, one row per class.
func Classes(w io.Writer, classes []entity.ClassInfo, fs *source.FileSet, opts ClassOpts) {
	rows := make([][]string, 0, len(classes)+1)
	rows = append(rows, classHeader)
	for i := range classes {
		c := &classes[i]
		rows = append(rows, []string{
			c.Type.String(),
			c.Name,
			locationString(fs, c.Location, opts.PathMode),
			fmt.Sprintf("%d", len(c.PropertyDefinitions)),
			strings.Join(c.SuperClasses, ", "),
		})
	}

	widths := make([]int, len(classHeader))
	for _, row := range rows {
		for j, cell := range row {
			widths[j] = max(widths[j], runewidth.StringWidth(cell))
		}
	}

	for i, row := range rows {
		var b strings.Builder
		for j, cell := range row {
			if j == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[j]))
			b.WriteString("  ")
		}
		line := strings.TrimRight(b.String(), " ")
		if opts.Width > 0 && runewidth.StringWidth(line) > opts.Width {
			line = runewidth.Truncate(line, opts.Width, "...")
		}
		fmt.Fprintln(w, line)

		if opts.Properties && i > 0 {
			writeProperties(w, &classes[i-1], opts.Width)
		}
	}
}

func writeProperties(w io.Writer, c *entity.ClassInfo, width int) {
	for _, p := range c.PropertyDefinitions {
		line := fmt.Sprintf("    %s: %s", p.Key, p.Type)
		if p.DefaultValue != nil {
			line += fmt.Sprintf(" = %q", *p.DefaultValue)
		}
		if p.ShortDescription != "" {
			line += "  " + p.ShortDescription
		}
		if width > 0 && runewidth.StringWidth(line) > width {
			line = runewidth.Truncate(line, width, "...")
		}
		fmt.Fprintln(w, line)
		for _, opt := range p.Options {
			mark := " "
			if opt.IsDefault {
				mark = "*"
			}
			fmt.Fprintf(w, "      %s %d %s\n", mark, opt.Value, opt.ShortDescription)
		}
	}
}

// ClassJSON is the JSON shape of a resolved class.
type ClassJSON struct {
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Location    LocationJSON   `json:"location"`
	Description *string        `json:"description,omitempty"`
	Color       *[3]float32    `json:"color,omitempty"`
	Size        *SizeJSON      `json:"size,omitempty"`
	Model       []string       `json:"model,omitempty"`
	Decal       []string       `json:"decal,omitempty"`
	Properties  []PropertyJSON `json:"properties,omitempty"`
	Base        []string       `json:"base,omitempty"`
}

type SizeJSON struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

type PropertyJSON struct {
	Key      string       `json:"key"`
	Type     string       `json:"type"`
	Short    string       `json:"short,omitempty"`
	Long     string       `json:"long,omitempty"`
	ReadOnly bool         `json:"read_only,omitempty"`
	Default  *string      `json:"default,omitempty"`
	Choices  []ChoiceJSON `json:"choices,omitempty"`
	Options  []FlagJSON   `json:"options,omitempty"`
}

type ChoiceJSON struct {
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type FlagJSON struct {
	Value   int    `json:"value"`
	Short   string `json:"short,omitempty"`
	Long    string `json:"long,omitempty"`
	Default bool   `json:"default,omitempty"`
}

// ClassesOutput is the root of the JSON class listing.
type ClassesOutput struct {
	Classes []ClassJSON `json:"classes"`
	Count   int         `json:"count"`
}

// BuildClassesOutput converts classes into their JSON shape. The field names
// match the declaration file format, so the output can be decoded again.
func BuildClassesOutput(classes []entity.ClassInfo, fs *source.FileSet, mode PathMode) ClassesOutput {
	out := ClassesOutput{Classes: make([]ClassJSON, 0, len(classes)), Count: len(classes)}
	for i := range classes {
		c := &classes[i]
		cj := ClassJSON{
			Type:        c.Type.String(),
			Name:        c.Name,
			Location:    makeLocation(c.Location, fs, mode),
			Description: c.Description,
			Model:       c.ModelDefinition.Sources(),
			Decal:       c.DecalDefinition.Sources(),
			Base:        c.SuperClasses,
		}
		if c.Color != nil {
			cj.Color = &[3]float32{c.Color.R, c.Color.G, c.Color.B}
		}
		if c.Size != nil {
			cj.Size = &SizeJSON{
				Min: [3]float64{c.Size.Min.X, c.Size.Min.Y, c.Size.Min.Z},
				Max: [3]float64{c.Size.Max.X, c.Size.Max.Y, c.Size.Max.Z},
			}
		}
		for _, p := range c.PropertyDefinitions {
			pj := PropertyJSON{
				Key:      p.Key,
				Type:     p.Type.String(),
				Short:    p.ShortDescription,
				Long:     p.LongDescription,
				ReadOnly: p.ReadOnly,
				Default:  p.DefaultValue,
			}
			for _, ch := range p.Choices {
				pj.Choices = append(pj.Choices, ChoiceJSON{Value: ch.Value, Description: ch.Description})
			}
			for _, opt := range p.Options {
				pj.Options = append(pj.Options, FlagJSON{
					Value:   opt.Value,
					Short:   opt.ShortDescription,
					Long:    opt.LongDescription,
					Default: opt.IsDefault,
				})
			}
			cj.Properties = append(cj.Properties, pj)
		}
		out.Classes = append(out.Classes, cj)
	}
	return out
}

// ClassesJSON writes classes as an indented JSON document.
func ClassesJSON(w io.Writer, classes []entity.ClassInfo, fs *source.FileSet, mode PathMode) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildClassesOutput(classes, fs, mode))
}
