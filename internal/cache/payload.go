package cache

import (
	"entdef/internal/diag"
	"entdef/internal/entity"
	"entdef/internal/project"
	"entdef/internal/source"
)

// Payload is one cached resolution: the resolved classes and the diagnostics
// that came with them. Locations are stored by path, since file ids depend on
// load order.
type Payload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Files       []string
	Classes     []Class
	Diagnostics []Diagnostic
}

type Location struct {
	Path   string
	Line   uint32
	Column uint32
}

type Class struct {
	Type         uint8
	Location     Location
	Name         string
	Description  *string
	Color        *entity.Color
	Size         *entity.BBox
	Model        []string
	Decal        []string
	Properties   []entity.PropertyDefinition
	SuperClasses []string
}

type Note struct {
	Location Location
	Msg      string
}

type Diagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  Location
	Notes    []Note
}

// Key derives the cache key of a resolution from the input file hashes, in
// order, and the resolver settings.
func Key(files []project.Digest, settings ...string) project.Digest {
	parts := make([]project.Digest, 0, len(files)+len(settings))
	parts = append(parts, files...)
	for _, s := range settings {
		parts = append(parts, project.HashString(s))
	}
	return project.Combine(project.HashString("entdef-resolve"), parts...)
}

// NewPayload captures classes and diagnostics, translating file ids to paths.
func NewPayload(fs *source.FileSet, files []string, classes []entity.ClassInfo, diags []diag.Diagnostic) *Payload {
	p := &Payload{
		Files:       files,
		Classes:     make([]Class, len(classes)),
		Diagnostics: make([]Diagnostic, len(diags)),
	}
	for i := range classes {
		c := classes[i].Clone()
		p.Classes[i] = Class{
			Type:         uint8(c.Type),
			Location:     toLocation(fs, c.Location),
			Name:         c.Name,
			Description:  c.Description,
			Color:        c.Color,
			Size:         c.Size,
			Model:        c.ModelDefinition.Sources(),
			Decal:        c.DecalDefinition.Sources(),
			Properties:   c.PropertyDefinitions,
			SuperClasses: c.SuperClasses,
		}
	}
	for i, d := range diags {
		out := Diagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  toLocation(fs, d.Primary),
		}
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, Note{Location: toLocation(fs, n.Loc), Msg: n.Msg})
		}
		p.Diagnostics[i] = out
	}
	return p
}

// Restore rebuilds classes and diagnostics against fs. Paths that fs does not
// know map to source.NoFile.
func (p *Payload) Restore(fs *source.FileSet) ([]entity.ClassInfo, []diag.Diagnostic) {
	classes := make([]entity.ClassInfo, len(p.Classes))
	for i, c := range p.Classes {
		classes[i] = entity.ClassInfo{
			Type:                entity.ClassType(c.Type),
			Location:            fromLocation(fs, c.Location),
			Name:                c.Name,
			Description:         c.Description,
			Color:               c.Color,
			Size:                c.Size,
			ModelDefinition:     entity.Chain(c.Model...),
			DecalDefinition:     entity.Chain(c.Decal...),
			PropertyDefinitions: c.Properties,
			SuperClasses:        c.SuperClasses,
		}
	}
	diags := make([]diag.Diagnostic, len(p.Diagnostics))
	for i, d := range p.Diagnostics {
		out := diag.New(diag.Severity(d.Severity), diag.Code(d.Code), fromLocation(fs, d.Primary), d.Message)
		for _, n := range d.Notes {
			out = out.WithNote(fromLocation(fs, n.Location), n.Msg)
		}
		diags[i] = out
	}
	return classes, diags
}

func toLocation(fs *source.FileSet, loc source.Location) Location {
	out := Location{Line: loc.Line, Column: loc.Column}
	if fs == nil || !loc.HasFile() {
		return out
	}
	if f := fs.Get(loc.File); f != nil {
		out.Path = f.Path
	}
	return out
}

func fromLocation(fs *source.FileSet, loc Location) source.Location {
	if loc.Path == "" || fs == nil {
		return source.Location{File: source.NoFile, Line: loc.Line, Column: loc.Column}
	}
	id, ok := fs.GetLatest(loc.Path)
	if !ok {
		id = source.NoFile
	}
	return source.At(id, loc.Line, loc.Column)
}
