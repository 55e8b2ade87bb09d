package defs

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"entdef/internal/diag"
	"entdef/internal/entity"
	"entdef/internal/source"
)

// toClasses validates decoded documents and converts them in order. Invalid
// classes and properties are reported and left out.
func toClasses(file source.FileID, raws []rawClass, r diag.Reporter) []entity.ClassInfo {
	out := make([]entity.ClassInfo, 0, len(raws))
	for _, raw := range raws {
		if c, ok := toClass(file, raw, r); ok {
			out = append(out, c)
		}
	}
	return out
}

func toClass(file source.FileID, raw rawClass, r diag.Reporter) (entity.ClassInfo, bool) {
	doc := raw.doc
	loc := location(file, doc, raw.pos)

	kind, err := entity.ParseClassType(doc.Type)
	if err != nil {
		diag.ReportError(r, diag.DclInvalidClassType, loc, err.Error()).Emit()
		return entity.ClassInfo{}, false
	}
	name := norm.NFC.String(doc.Name)
	if name == "" {
		diag.ReportError(r, diag.DclMissingName, loc, fmt.Sprintf("%s class without a name", kind)).Emit()
		return entity.ClassInfo{}, false
	}

	c := entity.ClassInfo{
		Type:            kind,
		Location:        loc,
		Name:            name,
		Description:     doc.Description,
		ModelDefinition: entity.Chain(doc.Model...),
		DecalDefinition: entity.Chain(doc.Decal...),
	}
	if doc.Color != nil {
		if len(doc.Color) == 3 {
			c.Color = &entity.Color{R: doc.Color[0], G: doc.Color[1], B: doc.Color[2]}
		} else {
			reportValue(r, loc, "class '%s': color needs 3 components, got %d", name, len(doc.Color))
		}
	}
	if doc.Size != nil {
		if len(doc.Size.Min) == 3 && len(doc.Size.Max) == 3 {
			c.Size = &entity.BBox{Min: vec(doc.Size.Min), Max: vec(doc.Size.Max)}
		} else {
			reportValue(r, loc, "class '%s': size needs 3-component min and max", name)
		}
	}
	for _, base := range doc.Base {
		c.SuperClasses = append(c.SuperClasses, norm.NFC.String(base))
	}
	for _, pd := range doc.Properties {
		p, ok := toProperty(name, loc, pd, r)
		if !ok {
			continue
		}
		if entity.FindProperty(c.PropertyDefinitions, p.Key) >= 0 {
			reportValue(r, loc, "class '%s': duplicate property '%s'", name, p.Key)
			continue
		}
		c.PropertyDefinitions = append(c.PropertyDefinitions, p)
	}
	return c, true
}

func toProperty(class string, loc source.Location, pd propertyDoc, r diag.Reporter) (entity.PropertyDefinition, bool) {
	key := norm.NFC.String(pd.Key)
	if key == "" {
		reportValue(r, loc, "class '%s': property without a key", class)
		return entity.PropertyDefinition{}, false
	}
	typ := entity.PropString
	if pd.Type != "" {
		t, err := entity.ParsePropertyType(pd.Type)
		if err != nil {
			diag.ReportWarning(r, diag.DclInvalidPropertyType, loc,
				fmt.Sprintf("class '%s', property '%s': %v", class, key, err)).Emit()
			return entity.PropertyDefinition{}, false
		}
		typ = t
	}

	p := entity.NewProperty(key, typ, pd.Short, pd.Long, pd.ReadOnly)
	if pd.Default != nil {
		v := formatDefault(pd.Default)
		p.DefaultValue = &v
	}
	switch typ {
	case entity.PropChoice:
		for _, ch := range pd.Choices {
			p.Choices = append(p.Choices, entity.ChoiceOption{Value: ch.Value, Description: ch.Description})
		}
	case entity.PropFlags:
		for _, o := range pd.Options {
			if o.Value <= 0 || o.Value&(o.Value-1) != 0 {
				reportValue(r, loc, "class '%s', property '%s': flag value %d is not a single bit", class, key, o.Value)
				continue
			}
			p.AddOption(o.Value, o.Short, o.Long, o.Default)
		}
	case entity.PropUnknown, entity.PropTargetSource, entity.PropTargetDestination,
		entity.PropString, entity.PropBoolean, entity.PropInteger, entity.PropFloat:
	}
	return p, true
}

func location(file source.FileID, doc classDoc, pos source.LineCol) source.Location {
	if doc.Line > 0 {
		line, err := safecast.Conv[uint32](doc.Line)
		if err == nil {
			col, errCol := safecast.Conv[uint32](doc.Column)
			if errCol != nil {
				col = 0
			}
			return source.At(file, line, col)
		}
	}
	return source.At(file, pos.Line, pos.Col)
}

func vec(v []float64) entity.Vec3 {
	return entity.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func formatDefault(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

func reportValue(r diag.Reporter, loc source.Location, format string, args ...any) {
	diag.ReportWarning(r, diag.DclInvalidValue, loc, fmt.Sprintf(format, args...)).Emit()
}
