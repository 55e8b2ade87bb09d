package defs

import (
	"fmt"

	"entdef/internal/diag"
	"entdef/internal/entity"
	"entdef/internal/source"
)

// LoadFile registers path in fs and decodes its declarations. A read failure
// is returned as an error; everything found inside the document is reported.
func LoadFile(fs *source.FileSet, path string, r diag.Reporter) (source.FileID, []entity.ClassInfo, error) {
	if !Supported(path) {
		return source.NoFile, nil, fmt.Errorf("%s: unsupported declaration file extension", path)
	}
	id, err := fs.Load(path)
	if err != nil {
		return source.NoFile, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return id, Decode(fs, id, r), nil
}

// Decode decodes the declarations of a file already in fs. The format comes
// from the file extension. An undecodable document yields one DclDecodeError
// and no classes.
func Decode(fs *source.FileSet, id source.FileID, r diag.Reporter) []entity.ClassInfo {
	f := fs.Get(id)
	if f == nil {
		return nil
	}
	var (
		raws []rawClass
		err  error
	)
	switch DetectFormat(f.Path) {
	case FormatTOML:
		raws, err = decodeTOML(f)
	case FormatYAML:
		raws, err = decodeYAML(f)
	case FormatJSON:
		raws, err = decodeJSON(fs, f)
	case FormatUnknown:
		err = fmt.Errorf("unsupported declaration file extension")
	}
	if err != nil {
		diag.ReportError(r, diag.DclDecodeError, source.At(id, 1, 1), fmt.Sprintf("%s: %v", f.Path, err)).Emit()
		return nil
	}
	return toClasses(id, raws, r)
}

// DecodeBytes decodes content as if it were read from name. Used for stdin
// and tests.
func DecodeBytes(fs *source.FileSet, name string, content []byte, r diag.Reporter) (source.FileID, []entity.ClassInfo) {
	id := fs.AddVirtual(name, content)
	return id, Decode(fs, id, r)
}
