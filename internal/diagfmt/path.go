package diagfmt

import (
	"fmt"

	"entdef/internal/source"
)

// locationString renders loc as path:line:col, or just the path when the
// position is unknown.
func locationString(fs *source.FileSet, loc source.Location, mode PathMode) string {
	path := fs.DisplayPath(loc, mode.mode())
	if !loc.HasPosition() {
		return path
	}
	return fmt.Sprintf("%s:%d:%d", path, loc.Line, loc.Column)
}
