package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

// FileSet owns the declaration files of one run. Ids are dense and never
// reused; re-adding a path creates a new version and repoints the index.
type FileSet struct {
	files   []File
	byPath  map[string]FileID // latest version per normalized path
	baseDir string            // для relative путей; пусто = cwd
}

func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

func NewFileSetWithBase(baseDir string) *FileSet {
	s := NewFileSet()
	s.baseDir = baseDir
	return s
}

func (s *FileSet) SetBaseDir(dir string) { s.baseDir = dir }

// BaseDir falls back to the working directory when unset.
func (s *FileSet) BaseDir() string {
	if s.baseDir != "" {
		return s.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add registers already normalized content under path.
func (s *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(s.files))
	if err != nil || FileID(n) == NoFile {
		panic(fmt.Errorf("file set is full: %w", err))
	}
	id := FileID(n)
	path = normalizePath(path)
	s.files = append(s.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	s.byPath[path] = id
	return id
}

// Load reads path from disk, strips a BOM and folds CRLF before Add.
func (s *FileSet) Load(path string) (FileID, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from the caller
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	raw, bom := removeBOM(raw)
	if bom {
		flags |= FileHadBOM
	}
	raw, crlf := normalizeCRLF(raw)
	if crlf {
		flags |= FileNormalizedCRLF
	}
	return s.Add(path, raw, flags), nil
}

// AddVirtual registers in-memory content (tests, stdin).
func (s *FileSet) AddVirtual(name string, content []byte) FileID {
	return s.Add(name, content, FileVirtual)
}

// Get returns nil for an unknown id.
func (s *FileSet) Get(id FileID) *File {
	if int(id) < len(s.files) {
		return &s.files[id]
	}
	return nil
}

// GetLatest returns the newest version registered under path.
func (s *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := s.byPath[normalizePath(path)]
	return id, ok
}

// Position maps a byte offset in file id to line and column.
func (s *FileSet) Position(id FileID, off uint32) LineCol {
	if f := s.Get(id); f != nil {
		return toLineCol(f.LineIdx, off)
	}
	return LineCol{}
}

// DisplayPath formats loc's file path; mode is absolute, relative,
// basename or auto.
func (s *FileSet) DisplayPath(loc Location, mode string) string {
	if s == nil || !loc.HasFile() {
		return "<unknown>"
	}
	f := s.Get(loc.File)
	if f == nil {
		return "<unknown>"
	}
	return f.FormatPath(mode, s.BaseDir())
}

func (f *File) LineCount() uint32 {
	n, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index overflow: %w", err))
	}
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		n++ // последняя строка без \n
	}
	return n
}

// GetLine returns line n (1-based) without its newline, or "".
func (f *File) GetLine(n uint32) string {
	if n == 0 || n > f.LineCount() {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n-1) < len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// LinesWithPrefix lists lines whose trimmed text starts with prefix.
func (f *File) LinesWithPrefix(prefix string) []uint32 {
	var out []uint32
	for n := range f.LineCount() {
		if strings.HasPrefix(strings.TrimSpace(f.GetLine(n+1)), prefix) {
			out = append(out, n+1)
		}
	}
	return out
}

// FormatPath renders f.Path; unknown modes print it unchanged.
func (f *File) FormatPath(mode, baseDir string) string {
	var (
		out string
		err error
	)
	switch mode {
	case "absolute":
		out, err = AbsolutePath(f.Path)
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		out, err = RelativePath(f.Path, baseDir)
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return BaseName(f.Path)
		}
		return f.Path
	default:
		return f.Path
	}
	if err != nil {
		return f.Path
	}
	return out
}
