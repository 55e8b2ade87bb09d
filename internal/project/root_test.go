package project

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestAncestorsStopsAtRoot(t *testing.T) {
	start := filepath.Join(string(filepath.Separator), "a", "b")
	got := slices.Collect(ancestors(start))
	want := []string{start, filepath.Dir(start), string(filepath.Separator)}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFindManifestSkipsDirectories(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "mod", ManifestName)
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte("[project]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	path, ok, err := FindManifest(filepath.Join(root, "mod"))
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(root, ManifestName) {
		t.Fatalf("path = %s", path)
	}
}
