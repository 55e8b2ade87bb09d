package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"entdef/internal/cache"
	"entdef/internal/diag"
	"entdef/internal/entity"
	"entdef/internal/observ"
	"entdef/internal/project"
)

const baseTOML = `[[class]]
type = "base"
name = "Targetname"
properties = [{ key = "targetname", type = "target_source" }]

[[class]]
type = "point"
name = "info_null"
base = ["Targetname"]
`

const monstersYAML = `class:
  - type: point
    name: monster_army
    base: [Targetname, Monster]
  - type: point
    name: monster_army
`

func writeDefs(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"base.toml":     baseTOML,
		"monsters.yaml": monstersYAML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir, []string{filepath.Join(dir, "base.toml"), filepath.Join(dir, "monsters.yaml")}
}

func classNames(classes []entity.ClassInfo) []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.Name
	}
	return out
}

func TestRunCombined(t *testing.T) {
	dir, files := writeDefs(t)
	timer := observ.NewTimer()
	res, err := Run(context.Background(), Request{Files: files, Mode: project.ModeCombined, BaseDir: dir, Jobs: 2, Timer: timer})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := classNames(res.Classes); !slices.Equal(got, []string{"info_null", "monster_army"}) {
		t.Fatalf("classes: %v", got)
	}
	// monster_army sees Targetname from the other file
	if _, ok := res.Classes[1].Property("targetname"); !ok {
		t.Fatalf("cross-file inheritance failed")
	}
	if res.Bag.CountCode(diag.DefUnresolvedSuperClass) != 1 || res.Bag.CountCode(diag.DefRedundantClass) != 1 {
		t.Fatalf("diagnostics:\n%s", diag.FormatShortDiagnostics(res.Diagnostics(), res.FileSet, true))
	}
	if res.HasErrors() {
		t.Fatalf("no errors expected")
	}
	if res.Files[0].Declared != 2 || res.Files[1].Declared != 2 {
		t.Fatalf("declared: %d %d", res.Files[0].Declared, res.Files[1].Declared)
	}
	if len(timer.Phases()) < 3 {
		t.Fatalf("timer phases: %+v", timer.Phases())
	}
}

func TestRunPerFile(t *testing.T) {
	_, files := writeDefs(t)
	res, err := Run(context.Background(), Request{Files: files, Mode: project.ModePerFile})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := classNames(res.Files[1].Classes); !slices.Equal(got, []string{"monster_army"}) {
		t.Fatalf("monsters: %v", got)
	}
	// resolved in isolation, Targetname is unknown to monsters.yaml
	if n := res.Files[1].Bag.CountCode(diag.DefUnresolvedSuperClass); n != 2 {
		t.Fatalf("unresolved warnings: %d", n)
	}
	if got := classNames(res.Classes); !slices.Equal(got, []string{"info_null", "monster_army"}) {
		t.Fatalf("classes: %v", got)
	}
}

func TestRunReportsBadFiles(t *testing.T) {
	dir, files := writeDefs(t)
	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"class": [`), 0o600); err != nil {
		t.Fatal(err)
	}
	files = append(files, filepath.Join(dir, "missing.toml"), broken, filepath.Join(dir, "quake.fgd"))

	res, err := Run(context.Background(), Request{Files: files, Mode: project.ModeCombined})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.HasErrors() {
		t.Fatalf("expected errors")
	}
	if !res.Files[2].Failed || res.Files[2].Bag.CountCode(diag.IOLoadFileError) != 1 {
		t.Fatalf("missing file not reported")
	}
	if res.Files[3].Bag.CountCode(diag.DclDecodeError) != 1 {
		t.Fatalf("broken file not reported")
	}
	if !res.Files[4].Failed {
		t.Fatalf("unsupported extension not reported")
	}
	if len(res.Classes) != 2 {
		t.Fatalf("good files should still resolve, got %v", classNames(res.Classes))
	}
}

func TestRunUsesCache(t *testing.T) {
	_, files := writeDefs(t)
	c, err := cache.OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, mode := range []project.ResolveMode{project.ModeCombined, project.ModePerFile} {
		req := Request{Files: files, Mode: mode, Cache: c}
		first, err := Run(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		second, err := Run(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		if first.CacheHit || !second.CacheHit {
			t.Fatalf("%s: cache hits %v/%v", mode, first.CacheHit, second.CacheHit)
		}
		if len(first.Classes) != len(second.Classes) {
			t.Fatalf("%s: cached result differs", mode)
		}
		for i := range first.Classes {
			if !entity.Equal(first.Classes[i], second.Classes[i]) {
				t.Fatalf("%s: class %d differs after cache round trip", mode, i)
			}
		}
		if len(first.Diagnostics()) != len(second.Diagnostics()) {
			t.Fatalf("%s: diagnostics differ: %d vs %d", mode, len(first.Diagnostics()), len(second.Diagnostics()))
		}
	}

	// another flags key is another entry
	res, err := Run(context.Background(), Request{Files: files, Mode: project.ModeCombined, Cache: c, FlagsKey: "flags"})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Fatalf("flags key must take part in the cache key")
	}
}

func TestRunEmitsEvents(t *testing.T) {
	_, files := writeDefs(t)
	var (
		mu     sync.Mutex
		events []Event
	)
	sink := FuncSink(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})
	if _, err := Run(context.Background(), Request{Files: files, Mode: project.ModePerFile, Progress: sink}); err != nil {
		t.Fatal(err)
	}
	count := func(stage Stage, status Status) int {
		n := 0
		for _, e := range events {
			if e.Stage == stage && e.Status == status {
				n++
			}
		}
		return n
	}
	if count(StageLoad, StatusQueued) != 2 || count(StageLoad, StatusDone) != 2 || count(StageResolve, StatusDone) != 2 {
		t.Fatalf("events: %+v", events)
	}
}

func TestRunCancelled(t *testing.T) {
	_, files := writeDefs(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Request{Files: files, Mode: project.ModeCombined})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "a.toml", Stage: StageLoad, Status: StatusDone})
	if e := <-ch; e.File != "a.toml" {
		t.Fatalf("event: %+v", e)
	}
	ChannelSink{}.OnEvent(Event{})
	NopSink{}.OnEvent(Event{})
}
