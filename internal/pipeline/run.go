package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"entdef/internal/cache"
	"entdef/internal/defs"
	"entdef/internal/diag"
	"entdef/internal/entity"
	"entdef/internal/inherit"
	"entdef/internal/observ"
	"entdef/internal/project"
	"entdef/internal/source"
)

// Request describes one load-and-resolve run.
type Request struct {
	Files          []string
	Mode           project.ResolveMode
	FlagsKey       string
	Jobs           int // <= 0 means GOMAXPROCS
	MaxDiagnostics int // per bag, <= 0 means unbounded
	BaseDir        string
	Cache          *cache.DiskCache
	Progress       ProgressSink
	Timer          *observ.Timer
}

// FileResult is the outcome for one declaration file.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Declared int                 // classes decoded from the file
	Classes  []entity.ClassInfo // resolved classes, per-file mode only
	Bag      *diag.Bag
	CacheHit bool
	Failed   bool // file could not be read
}

// Result holds everything a run produced.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	// Classes are the resolved classes: the combined resolution, or the
	// per-file results concatenated in request order.
	Classes []entity.ClassInfo
	// Bag receives diagnostics of the combined resolution.
	Bag      *diag.Bag
	CacheHit bool
	Timings  Timings
}

// Diagnostics returns every diagnostic of the run, sorted by location.
func (r *Result) Diagnostics() []diag.Diagnostic {
	all := diag.NewBag(0)
	for _, f := range r.Files {
		all.Merge(f.Bag)
	}
	all.Merge(r.Bag)
	all.Sort()
	return all.Items()
}

// HasErrors reports whether any bag holds an error.
func (r *Result) HasErrors() bool {
	if r.Bag != nil && r.Bag.HasErrors() {
		return true
	}
	for _, f := range r.Files {
		if f.Bag != nil && f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Run loads every requested file and resolves the declarations. Files are
// decoded in parallel; in per-file mode they are also resolved in parallel.
// Problems with individual files end up in their bags; the returned error is
// reserved for cancellation.
func Run(ctx context.Context, req Request) (*Result, error) {
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	res := &Result{
		FileSet: source.NewFileSetWithBase(req.BaseDir),
		Files:   make([]FileResult, len(req.Files)),
		Bag:     diag.NewBag(req.MaxDiagnostics),
	}
	emitAll(req.Progress, req.Files, StageLoad, StatusQueued)

	// FileSet не потокобезопасен: читаем файлы последовательно, дальше только чтение
	start := time.Now()
	done := req.Timer.Track("read")
	loaded := res.readFiles(req)
	done(fmt.Sprintf("%d/%d files", loaded, len(req.Files)))
	res.Timings.Add(StageLoad, time.Since(start))

	var err error
	switch req.Mode {
	case project.ModePerFile:
		err = res.runPerFile(ctx, req, jobs)
	case project.ModeCombined:
		err = res.runCombined(ctx, req, jobs)
	default:
		err = fmt.Errorf("unknown resolve mode %d", req.Mode)
	}
	if err != nil {
		return res, err
	}
	return res, nil
}

func (res *Result) readFiles(req Request) int {
	loaded := 0
	for i, path := range req.Files {
		fr := &res.Files[i]
		fr.Path = path
		fr.FileID = source.NoFile
		fr.Bag = diag.NewBag(req.MaxDiagnostics)
		if !defs.Supported(path) {
			fr.Failed = true
			diag.ReportError(diag.BagReporter{Bag: fr.Bag}, diag.IOLoadFileError, source.Unknown(),
				fmt.Sprintf("%s: unsupported declaration file extension", path)).Emit()
			emit(req.Progress, Event{File: path, Stage: StageLoad, Status: StatusError})
			continue
		}
		id, err := res.FileSet.Load(path)
		if err != nil {
			fr.Failed = true
			diag.ReportError(diag.BagReporter{Bag: fr.Bag}, diag.IOLoadFileError, source.Unknown(),
				"failed to load file: "+err.Error()).Emit()
			emit(req.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		fr.FileID = id
		loaded++
	}
	return loaded
}

// decode decodes the listed files in parallel into their own bags.
func (res *Result) decode(ctx context.Context, req Request, jobs int, files []int) ([][]entity.ClassInfo, error) {
	out := make([][]entity.ClassInfo, len(res.Files))
	if len(files) == 0 {
		return out, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for _, i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fr := &res.Files[i]
			emit(req.Progress, Event{File: fr.Path, Stage: StageLoad, Status: StatusWorking})
			start := time.Now()
			// индекс i уникален для горутины, мьютекс не нужен
			out[i] = defs.Decode(res.FileSet, fr.FileID, diag.BagReporter{Bag: fr.Bag})
			fr.Declared = len(out[i])
			status := StatusDone
			if fr.Bag.HasErrors() {
				status = StatusError
			}
			emit(req.Progress, Event{File: fr.Path, Stage: StageLoad, Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}
	return out, g.Wait()
}

func (res *Result) runPerFile(ctx context.Context, req Request, jobs int) error {
	var pending []int
	for i := range res.Files {
		fr := &res.Files[i]
		if fr.Failed {
			continue
		}
		if classes, diags, ok := res.cacheGet(req, []int{i}); ok {
			fr.Classes = classes
			fr.CacheHit = true
			for _, d := range diags {
				fr.Bag.Add(d)
			}
			emit(req.Progress, Event{File: fr.Path, Stage: StageCache, Status: StatusDone})
			continue
		}
		pending = append(pending, i)
	}

	start := time.Now()
	done := req.Timer.Track("decode")
	decoded, err := res.decode(ctx, req, jobs, pending)
	done(fmt.Sprintf("%d files", len(pending)))
	res.Timings.Add(StageLoad, time.Since(start))
	if err != nil {
		return err
	}

	start = time.Now()
	done = req.Timer.Track("resolve")
	if len(pending) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(pending)))
		for _, i := range pending {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				fr := &res.Files[i]
				emit(req.Progress, Event{File: fr.Path, Stage: StageResolve, Status: StatusWorking})
				t0 := time.Now()
				fr.Classes = inherit.Resolve(decoded[i], diag.BagReporter{Bag: fr.Bag}, inherit.WithFlagsKey(req.FlagsKey))
				status := StatusDone
				if fr.Bag.HasErrors() {
					status = StatusError
				}
				emit(req.Progress, Event{File: fr.Path, Stage: StageResolve, Status: status, Elapsed: time.Since(t0)})
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			done("cancelled")
			return err
		}
	}
	done(fmt.Sprintf("%d files", len(pending)))
	res.Timings.Add(StageResolve, time.Since(start))

	for _, i := range pending {
		fr := &res.Files[i]
		res.cachePut(req, []int{i}, fr.Classes, fr.Bag.Items())
	}
	res.CacheHit = len(pending) == 0 && len(res.Files) > 0
	for i := range res.Files {
		res.Classes = append(res.Classes, res.Files[i].Classes...)
	}
	return nil
}

func (res *Result) runCombined(ctx context.Context, req Request, jobs int) error {
	var files []int
	for i := range res.Files {
		if !res.Files[i].Failed {
			files = append(files, i)
		}
	}
	if classes, diags, ok := res.cacheGet(req, files); ok {
		res.Classes = classes
		res.CacheHit = true
		for _, d := range diags {
			res.Bag.Add(d)
		}
		for _, i := range files {
			res.Files[i].CacheHit = true
			emit(req.Progress, Event{File: res.Files[i].Path, Stage: StageCache, Status: StatusDone})
		}
		return nil
	}

	start := time.Now()
	done := req.Timer.Track("decode")
	decoded, err := res.decode(ctx, req, jobs, files)
	done(fmt.Sprintf("%d files", len(files)))
	res.Timings.Add(StageLoad, time.Since(start))
	if err != nil {
		return err
	}

	var all []entity.ClassInfo
	for _, i := range files {
		all = append(all, decoded[i]...)
	}
	start = time.Now()
	done = req.Timer.Track("resolve")
	emit(req.Progress, Event{Stage: StageResolve, Status: StatusWorking})
	res.Classes = inherit.Resolve(all, diag.BagReporter{Bag: res.Bag}, inherit.WithFlagsKey(req.FlagsKey))
	elapsed := time.Since(start)
	emit(req.Progress, Event{Stage: StageResolve, Status: StatusDone, Elapsed: elapsed})
	done(fmt.Sprintf("%d classes", len(all)))
	res.Timings.Add(StageResolve, elapsed)

	var diags []diag.Diagnostic
	for _, i := range files {
		diags = append(diags, res.Files[i].Bag.Items()...)
	}
	diags = append(diags, res.Bag.Items()...)
	res.cachePut(req, files, res.Classes, diags)
	return nil
}

func (res *Result) cacheKey(req Request, files []int) project.Digest {
	hashes := make([]project.Digest, 0, len(files))
	settings := []string{req.Mode.String(), req.FlagsKey}
	for _, i := range files {
		fr := &res.Files[i]
		hashes = append(hashes, res.FileSet.Get(fr.FileID).Hash)
		settings = append(settings, res.FileSet.Get(fr.FileID).Path)
	}
	return cache.Key(hashes, settings...)
}

func (res *Result) cacheGet(req Request, files []int) ([]entity.ClassInfo, []diag.Diagnostic, bool) {
	if req.Cache == nil || len(files) == 0 {
		return nil, nil, false
	}
	start := time.Now()
	defer func() { res.Timings.Add(StageCache, time.Since(start)) }()

	var payload cache.Payload
	ok, err := req.Cache.Get(res.cacheKey(req, files), &payload)
	if err != nil || !ok {
		// битая запись кеша равносильна промаху
		return nil, nil, false
	}
	classes, diags := payload.Restore(res.FileSet)
	return classes, diags, true
}

func (res *Result) cachePut(req Request, files []int, classes []entity.ClassInfo, diags []diag.Diagnostic) {
	if req.Cache == nil || len(files) == 0 {
		return
	}
	start := time.Now()
	defer func() { res.Timings.Add(StageCache, time.Since(start)) }()

	paths := make([]string, len(files))
	for n, i := range files {
		paths[n] = res.Files[i].Path
	}
	if err := req.Cache.Put(res.cacheKey(req, files), cache.NewPayload(res.FileSet, paths, classes, diags)); err != nil {
		emit(req.Progress, Event{Stage: StageCache, Status: StatusError, Err: err})
	}
}
