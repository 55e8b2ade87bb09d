package pipeline

import (
	"fmt"
	"time"
)

// Stage names a phase of a run.
type Stage string

const (
	StageLoad    Stage = "load" // read + decode
	StageResolve Stage = "resolve"
	StageCache   Stage = "cache" // lookups and stores
)

var stageOrder = [...]Stage{StageLoad, StageResolve, StageCache}

// Status is the state of a file (or of the whole run) within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event is one progress report. An empty File means the event concerns the
// whole run: the combined resolution or a cache store.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

func (e Event) String() string {
	target := e.File
	if target == "" {
		target = "*"
	}
	s := fmt.Sprintf("%s %s %s", e.Stage, e.Status, target)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// ProgressSink receives events from decode and resolve workers, so
// implementations must tolerate concurrent calls.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings accumulates wall time per stage; the zero value is ready to use.
// Run records stages from its own goroutine only.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration, len(stageOrder))
	}
	t.stages[stage] += dur
}

func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Recorded returns the stages that have a duration, in pipeline order.
func (t Timings) Recorded() []Stage {
	var out []Stage
	for _, s := range stageOrder {
		if t.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// Total is the sum over all recorded stages.
func (t Timings) Total() time.Duration {
	var total time.Duration
	for _, d := range t.stages {
		total += d
	}
	return total
}
