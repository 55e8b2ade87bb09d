package main

import (
	"fmt"
	"io"
	"time"

	"entdef/internal/pipeline"
)

var stageLabels = map[pipeline.Stage]string{
	pipeline.StageLoad:    "loaded",
	pipeline.StageResolve: "resolved",
	pipeline.StageCache:   "cache",
}

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	for _, stage := range timings.Recorded() {
		fmt.Fprintf(out, "%s %.1f ms\n", stageLabels[stage], toMillis(timings.Duration(stage)))
	}
	if len(timings.Recorded()) > 1 {
		fmt.Fprintf(out, "total %.1f ms\n", toMillis(timings.Total()))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
