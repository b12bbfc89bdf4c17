// Package progress reports the startup catalog load, one tick per source.
package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// LoadReporter renders catalog-load progress to the terminal. In CI it falls
// back to line-by-line prints, since a redrawing bar garbles captured logs.
// A nil *LoadReporter is valid and silent, so callers that want no output
// just pass nil.
type LoadReporter struct {
	bar   *progressbar.ProgressBar
	plain bool
	total int
	done  int
}

// NewLoadReporter picks the output mode from the environment.
func NewLoadReporter() *LoadReporter {
	return &LoadReporter{
		plain: os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "",
	}
}

// Begin starts a load over the given number of sources.
func (r *LoadReporter) Begin(sources int) {
	if r == nil {
		return
	}
	r.total = sources
	r.done = 0
	if r.plain {
		fmt.Fprintf(os.Stderr, "Loading item catalog from %d sources\n", sources)
		return
	}
	r.bar = progressbar.NewOptions(sources,
		progressbar.OptionSetDescription("Loading item catalog"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// SourceDone records one source as finished, successfully or not.
func (r *LoadReporter) SourceDone(name string, failed bool) {
	if r == nil {
		return
	}
	r.done++
	if r.plain {
		status := "loaded"
		if failed {
			status = "FAILED"
		}
		fmt.Fprintf(os.Stderr, "[%d/%d] %s: %s\n", r.done, r.total, name, status)
		return
	}
	if r.bar != nil {
		r.bar.Describe(name)
		_ = r.bar.Add(1)
	}
}

// End finishes the load.
func (r *LoadReporter) End() {
	if r == nil {
		return
	}
	if r.plain {
		fmt.Fprintln(os.Stderr, "Catalog load complete")
		return
	}
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}
