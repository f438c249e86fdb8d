package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ojet-labs/ojet/internal/tasks"
)

// ErrSkipped marks a check that chose not to run.
var ErrSkipped = errors.New("skipped")

// Executor runs one CLI task. *tasks.Runner satisfies it.
type Executor interface {
	Execute(ctx context.Context, task tasks.Task) error
}

// Check is one named assertion.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// Status is the outcome of a check.
type Status int

const (
	StatusPass Status = iota
	StatusFail
	StatusSkip
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return " OK "
	case StatusFail:
		return "FAIL"
	case StatusSkip:
		return "SKIP"
	default:
		return "????"
	}
}

// Result records the outcome of one check.
type Result struct {
	Name     string
	Status   Status
	Err      error
	Duration time.Duration
}

// Report holds the results of a run, in check order.
type Report struct {
	Results []Result
}

// Failed returns the failing results.
func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Status == StatusFail {
			failed = append(failed, res)
		}
	}
	return failed
}

// OK reports whether no check failed.
func (r Report) OK() bool {
	return len(r.Failed()) == 0
}

// Err returns an error summarizing the failures, or nil.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failed))
	for _, res := range failed {
		errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
	}
	return fmt.Errorf("%d of %d checks failed: %w", len(failed), len(r.Results), errors.Join(errs...))
}

// Write prints one line per check.
func (r Report) Write(w io.Writer) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusFail:
			fmt.Fprintf(w, "  [%s] %s: %v\n", res.Status, res.Name, res.Err)
		default:
			fmt.Fprintf(w, "  [%s] %s\n", res.Status, res.Name)
		}
	}
	fmt.Fprintf(w, "%d passed, %d failed, %d skipped\n", r.count(StatusPass), r.count(StatusFail), r.count(StatusSkip))
}

func (r Report) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Run executes every check in order. A failing or panicking check is
// recorded and the run continues with the next one.
func Run(ctx context.Context, checks []Check) Report {
	report := Report{Results: make([]Result, 0, len(checks))}
	for _, c := range checks {
		start := time.Now()
		err := runCheck(ctx, c)
		res := Result{Name: c.Name, Err: err, Duration: time.Since(start)}
		switch {
		case err == nil:
			res.Status = StatusPass
		case errors.Is(err, ErrSkipped):
			res.Status = StatusSkip
			res.Err = nil
		default:
			res.Status = StatusFail
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func runCheck(ctx context.Context, c Check) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.Run(ctx)
}
