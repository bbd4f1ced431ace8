// Package linear provides a synchronous, line-oriented progress reporter.
package linear

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/pnprune/internal/core/ports"
	"go.trai.ch/pnprune/internal/ui/output"
	"go.trai.ch/pnprune/internal/ui/style"
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter implements ports.Reporter for non-interactive output.
// It prints one line per step transition, prefixed with the step name.
type Reporter struct {
	w      io.Writer
	output *termenv.Output

	mu    sync.Mutex
	steps map[string]step // spanID -> step
}

type step struct {
	name  string
	start time.Time
}

// NewReporter creates a Reporter writing to w. A nil writer falls back to stderr.
func NewReporter(w io.Writer) *Reporter {
	out := output.New(w)
	return &Reporter{
		w:      out,
		output: out,
		steps:  make(map[string]step),
	}
}

// OnPlan prints the workspaces a prune retains.
func (r *Reporter) OnPlan(workspaces []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.w, "Retaining %d workspace(s): %s\n",
		len(workspaces), strings.Join(workspaces, ", "))
}

// OnStepStart prints a step start message.
func (r *Reporter) OnStepStart(id, _ /* parentID */, name string, start time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps[id] = step{name: name, start: start}

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.w, "%s Starting...\n", prefix)
}

// OnStepComplete prints the step outcome and its duration.
func (r *Reporter) OnStepComplete(id string, end time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.steps[id]
	if !ok {
		return
	}
	delete(r.steps, id)

	duration := end.Sub(s.start)
	prefix := fmt.Sprintf("[%s]", s.name)

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.w, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
		return
	}

	symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.w, "%s %s Completed in %v\n", prefix, symbol, duration)
}
