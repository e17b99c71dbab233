// internal/progress/reporter.go
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives progress while pages are decorated. Implementations
// must be safe for concurrent use.
type Reporter interface {
	Start(total int)
	Done(page string)
	Finish()
}

// NewReporter picks a line-oriented reporter in CI or when verbose output
// is requested, and a progress bar otherwise.
func NewReporter(verbose bool) Reporter {
	if verbose || os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{Out: os.Stderr}
	}
	return &BarReporter{}
}

// BarReporter displays a progress bar in the terminal.
type BarReporter struct {
	bar *progressbar.ProgressBar
}

func (r *BarReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Decorating pages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Done(page string) {
	if r.bar != nil {
		r.bar.Describe(page)
		_ = r.bar.Add(1)
	}
}

func (r *BarReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter prints one line per page.
type LineReporter struct {
	Out io.Writer

	mu      sync.Mutex
	total   int
	current int
}

func (r *LineReporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total, r.current = total, 0
	fmt.Fprintf(r.Out, "Decorating %d pages\n", total)
}

func (r *LineReporter) Done(page string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current++
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", r.current, r.total, page)
}

func (r *LineReporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.Out, "Decoration complete")
}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(int)   {}
func (Nop) Done(string) {}
func (Nop) Finish()     {}
