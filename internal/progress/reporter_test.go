package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LineReporter{Out: &buf}
	r.Start(2)

	var wg sync.WaitGroup
	for _, p := range []string{"a.html", "b.html"} {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			r.Done(p)
		}(p)
	}
	wg.Wait()
	r.Finish()

	out := buf.String()
	for _, want := range []string{"Decorating 2 pages", "[1/2]", "[2/2]", "Decoration complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q lacks %q", out, want)
		}
	}
}

func TestNewReporterVerbose(t *testing.T) {
	if _, ok := NewReporter(true).(*LineReporter); !ok {
		t.Error("verbose mode should report line by line")
	}
}
