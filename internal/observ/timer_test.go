package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	if r := tm.Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("empty report = %+v", r)
	}
	parse := tm.Begin("parse")
	tm.End(parse, "3 lines")
	eval := tm.Begin("eval")
	tm.End(eval, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "parse" || r.Phases[0].Note != "3 lines" || r.Phases[1].Name != "eval" {
		t.Fatalf("report = %+v", r)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Fatalf("total %.3f below phase %.3f", r.TotalMS, r.Phases[0].DurationMS)
	}

	s := tm.Summary()
	for _, want := range []string{"timings:", "parse", "// 3 lines", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin("file"), "")
		}()
	}
	wg.Wait()
	if n := len(tm.Report().Phases); n != 16 {
		t.Fatalf("phases = %d; want 16", n)
	}
}
