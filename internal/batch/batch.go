// Package batch evaluates expression files in parallel.
//
// Each file holds one expression per line (see package calc). Files are
// processed by a bounded pool of workers; results keep the input order.
// Evaluated files are cached on disk by content digest.
package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"bigcalc/internal/calc"
	"bigcalc/internal/trace"
)

// Request describes a batch run.
type Request struct {
	Files    []string
	Jobs     int          // worker limit; <= 0 means GOMAXPROCS
	Cache    *DiskCache   // optional
	Progress ProgressSink // optional
}

// FileReport holds the results for one input file.
type FileReport struct {
	Path   string       `json:"path" msgpack:"path"`
	Digest string       `json:"digest,omitempty" msgpack:"digest,omitempty"`
	Cached bool         `json:"cached" msgpack:"cached"`
	Error  string       `json:"error,omitempty" msgpack:"error,omitempty"`
	Lines  []LineRecord `json:"lines" msgpack:"lines"`
}

// Failed counts the lines of f that did not evaluate.
func (f *FileReport) Failed() int {
	n := 0
	for i := range f.Lines {
		if f.Lines[i].Failed() {
			n++
		}
	}
	return n
}

// Report is the outcome of Run.
type Report struct {
	Files  []FileReport `json:"files" msgpack:"files"`
	Lines  int          `json:"lines" msgpack:"lines"`
	Failed int          `json:"failed" msgpack:"failed"`
}

// HasErrors reports whether any file or line failed.
func (r *Report) HasErrors() bool {
	if r.Failed > 0 {
		return true
	}
	for i := range r.Files {
		if r.Files[i].Error != "" {
			return true
		}
	}
	return false
}

// ErrNoRequest is returned by Run for a nil request.
var ErrNoRequest = errors.New("batch: nil request")

// Run evaluates req.Files. Unreadable files and failing lines are recorded in
// the report; the error return is reserved for cancellation.
func Run(ctx context.Context, req *Request) (*Report, error) {
	if req == nil {
		return nil, ErrNoRequest
	}
	report := &Report{Files: make([]FileReport, len(req.Files))}
	if len(req.Files) == 0 {
		return report, nil
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "batch", trace.CurrentSpan(ctx))
	root.WithExtra("files", strconv.Itoa(len(req.Files))).WithExtra("jobs", strconv.Itoa(jobs))

	r := &runner{req: req, tracer: tracer, parent: root.ID()}
	for _, path := range req.Files {
		r.emit(Event{File: path, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Files)))
	for i, path := range req.Files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// index i is owned by this goroutine
			report.Files[i] = r.file(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		root.End("canceled")
		return nil, err
	}

	for i := range report.Files {
		report.Lines += len(report.Files[i].Lines)
		report.Failed += report.Files[i].Failed()
	}
	root.WithExtra("lines", strconv.Itoa(report.Lines)).WithExtra("failed", strconv.Itoa(report.Failed))
	root.End("")
	return report, nil
}

type runner struct {
	req    *Request
	tracer trace.Tracer
	parent uint64
}

func (r *runner) emit(evt Event) {
	if r.req.Progress != nil {
		r.req.Progress.OnEvent(evt)
	}
}

func (r *runner) file(path string) FileReport {
	start := time.Now()
	r.emit(Event{File: path, Status: StatusWorking})
	span := trace.Begin(r.tracer, trace.ScopeFile, "file:"+path, r.parent)

	fr, status, err := r.evaluate(path, span.ID())
	evt := Event{
		File:    path,
		Status:  status,
		Lines:   len(fr.Lines),
		Failed:  fr.Failed(),
		Err:     err,
		Elapsed: time.Since(start),
	}
	if err != nil {
		fr.Error = err.Error()
		span.End(err.Error())
	} else {
		span.WithExtra("lines", strconv.Itoa(evt.Lines)).End(string(status))
	}
	r.emit(evt)
	return fr
}

func (r *runner) evaluate(path string, spanID uint64) (FileReport, Status, error) {
	fr := FileReport{Path: path}
	content, err := os.ReadFile(path)
	if err != nil {
		return fr, StatusError, err
	}
	key := DigestOf(content)
	fr.Digest = key.String()

	lines, ok, err := r.req.Cache.Get(key)
	if err != nil {
		trace.Point(r.tracer, trace.ScopeFile, "cache", err.Error(), spanID)
	}
	if ok {
		fr.Cached = true
		fr.Lines = lines
		return fr, StatusCached, nil
	}

	results, err := calc.EvalAll(bytes.NewReader(content))
	if err != nil {
		return fr, StatusError, err
	}
	fr.Lines = make([]LineRecord, 0, len(results))
	for i := range results {
		rec, err := newLineRecord(&results[i])
		if err != nil {
			return fr, StatusError, fmt.Errorf("%s: %w", path, err)
		}
		if rec.Failed() {
			trace.Point(r.tracer, trace.ScopeLine, "line:"+strconv.Itoa(results[i].Line), rec.Error, spanID)
		} else {
			trace.Point(r.tracer, trace.ScopeLine, "line:"+strconv.Itoa(results[i].Line), rec.Expr, spanID)
		}
		fr.Lines = append(fr.Lines, rec)
	}

	if err := r.req.Cache.Put(key, fr.Lines); err != nil {
		trace.Point(r.tracer, trace.ScopeFile, "cache", err.Error(), spanID)
	}
	return fr, StatusDone, nil
}
