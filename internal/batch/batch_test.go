package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"bigcalc/internal/trace"
)

func writeInputs(t *testing.T, files map[string]string) (dir string, paths []string) {
	t.Helper()
	dir = t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		if _, ok := files[name]; ok {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return dir, paths
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) statuses(file string) []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Status
	for _, e := range r.events {
		if e.File == file {
			out = append(out, e.Status)
		}
	}
	return out
}

func texts(f *FileReport) []string {
	out := make([]string, len(f.Lines))
	for i := range f.Lines {
		out[i] = f.Lines[i].Text()
	}
	return out
}

func TestRun(t *testing.T) {
	_, paths := writeInputs(t, map[string]string{
		"a.txt": "1 + 2\n999999999 * 999999999\n",
		"b.txt": "# header\n-7 divmod 2\n5 cmp 5\n1 / 0\n",
		"c.txt": "",
	})
	missing := filepath.Join(filepath.Dir(paths[0]), "missing.txt")
	files := append(paths, missing)

	rec := &recorder{}
	report, err := Run(context.Background(), &Request{Files: files, Jobs: 2, Progress: rec})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Files) != 4 {
		t.Fatalf("got %d file reports", len(report.Files))
	}
	for i, f := range report.Files {
		if f.Path != files[i] {
			t.Fatalf("file %d = %s; want %s (input order)", i, f.Path, files[i])
		}
	}

	if diff := cmp.Diff([]string{"3", "999999998000000001"}, texts(&report.Files[0])); diff != "" {
		t.Errorf("a.txt mismatch (-want +got):\n%s", diff)
	}
	want := []string{"-3 -1", "0", "error: 1 / 0: division by zero"}
	if diff := cmp.Diff(want, texts(&report.Files[1])); diff != "" {
		t.Errorf("b.txt mismatch (-want +got):\n%s", diff)
	}
	if got := report.Files[1].Lines[0].Line; got != 2 {
		t.Errorf("b.txt first line number = %d; want 2", got)
	}
	if len(report.Files[2].Lines) != 0 || report.Files[2].Error != "" {
		t.Errorf("c.txt = %+v", report.Files[2])
	}
	if report.Files[3].Error == "" {
		t.Error("missing file has no error")
	}

	if report.Lines != 5 || report.Failed != 1 || !report.HasErrors() {
		t.Errorf("totals = %d lines, %d failed", report.Lines, report.Failed)
	}

	if diff := cmp.Diff([]Status{StatusQueued, StatusWorking, StatusDone}, rec.statuses(files[0])); diff != "" {
		t.Errorf("a.txt events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Status{StatusQueued, StatusWorking, StatusError}, rec.statuses(missing)); diff != "" {
		t.Errorf("missing.txt events mismatch (-want +got):\n%s", diff)
	}
}

func TestRunUsesCache(t *testing.T) {
	_, paths := writeInputs(t, map[string]string{
		"a.txt": "10 / 3\n",
		"b.txt": "10 / 3\n",
	})
	cache, err := OpenDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	first, err := Run(context.Background(), &Request{Files: paths[:1], Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].Cached {
		t.Fatal("first run hit the cache")
	}

	rec := &recorder{}
	second, err := Run(context.Background(), &Request{Files: paths[1:], Cache: cache, Progress: rec})
	if err != nil {
		t.Fatal(err)
	}
	got := second.Files[0]
	if !got.Cached {
		t.Fatal("same content did not hit the cache")
	}
	if got.Digest != first.Files[0].Digest {
		t.Fatalf("digest %s != %s", got.Digest, first.Files[0].Digest)
	}
	if diff := cmp.Diff([]string{"3"}, texts(&got)); diff != "" {
		t.Fatalf("cached result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Status{StatusQueued, StatusWorking, StatusCached}, rec.statuses(paths[1])); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	third, err := Run(context.Background(), &Request{Files: paths[1:], Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if third.Files[0].Cached {
		t.Fatal("cache hit after DropAll")
	}
}

func TestRunCanceled(t *testing.T) {
	_, paths := writeInputs(t, map[string]string{"a.txt": "1\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, &Request{Files: paths}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v; want context.Canceled", err)
	}
	if _, err := Run(context.Background(), nil); !errors.Is(err, ErrNoRequest) {
		t.Fatalf("Run(nil) error = %v", err)
	}
}

func TestRunTraces(t *testing.T) {
	_, paths := writeInputs(t, map[string]string{"a.txt": "1 + 1\nbad\n"})
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := Run(ctx, &Request{Files: paths, Jobs: 1}); err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Kind.String()+" "+ev.Name)
	}
	want := []string{
		"begin batch",
		"begin file:" + paths[0],
		"point line:1",
		"point line:2",
		"end file:" + paths[0],
		"end batch",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteReport(t *testing.T) {
	_, paths := writeInputs(t, map[string]string{"a.txt": "2 * -21\n7 cmp 8\nx\n"})
	report, err := Run(context.Background(), &Request{Files: paths})
	if err != nil {
		t.Fatal(err)
	}

	var text bytes.Buffer
	if err := WriteReport(&text, report, FormatText); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		paths[0] + ":1: 2 * -21 = -42\n",
		paths[0] + ":2: 7 cmp 8 = -1\n",
		paths[0] + ":3: x: error: ",
		"1 files, 3 lines, 1 failed\n",
	} {
		if !strings.Contains(text.String(), want) {
			t.Errorf("text report missing %q:\n%s", want, text.String())
		}
	}

	var js bytes.Buffer
	if err := WriteReport(&js, report, FormatJSON); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Files []struct {
			Lines []struct {
				Value *string `json:"value"`
				Cmp   *int    `json:"cmp"`
				Error string  `json:"error"`
			} `json:"lines"`
		} `json:"files"`
		Failed int `json:"failed"`
	}
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	lines := decoded.Files[0].Lines
	if lines[0].Value == nil || *lines[0].Value != "-42" || lines[1].Cmp == nil || *lines[1].Cmp != -1 || lines[2].Error == "" {
		t.Fatalf("json report = %s", js.String())
	}

	var mp bytes.Buffer
	if err := WriteReport(&mp, report, FormatMsgpack); err != nil {
		t.Fatal(err)
	}
	back, err := ReadReport(&mp)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(texts(&report.Files[0]), texts(&back.Files[0])); diff != "" || back.Failed != 1 {
		t.Fatalf("msgpack round trip mismatch (-want +got):\n%s", diff)
	}

	if err := WriteReport(&mp, report, Format("xml")); err == nil {
		t.Fatal("WriteReport accepted xml")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "JSON": FormatJSON, "msgpack": FormatMsgpack} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) succeeded")
	}
}
