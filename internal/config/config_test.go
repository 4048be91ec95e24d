package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", path, ok, err)
	}
	if path != filepath.Join(root, FileName) {
		t.Fatalf("Find = %q", path)
	}
}

func TestDiscoverDefaults(t *testing.T) {
	dir := t.TempDir()
	if _, ok, _ := Find(dir); ok {
		t.Skip("a bigcalc.toml exists above the temp dir")
	}
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("Discover mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, `
[batch]
jobs = 3
format = "json"
cache_dir = "cache"

[trace]
level = "debug"
output = "-"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Path:  path,
		Batch: BatchConfig{Jobs: 3, Format: "json", Cache: true, CacheDir: filepath.Join(dir, "cache")},
		Trace: TraceConfig{Level: "debug", Output: "-"},
		UI:    UIConfig{Mode: "auto", Color: "auto"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]struct {
		body string
		want string
	}{
		"syntax":        {"[batch\n", "failed to parse TOML"},
		"unknown key":   {"[batch]\nworkers = 2\n", "unknown keys: batch.workers"},
		"bad format":    {"[batch]\nformat = \"xml\"\n", "[batch].format"},
		"negative jobs": {"[batch]\njobs = -1\n", "[batch].jobs"},
		"bad level":     {"[trace]\nlevel = \"loud\"\n", "[trace].level"},
		"bad ui":        {"[ui]\nmode = \"maybe\"\n", "[ui].mode"},
		"bad color":     {"[ui]\ncolor = \"always\"\n", "[ui].color"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.body)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateWrapsErrInvalid(t *testing.T) {
	cfg := Default()
	cfg.UI.Color = "purple"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Validate = %v; want ErrInvalid", err)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeAuto, "AUTO": ModeAuto, "on": ModeOn, " off ": ModeOff} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMode("maybe"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParseMode(maybe) error = %v; want ErrInvalid", err)
	}
}
