package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"flare/internal/project"
)

func TestLoadMissingManifestFallsBackToDefaults(t *testing.T) {
	m, err := project.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := project.Default()
	if m != def {
		t.Errorf("got %+v, want defaults %+v", m, def)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	content := `
[run]
trace = true
cache = false
max-diagnostics = 7

[repl]
prompt = "flare> "
`
	if err := os.WriteFile(filepath.Join(dir, project.ManifestName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := project.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.Run.Trace || m.Run.Cache || m.Run.MaxDiagnostics != 7 {
		t.Errorf("run section: %+v", m.Run)
	}
	if m.Repl.Prompt != "flare> " {
		t.Errorf("prompt %q", m.Repl.Prompt)
	}
}

func TestLoadMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, project.ManifestName), []byte("[run\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := project.Load(dir); err == nil {
		t.Error("malformed manifest must be an error")
	}
}

func TestLoadPartialManifestKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, project.ManifestName), []byte("[run]\ntrace = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := project.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Run.Trace {
		t.Error("trace must be set")
	}
	if m.Repl.Prompt != "> " {
		t.Errorf("prompt default lost: %q", m.Repl.Prompt)
	}
	if m.Run.MaxDiagnostics != 100 {
		t.Errorf("max-diagnostics default lost: %d", m.Run.MaxDiagnostics)
	}
}
