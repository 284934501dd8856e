package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "quill.toml"))
	if err != nil {
		t.Fatalf("A missing config file is not an error: %v", err)
	}

	want := Default()
	if cfg != want {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.toml")
	content := `
[build]
recover_statements = true
emit_on_error = true
output_dir = "out"

[emitter]
indent = "  "

[log]
debug = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Build.RecoverStatements || !cfg.Build.EmitOnError {
		t.Errorf("Build flags not loaded: %+v", cfg.Build)
	}
	if cfg.Build.OutputDir != "out" {
		t.Errorf("Expected output_dir 'out', got %q", cfg.Build.OutputDir)
	}
	if cfg.Emitter.Indent != "  " {
		t.Errorf("Expected two-space indent, got %q", cfg.Emitter.Indent)
	}
	if !cfg.Log.Debug {
		t.Error("Expected debug enabled")
	}
}

func TestLoadPartialFileBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.toml")
	if err := os.WriteFile(path, []byte("[build]\nrecover_statements = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Build.RecoverStatements {
		t.Error("Expected recover_statements from the file")
	}
	// Unset fields keep their defaults.
	if cfg.Build.OutputDir != "build" {
		t.Errorf("Expected default output_dir, got %q", cfg.Build.OutputDir)
	}
	if cfg.Emitter.Indent != "    " {
		t.Errorf("Expected default indent, got %q", cfg.Emitter.Indent)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.toml")
	if err := os.WriteFile(path, []byte("[build\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected a parse error for malformed TOML")
	}
}
