package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Strict {
		t.Errorf("default is not strict")
	}
	if cfg.Encoding != "utf-8" {
		t.Errorf("default encoding is %q", cfg.Encoding)
	}
	if cfg.CompareLimit <= 0 || cfg.CopyDepth <= 0 {
		t.Errorf("default limits not positive: %d %d", cfg.CompareLimit, cfg.CopyDepth)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.toml")
	content := `
strict = false
ignore_case = true
encoding = "latin1"
compare_limit = 50
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Strict {
		t.Errorf("strict not overridden")
	}
	if !cfg.IgnoreCase {
		t.Errorf("ignore_case not set")
	}
	if cfg.Encoding != "latin1" {
		t.Errorf("encoding is %q", cfg.Encoding)
	}
	if cfg.CompareLimit != 50 {
		t.Errorf("compare_limit is %d", cfg.CompareLimit)
	}
	// Untouched fields keep their defaults.
	if cfg.CopyDepth != Default().CopyDepth {
		t.Errorf("copy_depth lost its default: %d", cfg.CopyDepth)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Errorf("missing file did not fail")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Strict {
		t.Errorf("empty path did not return defaults")
	}
}

func TestValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte(`encoding = "ebcdic"`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("unknown encoding accepted")
	}
}
