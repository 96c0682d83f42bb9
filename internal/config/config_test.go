package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.yml")
	body := `
include: "*.md,*.txt"
max_bytes: 2097152
max_files: 100
no_color: true
ignore_dirs: [tmp, scratch]
policy: ./policy.yml
`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Include == nil || *cfg.Include != "*.md,*.txt" {
		t.Fatalf("include: %+v", cfg.Include)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 2097152 {
		t.Fatalf("max_bytes: %+v", cfg.MaxBytes)
	}
	if cfg.MaxFiles == nil || *cfg.MaxFiles != 100 {
		t.Fatalf("max_files: %+v", cfg.MaxFiles)
	}
	if cfg.NoColor == nil || !*cfg.NoColor {
		t.Fatal("no_color not set")
	}
	if len(cfg.IgnoreDirs) != 2 || cfg.IgnoreDirs[0] != "tmp" {
		t.Fatalf("ignore_dirs: %v", cfg.IgnoreDirs)
	}
	if cfg.Policy == nil || *cfg.Policy != "./policy.yml" {
		t.Fatalf("policy: %+v", cfg.Policy)
	}
	// unset fields stay nil so the CLI can tell unset from zero
	if cfg.Exclude != nil || cfg.NoCache != nil || cfg.Ruleset != nil {
		t.Fatalf("expected unset fields to be nil: %+v", cfg)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFile_BadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.yml")
	if err := os.WriteFile(p, []byte("max_bytes: [not an int\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadLocal(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLocal(dir); err == nil {
		t.Fatal("expected error with no config present")
	}

	if err := os.WriteFile(filepath.Join(dir, ".agentlock.yml"), []byte("no_cache: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NoCache == nil || !*cfg.NoCache {
		t.Fatalf("no_cache: %+v", cfg.NoCache)
	}
}

func TestLoadLocal_DottedNameWins(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".agentlock.yml"), []byte("max_files: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "agentlock.yml"), []byte("max_files: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxFiles == nil || *cfg.MaxFiles != 1 {
		t.Fatalf("expected .agentlock.yml to take precedence, got %+v", cfg.MaxFiles)
	}
}

func TestLoadGlobal_XDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	if _, err := LoadGlobal(); err == nil {
		t.Fatal("expected error with no global config")
	}

	dir := filepath.Join(base, "agentlock")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("exclude: \"**/fixtures/**\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Exclude == nil || *cfg.Exclude != "**/fixtures/**" {
		t.Fatalf("exclude: %+v", cfg.Exclude)
	}
}
