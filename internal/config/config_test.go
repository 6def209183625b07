package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIndexPath(t *testing.T) {
	got := IndexPath(filepath.Join("refs", "refs.yaml"))
	want := filepath.Join("refs", ".bibmend", "refs.yaml.db")
	if got != want {
		t.Errorf("IndexPath = %q, want %q", got, want)
	}
}

func TestEnsureCacheDir(t *testing.T) {
	collection := filepath.Join(t.TempDir(), "refs.yaml")

	dir, err := EnsureCacheDir(collection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("cache dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%q is not a directory", dir)
	}

	// Idempotent.
	if _, err := EnsureCacheDir(collection); err != nil {
		t.Errorf("second call: %v", err)
	}
}

func TestGlobalConfig_LoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BIBMEND_CHARS_TABLE", "")
	t.Setenv("BIBMEND_JOURNALS_TABLE", "")
	t.Setenv("BIBMEND_KEY_PREFIX", "")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.KeyPrefix != "ref" {
		t.Errorf("KeyPrefix = %q, want ref", cfg.KeyPrefix)
	}
	if cfg.CharsTable != "" || cfg.JournalsTable != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestGlobalConfig_SaveLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("BIBMEND_CHARS_TABLE", "")
	t.Setenv("BIBMEND_JOURNALS_TABLE", "")
	t.Setenv("BIBMEND_KEY_PREFIX", "")

	saved := &GlobalConfig{
		CharsTable:    "/tables/chars.yml",
		JournalsTable: "/tables/journals.yml",
		KeyPrefix:     "bib",
	}
	if err := saved.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg != *saved {
		t.Errorf("got %+v, want %+v", cfg, saved)
	}
}

func TestGlobalConfig_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	saved := &GlobalConfig{CharsTable: "/from/file.yml", KeyPrefix: "file"}
	if err := saved.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	t.Setenv("BIBMEND_CHARS_TABLE", "/from/env.yml")
	t.Setenv("BIBMEND_JOURNALS_TABLE", "/from/env-journals.yml")
	t.Setenv("BIBMEND_KEY_PREFIX", "env")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CharsTable != "/from/env.yml" {
		t.Errorf("CharsTable = %q", cfg.CharsTable)
	}
	if cfg.JournalsTable != "/from/env-journals.yml" {
		t.Errorf("JournalsTable = %q", cfg.JournalsTable)
	}
	if cfg.KeyPrefix != "env" {
		t.Errorf("KeyPrefix = %q", cfg.KeyPrefix)
	}
}
