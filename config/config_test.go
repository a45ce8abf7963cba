package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	content := "library_name: Branch\ndb_path: /tmp/branch.db\nskip_invalid: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LibraryName != "Branch" || cfg.DBPath != "/tmp/branch.db" || !cfg.SkipInvalid {
		t.Fatalf("cfg = %+v", cfg)
	}
	// Keys absent from the file keep their defaults.
	if cfg.SnapshotPath != Default().SnapshotPath {
		t.Fatalf("snapshot path = %q", cfg.SnapshotPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	if err := os.WriteFile(path, []byte("library_name: FromFile\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("LIBRARY_NAME", "FromEnv")
	t.Setenv("LIBRARY_DB_PATH", "/tmp/env.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LibraryName != "FromEnv" {
		t.Fatalf("library name = %q, want env override", cfg.LibraryName)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	want := Config{LibraryName: "Main", DBPath: "main.db", SnapshotPath: "main.json", SkipInvalid: true}
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
