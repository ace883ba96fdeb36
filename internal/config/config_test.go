package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if cfg.File != DefaultChecklistName {
		t.Errorf("File = %q, want %q", cfg.File, DefaultChecklistName)
	}
	if want := filepath.Join(dir, "nested", DefaultJournalName); cfg.JournalPath != want {
		t.Errorf("JournalPath = %q, want %q", cfg.JournalPath, want)
	}
	if cfg.Keys.Toggle != " " {
		t.Errorf("Keys.Toggle = %q, want space", cfg.Keys.Toggle)
	}
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `file = "tasks.md"
journal_path = "/tmp/j.db"
log_level = "debug"

[keys]
add = "n"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	if cfg.File != "tasks.md" || cfg.JournalPath != "/tmp/j.db" || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Keys.Add != "n" {
		t.Errorf("Keys.Add = %q, want n", cfg.Keys.Add)
	}
	if cfg.Keys.Quit != "q" {
		t.Errorf("Keys.Quit = %q, want default q", cfg.Keys.Quit)
	}
}

func TestLoadOrCreateFillsBlankFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`file = ""`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	if cfg.File != DefaultChecklistName {
		t.Errorf("File = %q", cfg.File)
	}
	if cfg.JournalPath != filepath.Join(dir, DefaultJournalName) {
		t.Errorf("JournalPath = %q", cfg.JournalPath)
	}
}

func TestLoadOrCreateInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("file = [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestResolveConfigPathEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/custom/config.toml")
	if got := ResolveConfigPath(); got != "/custom/config.toml" {
		t.Errorf("ResolveConfigPath() = %q", got)
	}
}

func TestResolveConfigPathDefault(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	got := ResolveConfigPath()
	if !strings.HasSuffix(got, DefaultConfigFileName) {
		t.Errorf("ResolveConfigPath() = %q, want suffix %q", got, DefaultConfigFileName)
	}
}
