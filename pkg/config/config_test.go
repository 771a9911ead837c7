package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, DefaultListenAddr)
	}
	if cfg.CoursesPageSlug != DefaultCoursesPageSlug {
		t.Errorf("CoursesPageSlug = %q, want %q", cfg.CoursesPageSlug, DefaultCoursesPageSlug)
	}
	if cfg.CompletionThreshold != DefaultCompletionThreshold {
		t.Errorf("CompletionThreshold = %d, want %d", cfg.CompletionThreshold, DefaultCompletionThreshold)
	}
}

func TestLoadConfigFillsUnsetFields(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
db_path = "/tmp/content.db"
base_url = "https://learn.example.com/"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBPath != "/tmp/content.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.BaseURL != "https://learn.example.com" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.BaseURL)
	}
	if cfg.CompletionThreshold != DefaultCompletionThreshold {
		t.Errorf("CompletionThreshold = %d, want default", cfg.CompletionThreshold)
	}
}

func TestLoadConfigExplicitThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
db_path = "/tmp/content.db"
course_completion_threshold = 85
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CompletionThreshold != 85 {
		t.Errorf("CompletionThreshold = %d, want 85", cfg.CompletionThreshold)
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := &Config{DBPath: filepath.Join(dir, "content.db")}
	if err := cfg.SaveTemplateConfig(path); err != nil {
		t.Fatalf("SaveTemplateConfig: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), cfg.DBPath) {
		t.Errorf("template does not reference db path %q", cfg.DBPath)
	}
}
