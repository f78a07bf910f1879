package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := DefaultConfig()
	if cfg.DocumentAI != want.DocumentAI {
		t.Errorf("document_ai = %+v, want %+v", cfg.DocumentAI, want.DocumentAI)
	}
	if cfg.Limits != want.Limits {
		t.Errorf("limits = %+v, want %+v", cfg.Limits, want.Limits)
	}
	if cfg.Render != want.Render {
		t.Errorf("render = %+v, want %+v", cfg.Render, want.Render)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
}

func TestLoadFile(t *testing.T) {
	chdirTemp(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `document_ai:
  project_id: my-project
  processor_id: abc123
  location: eu
  retry_delay: 500ms
limits:
  max_pages: 3
render:
  workers: 4
  page_size: Letter
  layers: true
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DocumentAI.ProjectID != "my-project" || cfg.DocumentAI.ProcessorID != "abc123" || cfg.DocumentAI.Location != "eu" {
		t.Errorf("document_ai = %+v", cfg.DocumentAI)
	}
	if cfg.DocumentAI.RetryDelay != 500*time.Millisecond {
		t.Errorf("retry_delay = %v", cfg.DocumentAI.RetryDelay)
	}
	if cfg.DocumentAI.MaxAttempts != 3 {
		t.Errorf("max_attempts should keep its default, got %d", cfg.DocumentAI.MaxAttempts)
	}
	if cfg.Limits.MaxPages != 3 || cfg.Limits.MaxBytes != 15*1024*1024 {
		t.Errorf("limits = %+v", cfg.Limits)
	}
	if cfg.Render.Workers != 4 || cfg.Render.PageSize != "Letter" || !cfg.Render.Layers {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	chdirTemp(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestLoadEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HYBRIDOC_DOCUMENT_AI_PROJECT_ID", "from-env")
	t.Setenv("HYBRIDOC_LIMITS_MAX_PAGES", "25")
	t.Setenv("HYBRIDOC_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DocumentAI.ProjectID != "from-env" {
		t.Errorf("project_id = %q", cfg.DocumentAI.ProjectID)
	}
	if cfg.Limits.MaxPages != 25 {
		t.Errorf("max_pages = %d", cfg.Limits.MaxPages)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"letter lower case", func(c *Config) { c.Render.PageSize = "letter" }, ""},
		{"zero bytes", func(c *Config) { c.Limits.MaxBytes = 0 }, "max_bytes"},
		{"zero pages", func(c *Config) { c.Limits.MaxPages = 0 }, "max_pages"},
		{"negative delay", func(c *Config) { c.DocumentAI.RetryDelay = -time.Second }, "retry_delay"},
		{"unknown page size", func(c *Config) { c.Render.PageSize = "B5" }, "page_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DocumentAI.ProjectID = "p"

	out, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	if !strings.Contains(string(out), "retry_delay: 2s") {
		t.Errorf("retry delay should print as a duration:\n%s", out)
	}

	var generic struct {
		DocumentAI map[string]interface{} `yaml:"document_ai"`
		LogLevel   string                 `yaml:"log_level"`
	}
	if err := yaml.Unmarshal(out, &generic); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if generic.DocumentAI["project_id"] != "p" || generic.LogLevel != "info" {
		t.Errorf("unexpected YAML content:\n%s", out)
	}

	chdirTemp(t)
	path := filepath.Join(t.TempDir(), "printed.yaml")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("printed config does not load: %v", err)
	}
	if loaded.DocumentAI != cfg.DocumentAI {
		t.Errorf("round trip = %+v, want %+v", loaded.DocumentAI, cfg.DocumentAI)
	}
}

func TestGDocAI(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DocumentAI.ProjectID = "p"
	cfg.DocumentAI.ProcessorID = "x"

	g := cfg.GDocAI()
	if g.ProjectID != "p" || g.ProcessorID != "x" || g.Location != "us" || g.MaxAttempts != 3 || g.RetryDelay != 2*time.Second {
		t.Errorf("GDocAI() = %+v", g)
	}
}
