package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoadWritesTemplateAndDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("template not written: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8000/api" || cfg.API.Timeout != 15*time.Second {
		t.Errorf("api defaults = %+v", cfg.API)
	}
	if cfg.UI.PageSize != 10 || !cfg.Store.Enabled {
		t.Errorf("ui/store defaults = %+v %+v", cfg.UI, cfg.Store)
	}
	if cfg.Store.Path != filepath.Join(dir, "journal.db") {
		t.Errorf("store path = %s", cfg.Store.Path)
	}
}

func TestLoadReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `
[api]
base_url = "https://journal.example.com/api"
timeout = "5s"

[capital]
baseline = 250000

[ui]
page_size = 25
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JOURNAL_BASELINE_CAPITAL", "300000")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://journal.example.com/api" || cfg.API.Timeout != 5*time.Second {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.Capital.Baseline != "300000" {
		t.Errorf("baseline = %v, want env override", cfg.Capital.Baseline)
	}
	if cfg.UI.PageSize != 25 {
		t.Errorf("page size = %d", cfg.UI.PageSize)
	}
}

func TestBaselineKeepsRupeePrecision(t *testing.T) {
	tests := map[string]string{
		`baseline = "250000.75"`:           "250000.75",
		`baseline = 250000`:                "250000",
		`baseline = "0.10000000000000001"`: "0.10000000000000001",
	}
	for line, want := range tests {
		dir := t.TempDir()
		content := "[capital]\n" + line + "\n"
		if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("JOURNAL_BASELINE_CAPITAL", "")

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("%s: Load: %v", line, err)
		}
		if got := cfg.Capital.BaselineAmount(); !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("%s: baseline = %s, want %s", line, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		API: APIConfig{BaseURL: "http://localhost:8000/api", Timeout: time.Second},
		UI:  UIConfig{PageSize: 10},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	broken := []func(c *Config){
		func(c *Config) { c.API.BaseURL = "not a url" },
		func(c *Config) { c.API.Timeout = 0 },
		func(c *Config) { c.API.MaxRetries = -1 },
		func(c *Config) { c.Capital.Baseline = "-1" },
		func(c *Config) { c.Capital.Baseline = "two lakh" },
		func(c *Config) { c.UI.PageSize = 0 },
	}
	for i, mutate := range broken {
		c := valid
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := "JOURNAL_API_URL=https://dotenv.example.com/api\nJOURNAL_BASELINE_CAPITAL=100\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0600); err != nil {
		t.Fatal(err)
	}

	// registers cleanup of the variable the .env file exports
	t.Setenv("JOURNAL_API_URL", "")
	os.Unsetenv("JOURNAL_API_URL")
	t.Setenv("JOURNAL_BASELINE_CAPITAL", "300000")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://dotenv.example.com/api" {
		t.Errorf("base url = %s, want value from .env", cfg.API.BaseURL)
	}
	if cfg.Capital.Baseline != "300000" {
		t.Errorf("baseline = %v, environment should win over .env", cfg.Capital.Baseline)
	}
}
