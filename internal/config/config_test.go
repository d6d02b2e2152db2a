package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/tvdtogt/a11yExtractor/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("READIUM_PATH", "")
	t.Setenv("RWP_PATH", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantOutput := filepath.Join(tempHome, ".local", "share", "a11yextractor", "reports")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	if cfg.Store.Path != filepath.Join(tempHome, ".local", "share", "a11yextractor", "reports.db") {
		t.Fatalf("unexpected store path: %q", cfg.Store.Path)
	}
	if !cfg.Store.Enabled {
		t.Fatal("expected store enabled by default")
	}
	if cfg.Tools.ReadiumPath != "readium" || cfg.Tools.RWPPath != "rwp" {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if got := cfg.ReportPath(); got != filepath.Join(wantOutput, "accessibility_report.csv") {
		t.Fatalf("unexpected report path: %q", got)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[paths]
output_dir = "~/reports"
failure_log = "/var/tmp/a11y-failures.txt"
report_name = "books.csv"

[tools]
default = "RWP"
rwp_path = "/opt/rwp/bin/rwp"

[store]
enabled = false

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempHome, "reports") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Tools.Default != config.ToolRWP {
		t.Fatalf("expected rwp default tool, got %q", cfg.Tools.Default)
	}
	tool, binary, err := cfg.ToolBinary("")
	if err != nil || tool != config.ToolRWP || binary != "/opt/rwp/bin/rwp" {
		t.Fatalf("ToolBinary = %q, %q, %v", tool, binary, err)
	}
	if cfg.Store.Enabled {
		t.Fatal("expected store disabled")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
	if got := cfg.FailureLogPath(cfg.ReportPath()); got != "/var/tmp/a11y-failures.txt" {
		t.Fatalf("expected absolute failure log to be kept, got %q", got)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\noutput = \"/tmp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestToolPathsFallBackToEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("READIUM_PATH", "/usr/local/bin/readium")
	t.Setenv("RWP_PATH", "")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[tools]\nrwp_path = \"/from/file/rwp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Tools.ReadiumPath != "/usr/local/bin/readium" {
		t.Fatalf("expected READIUM_PATH fallback, got %q", cfg.Tools.ReadiumPath)
	}
	if cfg.Tools.RWPPath != "/from/file/rwp" {
		t.Fatalf("expected file value to win, got %q", cfg.Tools.RWPPath)
	}
}

func TestFailureLogPathDefaultsNextToReport(t *testing.T) {
	cfg := config.Default()
	report := filepath.Join("/data", "out", "report.csv")
	if got := cfg.FailureLogPath(report); got != filepath.Join("/data", "out", "log.txt") {
		t.Fatalf("unexpected failure log path: %q", got)
	}
	cfg.Paths.FailureLog = ""
	if got := cfg.FailureLogPath(report); got != filepath.Join("/data", "out", "log.txt") {
		t.Fatalf("expected default name for empty failure_log, got %q", got)
	}
}

func TestToolBinaryRejectsUnknownTool(t *testing.T) {
	cfg := config.Default()
	if _, _, err := cfg.ToolBinary("calibre"); err == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "READIUM_PATH") {
		t.Fatalf("sample config missing tool guidance: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.OutputDir, "a11yextractor") {
		t.Fatalf("expected output dir to contain a11yextractor, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Tools.Default != config.ToolReadium {
		t.Fatalf("unexpected sample tool: %q", cfg.Tools.Default)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown tool", func(c *config.Config) { c.Tools.Default = "calibre" }},
		{"report name with dir", func(c *config.Config) { c.Paths.ReportName = "sub/report.csv" }},
		{"report name not csv", func(c *config.Config) { c.Paths.ReportName = "report.json" }},
		{"store without path", func(c *config.Config) { c.Store.Path = "" }},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.txt")
	contents := strings.Join([]string{
		"# generator settings",
		"  readium_path = /opt/readium/readium  ",
		"rwp_path=/opt/rwp/rwp",
		"output_dir = ~/manifests",
		"url = http://example.com/?a=b",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write preferences: %v", err)
	}

	prefs, err := config.LoadPreferences(path)
	if err != nil {
		t.Fatalf("LoadPreferences returned error: %v", err)
	}
	want := config.Preferences{
		ReadiumPath: "/opt/readium/readium",
		RWPPath:     "/opt/rwp/rwp",
		OutputDir:   "~/manifests",
	}
	if prefs != want {
		t.Fatalf("unexpected preferences: got %+v want %+v", prefs, want)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := config.Default()
	if err := prefs.Apply(&cfg); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if cfg.Paths.ManifestDir != filepath.Join(home, "manifests") {
		t.Fatalf("unexpected manifest dir: %q", cfg.Paths.ManifestDir)
	}
	if cfg.Tools.ReadiumPath != want.ReadiumPath {
		t.Fatalf("unexpected readium path: %q", cfg.Tools.ReadiumPath)
	}
}

func TestLoadPreferencesMissingFile(t *testing.T) {
	if _, err := config.LoadPreferences(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing preferences file")
	}
}
