package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tvdtogt/a11yExtractor/internal/config"
	"github.com/tvdtogt/a11yExtractor/internal/logging"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from test")

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "a11yextractor.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "hello from test") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "report")
	logger.Info("batch complete", logging.Int("processed", 3), logging.String("output", "/tmp/out put.csv"))
	logger.Debug("hidden")

	line := buf.String()
	if !strings.Contains(line, " INFO report: batch complete") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "processed=3") {
		t.Fatalf("expected int attr, got %q", line)
	}
	if !strings.Contains(line, `output="/tmp/out put.csv"`) {
		t.Fatalf("expected quoted attr, got %q", line)
	}
	if strings.Contains(line, "hidden") {
		t.Fatalf("debug line should be filtered at info level: %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("with caller")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information, got %q", buf.String())
	}
}

func TestJSONLoggerUsesCanonicalKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "manifest skipped", "manifest_load_failed", logging.String(logging.FieldFile, "bad.json"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	for key, want := range map[string]string{
		"level":                "warn",
		"msg":                  "manifest skipped",
		logging.FieldEventType: "manifest_load_failed",
		logging.FieldFile:      "bad.json",
		logging.FieldErrorHint: "check logs for details",
		logging.FieldImpact:    "operation completed with warnings",
	} {
		if payload[key] != want {
			t.Fatalf("%s = %v, want %q", key, payload[key], want)
		}
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestFailureLogAppendsTimestampedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "log.txt")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("earlier run\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	flog, err := logging.OpenFailureLog(path)
	if err != nil {
		t.Fatalf("OpenFailureLog returned error: %v", err)
	}
	flog.RecordFailure("/in/bad.json", errors.New("unexpected end of JSON input"))
	if got := flog.Count(); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}
	if err := flog.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	flog.RecordFailure("/in/after-close.json", errors.New("ignored"))

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 || lines[0] != "earlier run" {
		t.Fatalf("expected append to existing content, got %q", content)
	}
	if !strings.HasSuffix(lines[1], " Failed to load JSON file /in/bad.json: unexpected end of JSON input") {
		t.Fatalf("unexpected failure line: %q", lines[1])
	}
}

func TestFailureLogCreatesFileOnFirstFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "log.txt")
	flog, err := logging.OpenFailureLog(path)
	if err != nil {
		t.Fatalf("OpenFailureLog returned error: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no log file before a failure, stat err = %v", err)
	}
	flog.RecordFailure("/in/bad.json", errors.New("boom"))
	if err := flog.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if flog.Err() != nil {
		t.Fatalf("unexpected open error: %v", flog.Err())
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(content), "Failed to load JSON file /in/bad.json: boom") {
		t.Fatalf("unexpected log content: %q", content)
	}
}

func TestFailureLogCloseWithoutFailuresLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	flog, err := logging.OpenFailureLog(path)
	if err != nil {
		t.Fatalf("OpenFailureLog returned error: %v", err)
	}
	if err := flog.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	flog.RecordFailure("/in/late.json", errors.New("ignored"))
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no log file, stat err = %v", err)
	}
	if flog.Count() != 1 {
		t.Fatalf("Count = %d, want 1", flog.Count())
	}
}

func TestFailureLogNilIsSafe(t *testing.T) {
	flog, err := logging.OpenFailureLog("  ")
	if err != nil || flog != nil {
		t.Fatalf("expected disabled log, got %v, %v", flog, err)
	}
	flog.RecordFailure("x", errors.New("y"))
	if flog.Count() != 0 || flog.Path() != "" || flog.Err() != nil || flog.Close() != nil {
		t.Fatal("nil failure log should be inert")
	}
}

func TestFailureLogStream(t *testing.T) {
	var buf bytes.Buffer
	flog := logging.NewFailureLog(&buf)
	flog.RecordFailure("a.json", errors.New("boom"))
	if !strings.Contains(buf.String(), logging.FailureMessage("a.json", errors.New("boom"))) {
		t.Fatalf("unexpected stream output: %q", buf.String())
	}
}
