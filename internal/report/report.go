package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/tvdtogt/a11yExtractor/internal/logging"
	"github.com/tvdtogt/a11yExtractor/internal/manifest"
	"github.com/tvdtogt/a11yExtractor/internal/record"
	"github.com/tvdtogt/a11yExtractor/internal/store"
)

// ErrNoValidInput is returned when no manifest in the batch could be loaded.
// No report is written in that case.
var ErrNoValidInput = errors.New("no valid JSON files found")

// ErrLocked is returned when another run holds the lock for the same report.
var ErrLocked = errors.New("report is locked by another run")

// RunRecorder persists completed runs.
type RunRecorder interface {
	RecordRun(ctx context.Context, run store.Run, records []record.Record) error
}

// Options configures a report run.
type Options struct {
	InputDir   string
	OutputPath string
	// FailureLogPath receives one line per manifest that failed to load.
	// Empty disables the file; failures are still counted and logged.
	FailureLogPath string
	Logger         *slog.Logger
	Recorder       RunRecorder
}

// Summary describes a finished run.
type Summary struct {
	RunID          string
	InputDir       string
	OutputPath     string
	FailureLogPath string
	Processed      int
	Failed         int
	StartedAt      time.Time
	FinishedAt     time.Time
	Records        []record.Record
}

// Message is the one-line operator summary.
func (s Summary) Message() string {
	return fmt.Sprintf("Processed %d files. Output written to %s", s.Processed, s.OutputPath)
}

// Run builds the report for opts.InputDir and writes it to opts.OutputPath.
// It returns ErrNoValidInput, with the failure count filled in, when no
// manifest loaded.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(opts.InputDir) == "" {
		return Summary{}, errors.New("input directory is required")
	}
	if strings.TrimSpace(opts.OutputPath) == "" {
		return Summary{}, errors.New("output path is required")
	}

	summary := Summary{
		RunID:          uuid.NewString(),
		InputDir:       opts.InputDir,
		OutputPath:     opts.OutputPath,
		FailureLogPath: opts.FailureLogPath,
		StartedAt:      time.Now().UTC(),
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "report").With(logging.String(logging.FieldRunID, summary.RunID))

	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
		return summary, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(LockPath(opts.OutputPath))
	ok, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire report lock: %w", err)
	}
	if !ok {
		return summary, fmt.Errorf("%w: %s", ErrLocked, opts.OutputPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release report lock", logging.Error(err))
		}
	}()

	failureLog, err := logging.OpenFailureLog(opts.FailureLogPath)
	if err != nil {
		return summary, err
	}
	defer func() {
		if err := failureLog.Close(); err != nil {
			logger.Warn("failed to close failure log", logging.Error(err))
		}
	}()

	sink := &failureSink{log: failureLog, logger: logger}
	records, err := Collect(ctx, opts.InputDir, sink, logger)
	summary.Failed = sink.failed
	if logErr := failureLog.Err(); logErr != nil {
		logger.Warn("failure log not written", logging.Error(logErr))
	}
	summary.FinishedAt = time.Now().UTC()
	if err != nil {
		return summary, err
	}
	if len(records) == 0 {
		logging.WarnWithContext(logger, "no manifests loaded", "report_empty",
			logging.String("input_dir", opts.InputDir),
			logging.Int("failed", summary.Failed),
			logging.String(logging.FieldErrorHint, "check the input directory and the failure log"),
			logging.String(logging.FieldImpact, "no report written"),
		)
		return summary, ErrNoValidInput
	}

	if err := WriteFile(opts.OutputPath, records); err != nil {
		return summary, err
	}
	summary.Processed = len(records)
	summary.Records = records
	summary.FinishedAt = time.Now().UTC()

	logger.Info("report written",
		logging.String("output", opts.OutputPath),
		logging.Int("processed", summary.Processed),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration", summary.FinishedAt.Sub(summary.StartedAt)),
	)

	if opts.Recorder != nil {
		run := store.Run{
			ID:         summary.RunID,
			InputDir:   summary.InputDir,
			OutputPath: summary.OutputPath,
			Processed:  summary.Processed,
			Failed:     summary.Failed,
			StartedAt:  summary.StartedAt,
			FinishedAt: summary.FinishedAt,
		}
		if err := opts.Recorder.RecordRun(ctx, run, records); err != nil {
			logging.WarnWithContext(logger, "run history not recorded", "store_record_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "report written but missing from run history"),
			)
		}
	}
	return summary, nil
}

// LockPath returns the lock file guarding outputPath. It lives in the
// system temp directory so the report directory only ever holds reports.
func LockPath(outputPath string) string {
	abs, err := filepath.Abs(outputPath)
	if err != nil {
		abs = outputPath
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(os.TempDir(), "a11yextractor-"+hex.EncodeToString(sum[:8])+".lock")
}

// Collect loads and extracts every manifest in dir, in name order. Load
// failures go to sink and do not stop the batch.
func Collect(ctx context.Context, dir string, sink manifest.FailureSink, logger *slog.Logger) ([]record.Record, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	paths, err := ListManifests(dir)
	if err != nil {
		return nil, err
	}
	records := make([]record.Record, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, ok := manifest.Load(path, sink)
		if !ok {
			continue
		}
		name := filepath.Base(path)
		records = append(records, record.Extract(m, name))
		logger.Debug("manifest extracted", logging.String(logging.FieldFile, name))
	}
	return records, nil
}

// ListManifests returns the regular files directly inside dir whose names
// end in ".json", sorted by name.
func ListManifests(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

type failureSink struct {
	log    *logging.FailureLog
	logger *slog.Logger
	failed int
}

func (s *failureSink) RecordFailure(path string, err error) {
	s.failed++
	s.log.RecordFailure(path, err)
	logging.WarnWithContext(s.logger, "manifest skipped", "manifest_load_failed",
		logging.String(logging.FieldFile, path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "regenerate the manifest or remove it from the input directory"),
		logging.String(logging.FieldImpact, "publication missing from report"),
	)
}
