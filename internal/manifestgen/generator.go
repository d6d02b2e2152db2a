package manifestgen

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/tvdtogt/a11yExtractor/internal/config"
	"github.com/tvdtogt/a11yExtractor/internal/fileutil"
	"github.com/tvdtogt/a11yExtractor/internal/logging"
)

// ExceptionsFile lists the non-EPUB files seen during a run.
const ExceptionsFile = "exceptions.txt"

// ErrToolNotConfigured indicates the generator binary is empty.
var ErrToolNotConfigured = errors.New("manifest tool not configured")

// Result summarizes a generation run.
type Result struct {
	Converted      int
	Failed         int
	Skipped        int
	Outputs        []string
	ExceptionsPath string
}

// Option configures the generator.
type Option func(*Generator)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(g *Generator) {
		if exec != nil {
			g.exec = exec
		}
	}
}

// WithLogger sets the logger used for per-file progress.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator runs a manifest tool over a directory tree.
type Generator struct {
	tool      string
	binary    string
	outputDir string
	exec      Executor
	logger    *slog.Logger
}

// New constructs a generator for tool ("readium" or "rwp").
func New(tool, binary, outputDir string, opts ...Option) (*Generator, error) {
	tool = strings.ToLower(strings.TrimSpace(tool))
	if _, err := toolFlag(tool); err != nil {
		return nil, err
	}
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, fmt.Errorf("%w: %s", ErrToolNotConfigured, tool)
	}
	if strings.TrimSpace(outputDir) == "" {
		return nil, errors.New("output directory required")
	}
	g := &Generator{
		tool:      tool,
		binary:    binary,
		outputDir: outputDir,
		exec:      commandExecutor{},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = logging.NewComponentLogger(g.logger, "manifestgen")
	return g, nil
}

// NewFromConfig builds a generator from the configured tool paths. An empty
// tool selects tools.default.
func NewFromConfig(cfg *config.Config, tool string, opts ...Option) (*Generator, error) {
	name, binary, err := cfg.ToolBinary(tool)
	if err != nil {
		return nil, err
	}
	return New(name, binary, cfg.Paths.ManifestDir, opts...)
}

// Tool returns the generator name.
func (g *Generator) Tool() string { return g.tool }

// Binary returns the executable the generator invokes.
func (g *Generator) Binary() string { return g.binary }

// OutputDir returns the directory manifests are written to.
func (g *Generator) OutputDir() string { return g.outputDir }

// Preflight verifies the binary resolves to an executable file.
func (g *Generator) Preflight() error {
	resolved, err := exec.LookPath(g.binary)
	if err != nil {
		return fmt.Errorf("%s binary %q not found: %w", g.tool, g.binary, err)
	}
	if err := unix.Access(resolved, unix.X_OK); err != nil {
		return fmt.Errorf("%s binary %q not executable: %w", g.tool, resolved, err)
	}
	return nil
}

// Run walks inputDir and converts every .epub file. Conversion failures are
// counted and logged; only setup and walk errors are returned.
func (g *Generator) Run(ctx context.Context, inputDir string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	info, err := os.Stat(inputDir)
	if err != nil {
		return Result{}, fmt.Errorf("stat input directory: %w", err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("input %q is not a directory", inputDir)
	}
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}

	result := Result{ExceptionsPath: filepath.Join(g.outputDir, ExceptionsFile)}
	exceptions, err := os.Create(result.ExceptionsPath)
	if err != nil {
		return Result{}, fmt.Errorf("create exceptions file: %w", err)
	}
	defer exceptions.Close()

	walkErr := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !IsEPUB(path) {
			result.Skipped++
			if _, err := fmt.Fprintln(exceptions, path); err != nil {
				return fmt.Errorf("write exceptions file: %w", err)
			}
			g.logger.Info("skipped (wrong extension)", logging.String(logging.FieldFile, path))
			return nil
		}

		output, err := g.Convert(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			result.Failed++
			logging.WarnWithContext(g.logger, "manifest generation failed", "manifest_generation_failed",
				logging.String(logging.FieldFile, path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check that the EPUB opens and that "+g.tool+" is up to date"),
				logging.String(logging.FieldImpact, "publication missing from manifest directory"),
			)
			return nil
		}
		result.Converted++
		result.Outputs = append(result.Outputs, output)
		g.logger.Info("processed", logging.String(logging.FieldFile, path), logging.String("output", output))
		return nil
	})
	if walkErr != nil {
		return result, fmt.Errorf("walk %s: %w", inputDir, walkErr)
	}
	return result, nil
}

// Convert runs the tool for one EPUB and writes its manifest. The output file
// is only created when the tool succeeds.
func (g *Generator) Convert(ctx context.Context, epubPath string) (string, error) {
	args, err := Args(g.tool, epubPath)
	if err != nil {
		return "", err
	}
	var stdout bytes.Buffer
	if err := g.exec.Run(ctx, g.binary, args, &stdout); err != nil {
		return "", fmt.Errorf("%s manifest: %w", g.tool, err)
	}
	output := filepath.Join(g.outputDir, OutputName(epubPath))
	if err := fileutil.WriteFileAtomic(output, stdout.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return output, nil
}

// Args returns the command line for generating the manifest of epubPath.
func Args(tool, epubPath string) ([]string, error) {
	flag, err := toolFlag(tool)
	if err != nil {
		return nil, err
	}
	return []string{"manifest", "--indent", "  ", flag, epubPath}, nil
}

func toolFlag(tool string) (string, error) {
	switch tool {
	case config.ToolReadium:
		return "--inspect-images", nil
	case config.ToolRWP:
		return "--infer-a11y=merged", nil
	default:
		return "", fmt.Errorf("unknown manifest tool %q", tool)
	}
}

// OutputName flattens an EPUB path into a unique manifest file name:
// the base name without extension, an underscore, and the first eight hex
// digits of the MD5 of the full path.
func OutputName(epubPath string) string {
	sum := md5.Sum([]byte(epubPath))
	base := filepath.Base(epubPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_" + hex.EncodeToString(sum[:])[:8] + ".json"
}

// IsEPUB reports whether path has an .epub extension, ignoring case.
func IsEPUB(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".epub")
}
