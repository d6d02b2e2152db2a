package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTools(); err != nil {
		return err
	}
	if err := c.normalizeStore(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ManifestDir) == "" {
		c.Paths.ManifestDir = defaultManifestDir
	}
	if c.Paths.ManifestDir, err = expandPath(c.Paths.ManifestDir); err != nil {
		return fmt.Errorf("paths.manifest_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.FailureLog = strings.TrimSpace(c.Paths.FailureLog)
	if strings.HasPrefix(c.Paths.FailureLog, "~") {
		if c.Paths.FailureLog, err = expandPath(c.Paths.FailureLog); err != nil {
			return fmt.Errorf("paths.failure_log: %w", err)
		}
	}
	c.Paths.ReportName = strings.TrimSpace(c.Paths.ReportName)
	if c.Paths.ReportName == "" {
		c.Paths.ReportName = defaultReportName
	}
	return nil
}

func (c *Config) normalizeTools() error {
	c.Tools.Default = strings.ToLower(strings.TrimSpace(c.Tools.Default))
	if c.Tools.Default == "" {
		c.Tools.Default = defaultTool
	}
	c.Tools.ReadiumPath = toolPath(c.Tools.ReadiumPath, "READIUM_PATH", defaultReadiumPath)
	c.Tools.RWPPath = toolPath(c.Tools.RWPPath, "RWP_PATH", defaultRWPPath)
	return nil
}

func toolPath(value, envKey, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		if env, ok := os.LookupEnv(envKey); ok {
			value = strings.TrimSpace(env)
		}
	}
	if value == "" {
		return fallback
	}
	if strings.HasPrefix(value, "~") {
		if expanded, err := expandPath(value); err == nil {
			return expanded
		}
	}
	return value
}

func (c *Config) normalizeStore() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = defaultStorePath
	}
	var err error
	if c.Store.Path, err = expandPath(c.Store.Path); err != nil {
		return fmt.Errorf("store.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
