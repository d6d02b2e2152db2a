package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.ReportName != filepath.Base(c.Paths.ReportName) {
		return fmt.Errorf("paths.report_name must be a file name, got %q", c.Paths.ReportName)
	}
	if !strings.EqualFold(filepath.Ext(c.Paths.ReportName), ".csv") {
		return fmt.Errorf("paths.report_name must end in .csv, got %q", c.Paths.ReportName)
	}
	return nil
}

func (c *Config) validateTools() error {
	switch c.Tools.Default {
	case ToolReadium, ToolRWP:
		return nil
	default:
		return fmt.Errorf("tools.default must be %q or %q, got %q", ToolReadium, ToolRWP, c.Tools.Default)
	}
}

func (c *Config) validateStore() error {
	if c.Store.Enabled && c.Store.Path == "" {
		return errors.New("store.path must be set when store.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
