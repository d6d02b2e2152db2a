package config

const (
	defaultOutputDir   = "~/.local/share/a11yextractor/reports"
	defaultManifestDir = "~/.local/share/a11yextractor/manifests"
	defaultLogDir      = "~/.local/share/a11yextractor/logs"
	defaultFailureLog  = "log.txt"
	defaultReportName  = "accessibility_report.csv"
	defaultStorePath   = "~/.local/share/a11yextractor/reports.db"
	defaultReadiumPath = "readium"
	defaultRWPPath     = "rwp"
	defaultTool        = ToolReadium
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:   defaultOutputDir,
			ManifestDir: defaultManifestDir,
			LogDir:      defaultLogDir,
			FailureLog:  defaultFailureLog,
			ReportName:  defaultReportName,
		},
		Tools: Tools{
			Default: defaultTool,
		},
		Store: Store{
			Enabled: true,
			Path:    defaultStorePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
