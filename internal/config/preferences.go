package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Preferences holds the keys of a legacy preferences.txt file used by the
// manifest generators. Unset keys are empty.
type Preferences struct {
	ReadiumPath string
	RWPPath     string
	OutputDir   string
}

// LoadPreferences reads a key=value preferences file. Lines without '=' are
// ignored, keys and values are trimmed, and later keys win.
func LoadPreferences(path string) (Preferences, error) {
	file, err := os.Open(path)
	if err != nil {
		return Preferences{}, fmt.Errorf("open preferences: %w", err)
	}
	defer file.Close()

	var prefs Preferences
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "readium_path":
			prefs.ReadiumPath = value
		case "rwp_path":
			prefs.RWPPath = value
		case "output_dir":
			prefs.OutputDir = value
		}
	}
	if err := scanner.Err(); err != nil {
		return Preferences{}, fmt.Errorf("read preferences: %w", err)
	}
	return prefs, nil
}

// Apply overlays the non-empty preferences onto cfg. output_dir becomes the
// manifest directory since the preferences file only drives manifest generation.
func (p Preferences) Apply(cfg *Config) error {
	if p.ReadiumPath != "" {
		cfg.Tools.ReadiumPath = p.ReadiumPath
	}
	if p.RWPPath != "" {
		cfg.Tools.RWPPath = p.RWPPath
	}
	if p.OutputDir != "" {
		dir, err := expandPath(p.OutputDir)
		if err != nil {
			return fmt.Errorf("preferences output_dir: %w", err)
		}
		cfg.Paths.ManifestDir = dir
	}
	return nil
}
