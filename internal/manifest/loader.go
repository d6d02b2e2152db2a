package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// ErrInvalidUTF8 indicates a manifest file is not UTF-8 encoded.
var ErrInvalidUTF8 = errors.New("manifest: invalid UTF-8")

// FailureSink receives manifests that could not be loaded.
type FailureSink interface {
	RecordFailure(path string, err error)
}

// Parse decodes a manifest from raw JSON.
func Parse(data []byte) (*Manifest, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and parses the manifest at path. On failure the error is handed
// to sink (which may be nil) and ok is false; Load itself never returns an
// error. A document that parses but holds nothing useful still loads.
func Load(path string, sink FailureSink) (m *Manifest, ok bool) {
	m, err := load(path)
	if err != nil {
		if sink != nil {
			sink.RecordFailure(path, err)
		}
		return nil, false
	}
	return m, true
}

func load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return m, nil
}
