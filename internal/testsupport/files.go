package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// SampleManifest is a complete manifest exercising every report column.
const SampleManifest = `{
  "metadata": {
    "identifier": "urn:isbn:9789012345678",
    "title": "Het Boek",
    "author": "A. Auteur",
    "publisher": "Uitgever",
    "language": "nl",
    "http://www.idpf.org/2007/opf#version": "3.0",
    "presentation": {"layout": "reflowable"},
    "accessibility": {
      "accessMode": ["textual", "visual"],
      "accessModeSufficient": [["textual"]],
      "summary": "Meets WCAG 2.1 AA",
      "hazard": ["none"],
      "feature": ["tableOfContents", "alternativeText", "readingOrder"]
    }
  },
  "resources": [
    {"type": "image/jpeg", "width": 20, "height": 20},
    {"type": "image/png", "width": 200, "height": 200}
  ]
}`

// WriteManifest writes a manifest document to dir/name and returns its path.
func WriteManifest(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest %s: %v", path, err)
	}
	return path
}
