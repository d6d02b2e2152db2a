package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/tvdtogt/a11yExtractor/internal/record"
	"github.com/tvdtogt/a11yExtractor/internal/testsupport"
)

func TestInspectPrintsRecord(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteManifest(t, dir, "book.json", testsupport.SampleManifest)

	out, _, err := runCLI(t, []string{"inspect", path}, "")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "nonVisualReading")
	requireContains(t, out, "9789012345678")

	out, _, err = runCLI(t, []string{"inspect", "--json", path}, "")
	if err != nil {
		t.Fatalf("inspect --json: %v", err)
	}
	var row record.Record
	if err := json.Unmarshal([]byte(out), &row); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if row.FileName != "book.json" || !row.NonVisualReading || !row.TableOfContents {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestInspectReportsLoadFailure(t *testing.T) {
	path := testsupport.WriteManifest(t, t.TempDir(), "bad.json", "not json")
	_, _, err := runCLI(t, []string{"inspect", path}, "")
	if err == nil {
		t.Fatal("expected load error")
	}
	requireContains(t, err.Error(), filepath.Base(path))
}
