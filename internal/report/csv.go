package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/tvdtogt/a11yExtractor/internal/fileutil"
	"github.com/tvdtogt/a11yExtractor/internal/record"
)

// WriteCSV writes records with a header row. Rows end in CRLF; line breaks
// inside a quoted value are written unchanged.
func WriteCSV(w io.Writer, records []record.Record) error {
	if len(records) == 0 {
		return ErrNoValidInput
	}
	writer := newRowWriter(w)
	if err := gocsv.MarshalCSV(records, writer); err != nil {
		return fmt.Errorf("marshal csv: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// rowWriter is a gocsv.CSVWriter that encodes one row at a time with LF
// endings and swaps only the row terminator for CRLF. csv.Writer with
// UseCRLF set would also rewrite "\n" inside quoted values.
type rowWriter struct {
	out io.Writer
	buf bytes.Buffer
	enc *csv.Writer
	err error
}

func newRowWriter(out io.Writer) *rowWriter {
	rw := &rowWriter{out: out}
	rw.enc = csv.NewWriter(&rw.buf)
	return rw
}

func (rw *rowWriter) Write(row []string) error {
	if rw.err != nil {
		return rw.err
	}
	rw.buf.Reset()
	if err := rw.enc.Write(row); err != nil {
		rw.err = err
		return err
	}
	rw.enc.Flush()
	if err := rw.enc.Error(); err != nil {
		rw.err = err
		return err
	}
	line := bytes.TrimSuffix(rw.buf.Bytes(), []byte("\n"))
	if _, err := rw.out.Write(append(line, '\r', '\n')); err != nil {
		rw.err = err
		return err
	}
	return nil
}

func (rw *rowWriter) Flush() {}

func (rw *rowWriter) Error() error { return rw.err }

// WriteFile writes the report to path, creating its directory. The file is
// replaced only once every row has been written.
func WriteFile(path string, records []record.Record) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReadCSV reads a report written by WriteCSV.
func ReadCSV(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var records []record.Record
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return records, nil
}
