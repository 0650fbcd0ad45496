package fastq

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"fastqscope/internal/qcerr"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func decodeAll(t *testing.T, path string) ([]*Record, error) {
	t.Helper()
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	dec := NewDecoder(s)
	var records []*Record
	for {
		rec, err := dec.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

func TestDecodeSingleRecord(t *testing.T) {
	path := writeTemp(t, "one.fastq", "@r1\nACGTACGT\n+\nIIIIIIII\n")

	records, err := decodeAll(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("want 1 record, got %d", len(records))
	}
	rec := records[0]
	if string(rec.Header) != "r1" {
		t.Errorf("header = %q, want %q", rec.Header, "r1")
	}
	if string(rec.Sequence) != "ACGTACGT" {
		t.Errorf("sequence = %q", rec.Sequence)
	}
	if string(rec.Quality) != "IIIIIIII" {
		t.Errorf("quality = %q", rec.Quality)
	}
}

func TestDecodeTolerateCRLF(t *testing.T) {
	path := writeTemp(t, "crlf.fastq", "@r1\r\nACGT\r\n+\r\nIIII\r\n")

	records, err := decodeAll(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || string(records[0].Sequence) != "ACGT" {
		t.Fatalf("got %+v", records)
	}
}

func TestDecodeEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.fastq", "")

	records, err := decodeAll(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("want 0 records, got %d", len(records))
	}
}

func TestDecodeLengthMismatchFails(t *testing.T) {
	path := writeTemp(t, "mismatch.fastq", "@r1\nACGT\n+\nIII\n")

	_, err := decodeAll(t, path)
	var perr *qcerr.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *qcerr.ParseError, got %v", err)
	}
}

func TestDecodeMissingAtFails(t *testing.T) {
	path := writeTemp(t, "noat.fastq", "r1\nACGT\n+\nIIII\n")

	_, err := decodeAll(t, path)
	var perr *qcerr.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *qcerr.ParseError, got %v", err)
	}
}

func TestDecodeMissingPlusFails(t *testing.T) {
	path := writeTemp(t, "noplus.fastq", "@r1\nACGT\nx\nIIII\n")

	_, err := decodeAll(t, path)
	var perr *qcerr.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *qcerr.ParseError, got %v", err)
	}
}

func TestDecodeTruncatedRecordFails(t *testing.T) {
	path := writeTemp(t, "truncated.fastq", "@r1\nACGT\n+\n")

	_, err := decodeAll(t, path)
	var perr *qcerr.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *qcerr.ParseError, got %v", err)
	}
}

func TestDecodeTwoRecords(t *testing.T) {
	path := writeTemp(t, "two.fastq", "@r1\nACGT\n+\nIIII\n@r2\nTTTT\n+\n!!!!\n")

	records, err := decodeAll(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("want 2 records, got %d", len(records))
	}
	if string(records[1].Header) != "r2" || string(records[1].Sequence) != "TTTT" {
		t.Errorf("second record = %+v", records[1])
	}
}
