package fastq

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
)

func TestOpenPlainAndGzipAgree(t *testing.T) {
	content := "@r1\nACGTACGT\n+\nIIIIIIII\n@r2\nTTTTGGGG\n+\n!!!!!!!!\n"

	dir := t.TempDir()
	plainPath := filepath.Join(dir, "reads.fastq")
	if err := os.WriteFile(plainPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing plain file: %v", err)
	}

	var buf bytes.Buffer
	gw := pgzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(content)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	gzPath := filepath.Join(dir, "reads.fastq.gz")
	if err := os.WriteFile(gzPath, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing gz file: %v", err)
	}

	plainRecords, err := decodeAll(t, plainPath)
	if err != nil {
		t.Fatalf("decoding plain file: %v", err)
	}
	gzRecords, err := decodeAll(t, gzPath)
	if err != nil {
		t.Fatalf("decoding gzip file: %v", err)
	}

	if len(plainRecords) != len(gzRecords) {
		t.Fatalf("record count mismatch: plain=%d gz=%d", len(plainRecords), len(gzRecords))
	}
	for i := range plainRecords {
		if string(plainRecords[i].Sequence) != string(gzRecords[i].Sequence) {
			t.Errorf("record %d sequence mismatch", i)
		}
	}
}

func TestCompressedPosAdvancesAgainstDiskSize(t *testing.T) {
	path := writeTemp(t, "progress.fastq", "@r1\nACGT\n+\nIIII\n")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if s.CompressedSize() <= 0 {
		t.Fatalf("want positive compressed size, got %d", s.CompressedSize())
	}

	dec := NewDecoder(s)
	for {
		if _, err := dec.Next(); err != nil {
			break
		}
	}

	if s.CompressedPos() <= 0 {
		t.Errorf("want CompressedPos to advance, got %d", s.CompressedPos())
	}
	if s.CompressedPos() > s.CompressedSize() {
		t.Errorf("CompressedPos %d exceeds CompressedSize %d", s.CompressedPos(), s.CompressedSize())
	}
}

func TestOpenMissingFileFails(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist.fastq"))
	if err == nil {
		t.Fatal("want error opening missing file")
	}
}
