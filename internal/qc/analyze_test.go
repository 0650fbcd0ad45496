package qc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fastqscope/internal/qcconfig"
	"fastqscope/internal/qcerr"
)

func writeFastq(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.fastq")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestAnalyzeSingleReadEndToEnd(t *testing.T) {
	path := writeFastq(t, "@r1\nACGTACGT\n+\nIIIIIIII\n")
	cfg := qcconfig.Default()

	var progress bytes.Buffer
	report, err := Analyze(context.Background(), path, cfg, &progress)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.TotalReads != 1 || report.TotalBases != 8 {
		t.Errorf("TotalReads/TotalBases = %d/%d, want 1/8", report.TotalReads, report.TotalBases)
	}
	if report.GCContent != 50.0 {
		t.Errorf("GCContent = %v, want 50.0", report.GCContent)
	}
	if report.AvgQScore != 40.0 {
		t.Errorf("AvgQScore = %v, want 40.0", report.AvgQScore)
	}
	if report.N50 != 8 {
		t.Errorf("N50 = %d, want 8", report.N50)
	}
	if report.Platform != "Short Read" {
		t.Errorf("Platform = %q, want %q", report.Platform, "Short Read")
	}
	if report.QualityStatus.Overall != "pass" {
		t.Errorf("overall = %q, want pass", report.QualityStatus.Overall)
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	path := writeFastq(t, "@r1\nACGTACGT\n+\nIIIIIIII\n@r2\nTTTTGGGG\n+\nHHHHHHHH\n")
	cfg := qcconfig.Default()

	r1, err := Analyze(context.Background(), path, cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Analyze (1): %v", err)
	}
	r2, err := Analyze(context.Background(), path, cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Analyze (2): %v", err)
	}

	if r1.TotalReads != r2.TotalReads || r1.GCContent != r2.GCContent || r1.N50 != r2.N50 {
		t.Errorf("repeated analysis diverged: %+v vs %+v", r1, r2)
	}
	if len(r1.OverrepresentedSequences) != len(r2.OverrepresentedSequences) {
		t.Errorf("overrepresented sequence count diverged between runs")
	}
}

func TestAnalyzeMissingFileReturnsIoError(t *testing.T) {
	cfg := qcconfig.Default()
	_, err := Analyze(context.Background(), filepath.Join(t.TempDir(), "nope.fastq"), cfg, &bytes.Buffer{})
	var ioErr *qcerr.IoError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *qcerr.IoError for missing file, got %v", err)
	}
}

func TestAnalyzeMalformedRecordReturnsError(t *testing.T) {
	path := writeFastq(t, "@r1\nACGT\n+\nII\n") // quality shorter than sequence
	cfg := qcconfig.Default()

	_, err := Analyze(context.Background(), path, cfg, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for length-mismatched record")
	}
}

func TestAnalyzeEmitsProgressAtCadence(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 3; i++ {
		sb.WriteString("@r\nACGT\n+\nIIII\n")
	}
	path := writeFastq(t, sb.String())

	cfg := qcconfig.Default()
	cfg.Progress.RecordCadence = 1

	var progress bytes.Buffer
	_, err := Analyze(context.Background(), path, cfg, &progress)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if progress.Len() == 0 {
		t.Error("expected at least one progress line at cadence=1")
	}
	if !strings.Contains(progress.String(), "PROGRESS:") {
		t.Errorf("progress output missing PROGRESS: prefix, got %q", progress.String())
	}
}

func TestAnalyzeRespectsCanceledContext(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 5000; i++ {
		sb.WriteString("@r\nACGT\n+\nIIII\n")
	}
	path := writeFastq(t, sb.String())

	cfg := qcconfig.Default()
	cfg.Progress.RecordCadence = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Analyze(ctx, path, cfg, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
}
