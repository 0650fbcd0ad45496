package qcconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesReferenceConstants(t *testing.T) {
	cfg := Default()
	if cfg.Thresholds.PerBaseQualityPass != 25 {
		t.Errorf("PerBaseQualityPass = %v, want 25", cfg.Thresholds.PerBaseQualityPass)
	}
	if cfg.Limits.MaxDistinctSequences != 100_000 {
		t.Errorf("MaxDistinctSequences = %v, want 100000", cfg.Limits.MaxDistinctSequences)
	}
	if cfg.Progress.RecordCadence != 1000 || cfg.Progress.CapPercent != 99 {
		t.Errorf("Progress = %+v, want {1000 99}", cfg.Progress)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Thresholds != Default().Thresholds {
		t.Errorf("got %+v, want defaults", cfg.Thresholds)
	}
}

func TestLoadOverridesLayerOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qc.yaml")
	yaml := "thresholds:\n  per_base_quality_pass: 30\nlimits:\n  max_positions: 50\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Thresholds.PerBaseQualityPass != 30 {
		t.Errorf("PerBaseQualityPass = %v, want 30", cfg.Thresholds.PerBaseQualityPass)
	}
	if cfg.Limits.MaxPositions != 50 {
		t.Errorf("MaxPositions = %v, want 50", cfg.Limits.MaxPositions)
	}
	// Unset keys still fall back to defaults.
	if cfg.Thresholds.AdapterPass != 5 {
		t.Errorf("AdapterPass = %v, want 5 (default)", cfg.Thresholds.AdapterPass)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("want error loading missing config file")
	}
}
