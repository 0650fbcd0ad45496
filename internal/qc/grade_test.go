package qc

import (
	"testing"

	"fastqscope/internal/qcconfig"
)

func TestGradeAllPassHighQualityRead(t *testing.T) {
	bank := NewBank(qcconfig.Default().Limits)
	bank.AddRecord(rec("r1", "ACGTACGT", "IIIIIIII"))
	report := Finalize(bank, "good.fastq")
	Grade(report, qcconfig.Default().Thresholds)

	if report.QualityStatus.Overall != "pass" {
		t.Errorf("overall = %q, want pass; metrics=%+v", report.QualityStatus.Overall, report.QualityStatus.Metrics)
	}
}

func TestGradePoorQualityFails(t *testing.T) {
	bank := NewBank(qcconfig.Default().Limits)
	bank.AddRecord(rec("r1", "ACGTACGT", "!!!!!!!!")) // Q0 throughout
	report := Finalize(bank, "bad.fastq")
	Grade(report, qcconfig.Default().Thresholds)

	m := report.QualityStatus.Metrics["per_base_quality"]
	if m.Status != "fail" {
		t.Errorf("per_base_quality status = %q, want fail", m.Status)
	}
	if report.QualityStatus.Overall != "fail" {
		t.Errorf("overall = %q, want fail", report.QualityStatus.Overall)
	}
}

func TestGradeExtremeGCContentFails(t *testing.T) {
	bank := NewBank(qcconfig.Default().Limits)
	bank.AddRecord(rec("r1", "GGGGGGGGGG", "IIIIIIIIII"))
	report := Finalize(bank, "gc.fastq")
	Grade(report, qcconfig.Default().Thresholds)

	if report.QualityStatus.Metrics["gc_content"].Status != "fail" {
		t.Errorf("gc_content status = %q, want fail (100%% GC)", report.QualityStatus.Metrics["gc_content"].Status)
	}
}

func TestGradeNoAdaptersPasses(t *testing.T) {
	r := &Report{AdapterContent: nil}
	m := gradeAdapterContent(r.AdapterContent, qcconfig.Default().Thresholds)
	if m.Status != "pass" {
		t.Errorf("status = %q, want pass when no adapters detected", m.Status)
	}
}

func TestGradeMissingPerBaseQualityDataWarns(t *testing.T) {
	m := gradePerBaseQuality(nil, qcconfig.Default().Thresholds)
	if m.Status != "warn" {
		t.Errorf("status = %q, want warn on missing data", m.Status)
	}
}

func TestGradeMissingNContentDataPasses(t *testing.T) {
	m := gradeNContent(nil, qcconfig.Default().Thresholds)
	if m.Status != "pass" {
		t.Errorf("status = %q, want pass when n-content data is missing", m.Status)
	}
}

func TestGradeHighDuplicationFails(t *testing.T) {
	seqCount := map[string]int64{}
	for i := 0; i < 100; i++ {
		seqCount["AAAA"] = 100
	}
	levels := duplicationLevels(seqCount)
	m := gradeDuplication(levels, qcconfig.Default().Thresholds)
	if m.Status != "fail" {
		t.Errorf("status = %q, want fail when all reads fall in one high-duplication bucket", m.Status)
	}
}
