package qc

import (
	"fmt"

	"fastqscope/internal/qcconfig"
)

// Grade applies the threshold table in spec.md §4.5 to a finalized
// report and fills in its QualityStatus. It never fails: a missing
// sub-metric degrades to warn (or pass for n_content/adapter_content).
func Grade(r *Report, th qcconfig.Thresholds) {
	metrics := map[string]MetricStatus{
		"per_base_quality":     gradePerBaseQuality(r.QualityDistribution, th),
		"per_sequence_quality": gradePerSequenceQuality(r.PerSequenceQualityDistribution, th),
		"per_base_content":     gradePerBaseContent(r.PerBaseSequenceContent, th),
		"gc_content":           gradeGCContent(r.GCContent, th),
		"n_content":            gradeNContent(r.PerBaseSequenceContent, th),
		"sequence_duplication": gradeDuplication(r.DuplicationLevels, th),
		"adapter_content":      gradeAdapterContent(r.AdapterContent, th),
	}

	var pass, warn, fail int
	for _, m := range metrics {
		switch m.Status {
		case "pass":
			pass++
		case "warn":
			warn++
		case "fail":
			fail++
		}
	}

	overall := "pass"
	if fail > 0 {
		overall = "fail"
	} else if warn > 0 {
		overall = "warn"
	}

	r.QualityStatus = QualityStatus{
		Overall:   overall,
		Metrics:   metrics,
		PassCount: pass,
		WarnCount: warn,
		FailCount: fail,
	}
}

func gradePerBaseQuality(dist []QualityPoint, th qcconfig.Thresholds) MetricStatus {
	var min float64
	found := false
	for _, p := range dist {
		if !found || p.Quality < min {
			min = p.Quality
			found = true
		}
	}
	if !found {
		return MetricStatus{Status: "warn", Message: "No quality data available"}
	}
	switch {
	case min >= th.PerBaseQualityPass:
		return MetricStatus{Status: "pass", Message: "All positions have good quality"}
	case min >= th.PerBaseQualityWarn:
		return MetricStatus{Status: "warn", Message: fmt.Sprintf("Some positions have quality below %.0f (min: %.1f)", th.PerBaseQualityPass, min)}
	default:
		return MetricStatus{Status: "fail", Message: fmt.Sprintf("Some positions have poor quality (min: %.1f)", min)}
	}
}

func gradePerSequenceQuality(dist []SeqQualityPoint, th qcconfig.Thresholds) MetricStatus {
	if len(dist) == 0 {
		return MetricStatus{Status: "warn", Message: "No per-sequence quality data"}
	}
	mode := dist[0]
	for _, p := range dist[1:] {
		if p.Count > mode.Count {
			mode = p
		}
	}
	switch {
	case float64(mode.Quality) >= th.PerSequenceQualityPass:
		return MetricStatus{Status: "pass", Message: fmt.Sprintf("Most sequences have good quality (mode: %d)", mode.Quality)}
	case float64(mode.Quality) >= th.PerSequenceQualityWarn:
		return MetricStatus{Status: "warn", Message: fmt.Sprintf("Average quality is moderate (mode: %d)", mode.Quality)}
	default:
		return MetricStatus{Status: "fail", Message: fmt.Sprintf("Most sequences have poor quality (mode: %d)", mode.Quality)}
	}
}

func gradePerBaseContent(bins []BaseContentBin, th qcconfig.Thresholds) MetricStatus {
	if len(bins) == 0 {
		return MetricStatus{Status: "warn", Message: "No base content data"}
	}
	var maxDiff float64
	for _, b := range bins {
		at := abs(b.A - b.T)
		gc := abs(b.G - b.C)
		if at > maxDiff {
			maxDiff = at
		}
		if gc > maxDiff {
			maxDiff = gc
		}
	}
	switch {
	case maxDiff <= th.PerBaseContentPass:
		return MetricStatus{Status: "pass", Message: "Base content is balanced"}
	case maxDiff <= th.PerBaseContentWarn:
		return MetricStatus{Status: "warn", Message: fmt.Sprintf("Some positions show base imbalance (%.1f%% difference)", maxDiff)}
	default:
		return MetricStatus{Status: "fail", Message: fmt.Sprintf("Significant base imbalance detected (%.1f%% difference)", maxDiff)}
	}
}

func gradeGCContent(gc float64, th qcconfig.Thresholds) MetricStatus {
	switch {
	case th.GCContentPass.Contains(gc):
		return MetricStatus{Status: "pass", Message: fmt.Sprintf("GC content is normal (%.1f%%)", gc)}
	case th.GCContentWarn.Contains(gc):
		return MetricStatus{Status: "warn", Message: fmt.Sprintf("GC content is unusual (%.1f%%)", gc)}
	default:
		return MetricStatus{Status: "fail", Message: fmt.Sprintf("GC content is extreme (%.1f%%)", gc)}
	}
}

func gradeNContent(bins []BaseContentBin, th qcconfig.Thresholds) MetricStatus {
	if len(bins) == 0 {
		return MetricStatus{Status: "pass", Message: "No N content issues detected"}
	}
	var maxN float64
	for _, b := range bins {
		if b.N > maxN {
			maxN = b.N
		}
	}
	switch {
	case maxN < th.NContentPass:
		return MetricStatus{Status: "pass", Message: fmt.Sprintf("Low N content (max: %.1f%%)", maxN)}
	case maxN < th.NContentWarn:
		return MetricStatus{Status: "warn", Message: fmt.Sprintf("Moderate N content (max: %.1f%%)", maxN)}
	default:
		return MetricStatus{Status: "fail", Message: fmt.Sprintf("High N content (max: %.1f%%)", maxN)}
	}
}

func gradeDuplication(levels []DuplicationLevel, th qcconfig.Thresholds) MetricStatus {
	var total float64
	for _, l := range levels {
		if l.Level == "1" {
			continue
		}
		total += l.Percentage
	}
	switch {
	case total < th.DuplicationPass:
		return MetricStatus{Status: "pass", Message: fmt.Sprintf("Low duplication (%.1f%%)", total)}
	case total < th.DuplicationWarn:
		return MetricStatus{Status: "warn", Message: fmt.Sprintf("Moderate duplication (%.1f%%)", total)}
	default:
		return MetricStatus{Status: "fail", Message: fmt.Sprintf("High duplication (%.1f%%)", total)}
	}
}

func gradeAdapterContent(adapters []AdapterPercentage, th qcconfig.Thresholds) MetricStatus {
	if len(adapters) == 0 {
		return MetricStatus{Status: "pass", Message: "No adapters detected"}
	}
	var maxPct float64
	for _, a := range adapters {
		if a.Percentage > maxPct {
			maxPct = a.Percentage
		}
	}
	switch {
	case maxPct < th.AdapterPass:
		return MetricStatus{Status: "pass", Message: "Low adapter content"}
	case maxPct < th.AdapterWarn:
		return MetricStatus{Status: "warn", Message: fmt.Sprintf("Some adapter contamination (%.1f%%)", maxPct)}
	default:
		return MetricStatus{Status: "fail", Message: fmt.Sprintf("High adapter contamination (%.1f%%)", maxPct)}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
