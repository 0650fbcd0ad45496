package qc

// Report is the full analyzer output document, per spec.md §6.
type Report struct {
	Filename      string  `json:"filename"`
	Platform      string  `json:"platform"`
	TotalReads    int64   `json:"total_reads"`
	TotalBases    int64   `json:"total_bases"`
	AvgReadLength float64 `json:"avg_read_length"`
	GCContent     float64 `json:"gc_content"`
	AvgQScore     float64 `json:"avg_q_score"`
	MinLen        int     `json:"min_len"`
	MaxLen        int     `json:"max_len"`
	N50           int     `json:"n50"`

	LengthDistribution             []LengthBin          `json:"length_distribution"`
	QualityDistribution            []QualityPoint       `json:"quality_distribution"`
	PerSequenceQualityDistribution []SeqQualityPoint    `json:"per_sequence_quality_distribution"`
	PerSequenceGCDistribution      []SeqGCPoint         `json:"per_sequence_gc_distribution"`
	TheoreticalGCDistribution      []TheoreticalGCPoint `json:"theoretical_gc_distribution"`
	PerBaseSequenceContent         []BaseContentBin     `json:"per_base_sequence_content"`
	DuplicationLevels              []DuplicationLevel   `json:"duplication_levels"`
	OverrepresentedSequences       []OverrepresentedSeq `json:"overrepresented_sequences"`
	AdapterContent                 []AdapterPercentage  `json:"adapter_content"`

	QualityStatus QualityStatus `json:"quality_status"`
}

// LengthBin is one entry of length_distribution.
type LengthBin struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

// QualityPoint is one entry of quality_distribution (mean quality at a position).
type QualityPoint struct {
	Pos     int     `json:"pos"`
	Quality float64 `json:"quality"`
}

// SeqQualityPoint is one entry of per_sequence_quality_distribution.
type SeqQualityPoint struct {
	Quality int   `json:"quality"`
	Count   int64 `json:"count"`
}

// SeqGCPoint is one entry of per_sequence_gc_distribution.
type SeqGCPoint struct {
	GC    int   `json:"gc"`
	Count int64 `json:"count"`
}

// TheoreticalGCPoint is one entry of theoretical_gc_distribution.
type TheoreticalGCPoint struct {
	GC    int     `json:"gc"`
	Count float64 `json:"count"`
}

// BaseContentBin is one entry of per_base_sequence_content.
type BaseContentBin struct {
	Pos string  `json:"pos"`
	A   float64 `json:"A"`
	T   float64 `json:"T"`
	G   float64 `json:"G"`
	C   float64 `json:"C"`
	N   float64 `json:"N"`
}

// DuplicationLevel is one entry of duplication_levels.
type DuplicationLevel struct {
	Level      string  `json:"level"`
	Percentage float64 `json:"percentage"`
}

// OverrepresentedSeq is one entry of overrepresented_sequences.
type OverrepresentedSeq struct {
	Sequence       string  `json:"sequence"`
	Count          int64   `json:"count"`
	Percentage     float64 `json:"percentage"`
	PossibleSource string  `json:"possible_source"`
}

// AdapterPercentage is one entry of adapter_content.
type AdapterPercentage struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// MetricStatus is one entry of quality_status.metrics.
type MetricStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// QualityStatus is the quality_status top-level object.
type QualityStatus struct {
	Overall    string                  `json:"overall"`
	Metrics    map[string]MetricStatus `json:"metrics"`
	PassCount  int                     `json:"pass_count"`
	WarnCount  int                     `json:"warn_count"`
	FailCount  int                     `json:"fail_count"`
}
