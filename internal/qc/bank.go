// Package qc implements the accumulator bank, finalizer, grader, and
// progress emitter: the streaming core of the analyzer.
package qc

import (
	"bytes"

	"fastqscope/internal/fastq"
	"fastqscope/internal/qcconfig"
)

// adapterProbes is the fixed ordered table of adapter substrings probed
// per read. Order is preserved in adapter_content output.
var adapterProbes = []struct {
	Name  string
	Probe string
}{
	{"Illumina Universal", "AGATCGGAAGAG"},
	{"Nextera", "CTGTCTCTTATA"},
	{"Small RNA", "TGGAATTCTCGG"},
}

// baseCounts tallies A/T/G/C/N occurrences at one read position.
type baseCounts struct {
	A, T, G, C, N int64
}

// Bank is the online statistics accumulator: a single writer mutates it
// one record at a time, in file order, for the life of one analysis run.
type Bank struct {
	limits qcconfig.Limits

	TotalReads int64
	TotalBases int64
	GCCount    int64
	QScoreSum  int64
	MinLen     int
	MaxLen     int

	LengthHist map[int]int64

	posQualitySum []int64
	posQualityN   []int64
	perBaseContent []baseCounts

	PerSeqQualityHist map[int]int64
	PerSeqGCHist      map[int]int64

	SeqCount     map[string]int64
	seqOrder     []string // insertion order, capped at limits.MaxDistinctSequences
	AdapterHits  map[string]int64
	ReadLengths  []int
	FirstHeader  []byte

	upperBuf []byte // scratch, reused across AddRecord calls
}

// NewBank allocates a fresh bank sized by cfg's limits.
func NewBank(cfg qcconfig.Limits) *Bank {
	b := &Bank{
		limits:            cfg,
		LengthHist:        make(map[int]int64),
		posQualitySum:     make([]int64, cfg.MaxPositions),
		posQualityN:       make([]int64, cfg.MaxPositions),
		perBaseContent:    make([]baseCounts, cfg.MaxPositions),
		PerSeqQualityHist: make(map[int]int64),
		PerSeqGCHist:      make(map[int]int64),
		SeqCount:          make(map[string]int64),
		AdapterHits:       make(map[string]int64),
	}
	return b
}

// AddRecord feeds one decoded record through every accumulator, per
// spec.md §4.3.
func (b *Bank) AddRecord(rec *fastq.Record) {
	length := len(rec.Sequence)

	if b.TotalReads == 0 {
		b.MinLen = length
		b.MaxLen = length
	} else {
		if length < b.MinLen {
			b.MinLen = length
		}
		if length > b.MaxLen {
			b.MaxLen = length
		}
	}
	b.TotalReads++
	b.TotalBases += int64(length)
	b.LengthHist[(length/10)*10]++

	if len(b.ReadLengths) < b.limits.MaxLengthSample {
		b.ReadLengths = append(b.ReadLengths, length)
	}

	if cap(b.upperBuf) < length {
		b.upperBuf = make([]byte, length)
	}
	upper := b.upperBuf[:length]
	for i, base := range rec.Sequence {
		upper[i] = toUpperBase(base)
	}

	gc := 0
	for _, base := range upper {
		if base == 'G' || base == 'C' {
			gc++
		}
	}
	b.GCCount += int64(gc)

	qsum := 0
	for _, q := range rec.Quality {
		qsum += int(q) - 33
	}
	b.QScoreSum += int64(qsum)

	firstN := length
	if firstN > b.limits.MaxPositions {
		firstN = b.limits.MaxPositions
	}
	for i := 0; i < firstN; i++ {
		b.posQualitySum[i] += int64(rec.Quality[i]) - 33
		b.posQualityN[i]++

		switch upper[i] {
		case 'A':
			b.perBaseContent[i].A++
		case 'T':
			b.perBaseContent[i].T++
		case 'G':
			b.perBaseContent[i].G++
		case 'C':
			b.perBaseContent[i].C++
		default:
			b.perBaseContent[i].N++
		}
	}

	if length > 0 {
		meanQ := qsum / length // integer division mirrors floor for non-negative values
		b.PerSeqQualityHist[meanQ]++

		gcPct := (gc * 100) / length
		b.PerSeqGCHist[gcPct]++
	}

	seq := string(upper)
	if existing, ok := b.SeqCount[seq]; ok {
		b.SeqCount[seq] = existing + 1
	} else if len(b.SeqCount) < b.limits.MaxDistinctSequences {
		b.SeqCount[seq] = 1
		b.seqOrder = append(b.seqOrder, seq)
	}

	if b.TotalReads <= int64(b.limits.MaxAdapterReads) {
		for _, probe := range adapterProbes {
			if bytes.Contains(upper, []byte(probe.Probe)) {
				b.AdapterHits[probe.Name]++
			}
		}
	}

	if b.FirstHeader == nil {
		b.FirstHeader = append([]byte(nil), rec.Header...)
	}
}

func toUpperBase(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
