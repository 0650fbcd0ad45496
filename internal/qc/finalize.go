package qc

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"fastqscope/internal/qcconfig"
)

// Finalize derives a Report from a frozen Bank snapshot. It does not
// populate QualityStatus; call Grade on the result for that.
func Finalize(bank *Bank, filename string) *Report {
	r := &Report{
		Filename:   filename,
		TotalReads: bank.TotalReads,
		TotalBases: bank.TotalBases,
		MinLen:     bank.MinLen,
		MaxLen:     bank.MaxLen,
	}

	if bank.TotalReads > 0 {
		r.AvgReadLength = float64(bank.TotalBases) / float64(bank.TotalReads)
		r.GCContent = 100 * float64(bank.GCCount) / float64(bank.TotalBases)
		r.AvgQScore = float64(bank.QScoreSum) / float64(bank.TotalBases)
	}

	r.LengthDistribution = lengthDistribution(bank.LengthHist)
	r.QualityDistribution = qualityDistribution(bank.posQualitySum, bank.posQualityN)
	r.PerSequenceQualityDistribution = seqQualityDistribution(bank.PerSeqQualityHist)
	r.PerSequenceGCDistribution = seqGCDistribution(bank.PerSeqGCHist)
	r.TheoreticalGCDistribution = theoreticalGCDistribution(bank.PerSeqGCHist)
	r.PerBaseSequenceContent = perBaseSequenceContent(bank.perBaseContent)
	r.N50 = n50(bank.ReadLengths)
	r.DuplicationLevels = duplicationLevels(bank.SeqCount)
	r.OverrepresentedSequences = overrepresentedSequences(bank.SeqCount, bank.seqOrder, bank.TotalReads)
	r.AdapterContent = adapterContent(bank.AdapterHits, bank.TotalReads)
	r.Platform = inferPlatform(bank.FirstHeader, r.AvgReadLength, bank.TotalReads)

	return r
}

func lengthDistribution(hist map[int]int64) []LengthBin {
	keys := make([]int, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]LengthBin, 0, len(keys))
	for _, k := range keys {
		out = append(out, LengthBin{Range: strconv.Itoa(k) + "-" + strconv.Itoa(k+9), Count: hist[k]})
	}
	return out
}

func qualityDistribution(sum, n []int64) []QualityPoint {
	out := make([]QualityPoint, 0, len(sum))
	for i := range sum {
		if n[i] == 0 {
			continue
		}
		out = append(out, QualityPoint{Pos: i + 1, Quality: float64(sum[i]) / float64(n[i])})
	}
	return out
}

func seqQualityDistribution(hist map[int]int64) []SeqQualityPoint {
	keys := sortedIntKeys(hist)
	out := make([]SeqQualityPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, SeqQualityPoint{Quality: k, Count: hist[k]})
	}
	return out
}

func seqGCDistribution(hist map[int]int64) []SeqGCPoint {
	keys := sortedIntKeys(hist)
	out := make([]SeqGCPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, SeqGCPoint{GC: k, Count: hist[k]})
	}
	return out
}

func sortedIntKeys(m map[int]int64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// theoreticalGCDistribution fits a Gaussian to the observed per-sequence
// GC histogram and samples it at integer percentages 0..100.
func theoreticalGCDistribution(hist map[int]int64) []TheoreticalGCPoint {
	if len(hist) == 0 {
		return nil
	}

	keys := sortedIntKeys(hist)
	values := make([]float64, 0, len(keys))
	weights := make([]float64, 0, len(keys))
	var total int64
	for _, gc := range keys {
		values = append(values, float64(gc))
		weights = append(weights, float64(hist[gc]))
		total += hist[gc]
	}
	if total == 0 {
		return nil
	}

	mean := stat.Mean(values, weights)
	stddev := stat.StdDev(values, weights)

	if stddev == 0 {
		return []TheoreticalGCPoint{{GC: int(math.Floor(mean)), Count: float64(total)}}
	}

	normal := distuv.Normal{Mu: mean, Sigma: stddev}
	out := make([]TheoreticalGCPoint, 0, 101)
	for x := 0; x <= 100; x++ {
		out = append(out, TheoreticalGCPoint{GC: x, Count: normal.Prob(float64(x)) * float64(total)})
	}
	return out
}

// perBaseSequenceContent bins per-base composition: single-base bins for
// positions 1-9, five-base bins thereafter, truncated at the highest
// observed position.
func perBaseSequenceContent(content []baseCounts) []BaseContentBin {
	maxPos := -1
	for i, c := range content {
		if c.A+c.T+c.G+c.C+c.N > 0 {
			maxPos = i
		}
	}
	if maxPos < 0 {
		return nil
	}

	var out []BaseContentBin
	pos := 0
	for pos <= maxPos {
		var end int
		var label string
		if pos < 9 {
			end = pos + 1
			label = strconv.Itoa(pos + 1)
		} else {
			end = pos + 5
			if end > maxPos+1 {
				end = maxPos + 1
			}
			label = strconv.Itoa(pos+1) + "-" + strconv.Itoa(end)
		}

		var a, t, g, c, n, binTotal int64
		for i := pos; i < end; i++ {
			a += content[i].A
			t += content[i].T
			g += content[i].G
			c += content[i].C
			n += content[i].N
			binTotal += content[i].A + content[i].T + content[i].G + content[i].C + content[i].N
		}

		if binTotal > 0 {
			out = append(out, BaseContentBin{
				Pos: label,
				A:   100 * float64(a) / float64(binTotal),
				T:   100 * float64(t) / float64(binTotal),
				G:   100 * float64(g) / float64(binTotal),
				C:   100 * float64(c) / float64(binTotal),
				N:   100 * float64(n) / float64(binTotal),
			})
		}
		pos = end
	}
	return out
}

// n50 returns the length L such that the running sum of lengths, sorted
// descending, first reaches half the sample total.
func n50(lengths []int) int {
	if len(lengths) == 0 {
		return 0
	}
	sorted := append([]int(nil), lengths...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	var total int64
	for _, l := range sorted {
		total += int64(l)
	}

	half := float64(total) / 2
	var running int64
	for _, l := range sorted {
		running += int64(l)
		if float64(running) >= half {
			return l
		}
	}
	return sorted[len(sorted)-1]
}

var dupBucketLabels = []string{"1", "2", "3", "4", "5", "6-10", "11-50", "51-100", "100+"}

func dupBucketFor(count int64) string {
	switch {
	case count <= 5:
		return strconv.FormatInt(count, 10)
	case count <= 10:
		return "6-10"
	case count <= 50:
		return "11-50"
	case count <= 100:
		return "51-100"
	default:
		return "100+"
	}
}

func duplicationLevels(seqCount map[string]int64) []DuplicationLevel {
	buckets := make(map[string]int64, len(dupBucketLabels))
	for _, label := range dupBucketLabels {
		buckets[label] = 0
	}

	var totalDistinct int64
	for _, count := range seqCount {
		buckets[dupBucketFor(count)]++
		totalDistinct++
	}

	out := make([]DuplicationLevel, 0, len(dupBucketLabels))
	for _, label := range dupBucketLabels {
		var pct float64
		if totalDistinct > 0 {
			pct = 100 * float64(buckets[label]) / float64(totalDistinct)
		}
		out = append(out, DuplicationLevel{Level: label, Percentage: pct})
	}
	return out
}

// overrepresentedSequences returns the top five distinct sequences by
// count (breaking ties by first-seen order), restricted to count>1 and
// over 0.1% of total reads.
func overrepresentedSequences(seqCount map[string]int64, order []string, totalReads int64) []OverrepresentedSeq {
	type entry struct {
		seq   string
		count int64
	}
	entries := make([]entry, 0, len(order))
	for _, seq := range order {
		entries = append(entries, entry{seq: seq, count: seqCount[seq]})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].count > entries[j].count })

	var out []OverrepresentedSeq
	for _, e := range entries {
		if len(out) >= 5 {
			break
		}
		if e.count <= 1 || totalReads == 0 {
			continue
		}
		pct := 100 * float64(e.count) / float64(totalReads)
		if pct <= 0.1 {
			continue
		}
		out = append(out, OverrepresentedSeq{
			Sequence:       e.seq,
			Count:          e.count,
			Percentage:     pct,
			PossibleSource: "Unknown",
		})
	}
	return out
}

func adapterContent(hits map[string]int64, totalReads int64) []AdapterPercentage {
	var out []AdapterPercentage
	for _, probe := range adapterProbes {
		count, ok := hits[probe.Name]
		if !ok || count == 0 {
			continue
		}
		out = append(out, AdapterPercentage{
			Name:       probe.Name,
			Percentage: 100 * float64(count) / float64(totalReads),
		})
	}
	return out
}

// inferPlatform guesses the sequencing platform from the first header
// line. The heuristics, including the loose m-prefix PacBio check, are
// intentionally preserved as specified rather than refined.
func inferPlatform(header []byte, avgReadLength float64, totalReads int64) string {
	if totalReads == 0 || header == nil {
		return "Unknown"
	}
	h := string(header)

	switch {
	case strings.Contains(h, "runid=") || strings.Contains(h, "ch="):
		return "Nanopore"
	case strings.HasSuffix(h, "/ccs") || strings.HasPrefix(h, "m"):
		return "PacBio"
	case strings.HasPrefix(h, "V") || strings.HasPrefix(h, "E") || strings.HasPrefix(h, "CL"):
		if avgReadLength < 1000 {
			return "MGI"
		}
		return "Long Read (Unknown)"
	case strings.Count(h, ":") >= 4:
		return "Illumina"
	default:
		if avgReadLength > 1000 {
			return "Long Read"
		}
		return "Short Read"
	}
}
