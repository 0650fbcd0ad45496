package qc

import (
	"fmt"
	"io"
)

// ProgressEmitter writes "PROGRESS:<n>\n" lines to w at a fixed record
// cadence, tracking compressed-file position against its size. It never
// emits 100; the caller produces that once the final report is ready.
type ProgressEmitter struct {
	w          io.Writer
	cadence    int
	capPercent int
	lastRecord int64
}

// NewProgressEmitter builds an emitter writing to w.
func NewProgressEmitter(w io.Writer, cadence, capPercent int) *ProgressEmitter {
	return &ProgressEmitter{w: w, cadence: cadence, capPercent: capPercent}
}

// Tick emits a progress line when recordsSoFar is a multiple of
// `cadence` and does nothing otherwise.
func (p *ProgressEmitter) Tick(recordsSoFar int64, compressedPos, compressedSize int64) error {
	if p.cadence <= 0 || recordsSoFar%int64(p.cadence) != 0 {
		return nil
	}
	percent := 0
	if compressedSize > 0 {
		percent = int(100 * compressedPos / compressedSize)
	}
	if percent > p.capPercent {
		percent = p.capPercent
	}
	_, err := fmt.Fprintf(p.w, "PROGRESS:%d\n", percent)
	return err
}
