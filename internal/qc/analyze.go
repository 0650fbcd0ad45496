package qc

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"fastqscope/internal/fastq"
	"fastqscope/internal/qcconfig"
	"fastqscope/internal/qcerr"
)

// Analyze runs the full streaming pipeline over path: decode, accumulate,
// finalize, grade. Progress lines are written to progressOut as decoding
// proceeds, followed by a final "PROGRESS:100" once the report is graded.
// ctx is checked once per progress-tick boundary; cancellation
// aborts the run with no partial report.
func Analyze(ctx context.Context, path string, cfg *qcconfig.Config, progressOut io.Writer) (*Report, error) {
	stream, err := fastq.Open(path)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	dec := fastq.NewDecoder(stream)
	bank := NewBank(cfg.Limits)
	emitter := NewProgressEmitter(progressOut, cfg.Progress.RecordCadence, cfg.Progress.CapPercent)

	for {
		rec, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		bank.AddRecord(rec)

		if cfg.Progress.RecordCadence > 0 && bank.TotalReads%int64(cfg.Progress.RecordCadence) == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &qcerr.InternalError{Err: context.Cause(ctx)}
			}
			if err := emitter.Tick(bank.TotalReads, stream.CompressedPos(), stream.CompressedSize()); err != nil {
				return nil, &qcerr.IoError{Path: path, Err: err}
			}
		}
	}

	report := Finalize(bank, filepath.Base(path))
	Grade(report, cfg.Thresholds)
	if _, err := fmt.Fprintf(progressOut, "PROGRESS:100\n"); err != nil {
		return nil, &qcerr.IoError{Path: path, Err: err}
	}
	return report, nil
}
