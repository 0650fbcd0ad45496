// Package fastq implements the streaming FASTQ input stage: transparent
// gzip decompression with compressed-byte progress tracking, and a
// single-pass record decoder.
package fastq

import (
	"bufio"
	"os"
	"strings"
	"sync/atomic"

	"github.com/klauspost/pgzip"

	"fastqscope/internal/qcerr"
)

// countingReader wraps the raw file descriptor and tracks bytes consumed
// from it. Wrapping the descriptor this way lets progress track the
// on-disk (compressed) position even when the gzip reader sitting on top
// of it doesn't expose its own offset.
type countingReader struct {
	r    *os.File
	read int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	atomic.AddInt64(&c.read, int64(n))
	return n, err
}

func (c *countingReader) Pos() int64 {
	return atomic.LoadInt64(&c.read)
}

// Stream is an opened FASTQ input: a byte reader plus progress
// accessors against the underlying compressed file size.
type Stream struct {
	file    *os.File
	gz      *pgzip.Reader
	counter *countingReader
	reader  *bufio.Reader
	size    int64
}

// Open opens path, transparently decompressing when the name ends in
// ".gz" (case-insensitive). It fails with *qcerr.IoError if the file
// cannot be opened, or *qcerr.DecompressError if gzip framing is bad.
func Open(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &qcerr.IoError{Path: path, Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &qcerr.IoError{Path: path, Err: err}
	}

	counter := &countingReader{r: f}

	var (
		reader *bufio.Reader
		gz     *pgzip.Reader
	)
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err = pgzip.NewReader(counter)
		if err != nil {
			f.Close()
			return nil, &qcerr.DecompressError{Path: path, Err: err}
		}
		reader = bufio.NewReaderSize(gz, 1<<20)
	} else {
		reader = bufio.NewReaderSize(counter, 1<<20)
	}

	return &Stream{file: f, gz: gz, counter: counter, reader: reader, size: info.Size()}, nil
}

// Close releases the gzip reader (stopping its read-ahead), when there
// is one, and then the file descriptor. Safe to call multiple times.
func (s *Stream) Close() error {
	if s.gz != nil {
		s.gz.Close()
	}
	return s.file.Close()
}

// CompressedPos returns the number of bytes consumed from the underlying
// on-disk file so far.
func (s *Stream) CompressedPos() int64 {
	return s.counter.Pos()
}

// CompressedSize returns the on-disk size of the file, used as the
// progress denominator.
func (s *Stream) CompressedSize() int64 {
	return s.size
}
