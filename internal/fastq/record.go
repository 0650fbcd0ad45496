package fastq

import (
	"bytes"
	"io"

	"fastqscope/internal/qcerr"
)

// Record is one FASTQ read: header and separator keep their leading
// '@'/'+' byte stripped; sequence and quality are always equal length.
type Record struct {
	Header    []byte
	Sequence  []byte
	Separator []byte
	Quality   []byte
}

// Decoder turns a Stream into a lazy sequence of Records. It holds at
// most one record in flight and never buffers the whole file.
type Decoder struct {
	stream *Stream
	line   int
}

// NewDecoder wraps an opened Stream.
func NewDecoder(s *Stream) *Decoder {
	return &Decoder{stream: s}
}

// Next returns the next record, io.EOF when the stream is exhausted
// cleanly (no partial record pending), or a *qcerr.ParseError for
// malformed input.
func (d *Decoder) Next() (*Record, error) {
	header, err := d.readLine()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	if len(header) == 0 || header[0] != '@' {
		return nil, &qcerr.ParseError{Line: d.line, Reason: "header line must start with '@'"}
	}

	seq, err := d.readLineNoEOF("sequence")
	if err != nil {
		return nil, err
	}

	sep, err := d.readLineNoEOF("separator")
	if err != nil {
		return nil, err
	}
	if len(sep) == 0 || sep[0] != '+' {
		return nil, &qcerr.ParseError{Line: d.line, Reason: "separator line must start with '+'"}
	}

	qual, err := d.readLineNoEOF("quality")
	if err != nil {
		return nil, err
	}

	if len(seq) != len(qual) {
		return nil, &qcerr.ParseError{Line: d.line, Reason: "sequence and quality length mismatch"}
	}

	return &Record{
		Header:    header[1:],
		Sequence:  seq,
		Separator: sep[1:],
		Quality:   qual,
	}, nil
}

// readLine reads one newline-delimited line, stripping the trailing
// "\r\n" or "\n". It returns io.EOF only when no bytes were read at all.
func (d *Decoder) readLine() ([]byte, error) {
	line, err := d.stream.reader.ReadBytes('\n')
	if len(line) == 0 && err == io.EOF {
		return nil, io.EOF
	}
	if err != nil && err != io.EOF {
		return nil, &qcerr.IoError{Path: "", Err: err}
	}
	d.line++
	line = bytes.TrimRight(line, "\r\n")
	return line, nil
}

// readLineNoEOF reads a line that must exist; EOF here means the record
// was truncated mid-way and is therefore malformed.
func (d *Decoder) readLineNoEOF(what string) ([]byte, error) {
	line, err := d.readLine()
	if err == io.EOF {
		return nil, &qcerr.ParseError{Line: d.line + 1, Reason: "unexpected end of file reading " + what + " line"}
	}
	return line, err
}
