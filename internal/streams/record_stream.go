package streams

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrStreamSealed    = errors.New("record stream is sealed")
	ErrStreamNotSealed = errors.New("record stream is not sealed")
)

// maxRecordBytes bounds one condensed record line.
const maxRecordBytes = 1024 * 1024

// RecordStream is the handoff buffer between the parser and the analyzer.
// It spills condensed records to a temp file so a multi-gigabyte day does
// not have to fit in memory.
//
// Ownership transfers in phases: a single writer Appends, then Seals; after
// that any number of full read passes may run via Rewind/Next. Appending
// after Seal and reading before Seal are errors. The stream is not safe for
// concurrent use; the pipeline is strictly sequential. Close discards the
// spill file.
type RecordStream struct {
	file    *os.File
	writer  *bufio.Writer
	scanner *bufio.Scanner
	sealed  bool
	count   int
}

// NewRecordStream creates an empty stream spilling to dir ("" means the
// system temp directory).
func NewRecordStream(dir string) (*RecordStream, error) {
	file, err := os.CreateTemp(dir, "records-*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to create record spill file: %w", err)
	}
	return &RecordStream{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

// Append writes one condensed record.
func (s *RecordStream) Append(record string) error {
	if s.sealed {
		return ErrStreamSealed
	}
	if _, err := s.writer.WriteString(record); err != nil {
		return err
	}
	if err := s.writer.WriteByte('\n'); err != nil {
		return err
	}
	s.count++
	return nil
}

// Seal flushes pending writes and switches the stream to its read phase,
// positioned at the first record.
func (s *RecordStream) Seal() error {
	if s.sealed {
		return ErrStreamSealed
	}
	if err := s.writer.Flush(); err != nil {
		return err
	}
	s.writer = nil
	s.sealed = true
	return s.Rewind()
}

// Rewind repositions the read cursor at the first record.
func (s *RecordStream) Rewind() error {
	if !s.sealed {
		return ErrStreamNotSealed
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	s.scanner = bufio.NewScanner(s.file)
	s.scanner.Buffer(make([]byte, 64*1024), maxRecordBytes)
	return nil
}

// Next returns the next record. ok is false once the stream is exhausted.
func (s *RecordStream) Next() (record string, ok bool, err error) {
	if !s.sealed {
		return "", false, ErrStreamNotSealed
	}
	if s.scanner.Scan() {
		return s.scanner.Text(), true, nil
	}
	return "", false, s.scanner.Err()
}

// Len returns the number of records appended.
func (s *RecordStream) Len() int {
	return s.count
}

// Close removes the spill file. The stream is unusable afterwards.
func (s *RecordStream) Close() error {
	name := s.file.Name()
	closeErr := s.file.Close()
	if err := os.Remove(name); err != nil && closeErr == nil {
		closeErr = err
	}
	return closeErr
}
