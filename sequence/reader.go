// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Reader is a streaming FASTA parser. Identifiers are taken from the
// complete header line and sequence lines are joined with whitespace
// removed. Records without sequence data, sequence data before the
// first header and empty identifiers are reported as a *FormatError.
type Reader struct {
	r    *bufio.Reader
	off  int64
	line int

	// header of the following record, read while
	// collecting the sequence of the current one.
	next     []byte
	nextOff  int64
	nextLine int

	recOff int64
	err    error
}

// NewReader returns a new Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Offset returns the byte offset in the underlying stream of the header
// line of the record most recently returned by Read.
func (r *Reader) Offset() int64 { return r.recOff }

// Read returns the next record. At the end of the stream it returns io.EOF.
// Once Read has returned an error all subsequent calls return the same error.
func (r *Reader) Read() (Record, error) {
	if r.err != nil {
		return Record{}, r.err
	}

	var (
		header []byte
		hOff   int64
		hLine  int
	)
	if r.next != nil {
		header, hOff, hLine = r.next, r.nextOff, r.nextLine
		r.next = nil
	} else {
		for {
			line, off, err := r.readLine()
			if err != nil {
				return r.fail(err)
			}
			if len(line) == 0 {
				continue
			}
			if line[0] != '>' {
				return r.fail(&FormatError{Line: r.line, Msg: "sequence data before first header"})
			}
			header, hOff, hLine = line, off, r.line
			break
		}
	}

	id := string(bytes.TrimSpace(header[1:]))
	if id == "" {
		return r.fail(&FormatError{Line: hLine, Msg: "empty identifier"})
	}

	var seq []byte
	for {
		line, off, err := r.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return r.fail(err)
		}
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			r.next, r.nextOff, r.nextLine = line, off, r.line
			break
		}
		for _, f := range bytes.Fields(line) {
			seq = append(seq, f...)
		}
	}
	if len(seq) == 0 {
		return r.fail(&FormatError{Line: hLine, Msg: fmt.Sprintf("record %q has no sequence", id)})
	}

	r.recOff = hOff
	return NewRecord(id, string(seq)), nil
}

func (r *Reader) fail(err error) (Record, error) {
	r.err = err
	return Record{}, err
}

// readLine returns the next line with surrounding white space removed and
// the offset of its first byte.
func (r *Reader) readLine() (line []byte, off int64, err error) {
	off = r.off
	b, err := r.r.ReadBytes('\n')
	r.off += int64(len(b))
	if len(b) == 0 {
		if err == nil {
			err = io.ErrNoProgress
		}
		return nil, off, err
	}
	if err != nil && err != io.EOF {
		return nil, off, err
	}
	r.line++
	return bytes.TrimSpace(b), off, nil
}

// ReadAll parses all records from r. No records are returned if any part of
// the input is malformed.
func ReadAll(r io.Reader) ([]Record, error) {
	recs := []Record{}
	fr := NewReader(r)
	for {
		rec, err := fr.Read()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
}
