// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sequence provides the sequence record type used by the
// extraction tools and a strict streaming FASTA parser for it.
package sequence

import "fmt"

// Record is a single FASTA record. A Record is immutable.
type Record struct {
	id  string
	seq string
}

// NewRecord returns a Record with the given identifier and sequence.
func NewRecord(id, seq string) Record {
	return Record{id: id, seq: seq}
}

// ID returns the record identifier, the complete header line after the
// leading '>'.
func (r Record) ID() string { return r.id }

// Seq returns the record's sequence.
func (r Record) Seq() string { return r.seq }

// Len returns the length of the record's sequence.
func (r Record) Len() int { return len(r.seq) }

// String returns the record as unwrapped FASTA text.
func (r Record) String() string {
	return fmt.Sprintf(">%s\n%s", r.id, r.seq)
}

// FormatError is returned when FASTA text is not well formed.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("sequence: malformed fasta at line %d: %s", e.Line, e.Msg)
}
