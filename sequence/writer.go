// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sequence

import (
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Writer writes records in FASTA format.
type Writer struct {
	w     io.Writer
	width int
}

// NewWriter returns a Writer that wraps sequence lines at width letters.
// If width is not positive sequences are written on a single line.
func NewWriter(w io.Writer, width int) *Writer {
	return &Writer{w: w, width: width}
}

// Write writes a single record.
func (w *Writer) Write(r Record) error {
	width := w.width
	if width <= 0 {
		width = r.Len()
		if width == 0 {
			width = 1
		}
	}
	s := linear.NewSeq(r.ID(), alphabet.BytesToLetters([]byte(r.Seq())), alphabet.Protein)
	_, err := fasta.NewWriter(w.w, width).Write(s)
	return err
}

// WriteAll writes all records in order.
func (w *Writer) WriteAll(recs []Record) error {
	for _, r := range recs {
		err := w.Write(r)
		if err != nil {
			return err
		}
	}
	return nil
}
