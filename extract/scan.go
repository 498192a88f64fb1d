// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import (
	"bufio"
	"io"
	"os"

	"github.com/biogo/hts/bgzf"

	"github.com/AroneyS/singlem/sequence"
)

// Scan is an Extractor that reads the entire reference file for each
// request. The reference may be BGZF compressed. Scan holds no state.
type Scan struct{}

// Extract returns the records in the FASTA file at path whose identifiers
// are in ids, in file order.
func (Scan) Extract(ids []string, path string) ([]sequence.Record, error) {
	req, err := newRequest(ids, path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := decompress(f)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	recs := []sequence.Record{}
	fr := sequence.NewReader(r)
	for {
		rec, err := fr.Read()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		if req.has(rec.ID()) {
			recs = append(recs, rec)
		}
	}
}

// decompress returns a reader for the contents of r, decompressing
// BGZF input.
func decompress(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil || magic[0] != 0x1f || magic[1] != 0x8b {
		return io.NopCloser(br), nil
	}
	return bgzf.NewReader(br, 0)
}
