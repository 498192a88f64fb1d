// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package extract retrieves FASTA records by identifier from reference
// sequence files.
//
// Three back-ends implement Extractor. External delegates matching to the
// fxtract tool, Indexed keeps a per-file index of header offsets and Scan
// makes a single pass over the reference. All of them return records in
// reference file order and only return records whose identifier exactly
// equals one of the requested identifiers.
package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/AroneyS/singlem/sequence"
)

// Extractor is the interface implemented by sequence extraction back-ends.
type Extractor interface {
	// Extract returns the records in the FASTA file at path whose
	// identifiers are in ids.
	Extract(ids []string, path string) ([]sequence.Record, error)
}

// Back-end names accepted by New.
const (
	BackendFxtract = "fxtract"
	BackendIndex   = "index"
	BackendScan    = "scan"
)

// New returns the Extractor for the named back-end. The fxtract argument
// is the path to the fxtract binary and is only used by the fxtract
// back-end; if it is empty fxtract is looked up in $PATH.
func New(backend, fxtract string) (Extractor, error) {
	switch backend {
	case "", BackendFxtract:
		return External{Cmd: fxtract}, nil
	case BackendIndex:
		return NewIndexed(), nil
	case BackendScan:
		return Scan{}, nil
	default:
		return nil, fmt.Errorf("extract: unknown back-end %q", backend)
	}
}

// InputError is returned when an extraction request is invalid.
type InputError struct {
	Index  int // index of the offending identifier or -1
	Reason string
}

func (e *InputError) Error() string {
	if e.Index < 0 {
		return "extract: invalid request: " + e.Reason
	}
	return fmt.Sprintf("extract: invalid identifier at index %d: %s", e.Index, e.Reason)
}

// ToolError is returned when the external matching tool could not be run
// or exited with a non-zero status.
type ToolError struct {
	Cmd    string
	Err    error
	Stderr []byte
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("extract: %s: %v", e.Cmd, e.Err)
	if s := strings.TrimSpace(string(e.Stderr)); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

// request is a validated extraction request.
type request struct {
	ids []string // unique, in first requested order
	set map[string]struct{}
}

// newRequest validates ids and checks that path exists. The returned error
// is either an *InputError or the error from os.Stat.
func newRequest(ids []string, path string) (request, error) {
	if len(ids) == 0 {
		return request{}, &InputError{Index: -1, Reason: "no identifiers"}
	}
	req := request{set: make(map[string]struct{}, len(ids))}
	for i, id := range ids {
		switch {
		case id == "":
			return request{}, &InputError{Index: i, Reason: "empty identifier"}
		case strings.ContainsAny(id, "\r\n"):
			return request{}, &InputError{Index: i, Reason: fmt.Sprintf("identifier %q contains a newline", id)}
		}
		if _, dup := req.set[id]; dup {
			continue
		}
		req.set[id] = struct{}{}
		req.ids = append(req.ids, id)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return request{}, err
	}
	if fi.IsDir() {
		return request{}, &os.PathError{Op: "extract", Path: path, Err: fmt.Errorf("is a directory")}
	}
	return req, nil
}

// has returns whether id was requested.
func (r request) has(id string) bool {
	_, ok := r.set[id]
	return ok
}

// filter returns the records in recs that were requested, preserving order.
func (r request) filter(recs []sequence.Record) []sequence.Record {
	kept := recs[:0]
	for _, rec := range recs {
		if r.has(rec.ID()) {
			kept = append(kept, rec)
		}
	}
	return kept
}
