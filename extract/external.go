// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import (
	"bytes"
	"strings"

	"github.com/AroneyS/singlem/fxtract"
	"github.com/AroneyS/singlem/sequence"
)

// External is an Extractor that runs fxtract to find matching headers.
// Each call to Extract runs one fxtract process and waits for it to
// complete. External is safe for concurrent use.
type External struct {
	// Cmd is the fxtract binary. If empty fxtract is
	// looked up in $PATH.
	Cmd string
}

// Extract returns the records in the FASTA file at path whose identifiers
// are in ids, in file order.
//
// Extract returns an *InputError if ids is empty or holds an identifier
// that cannot be passed to fxtract, a *ToolError if fxtract fails and a
// *sequence.FormatError if fxtract output is not valid FASTA.
func (e External) Extract(ids []string, path string) ([]sequence.Record, error) {
	req, err := newRequest(ids, path)
	if err != nil {
		return nil, err
	}

	cmd, err := fxtract.HeaderIDs(e.Cmd, path).BuildCommand()
	if err != nil {
		return nil, err
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(strings.Join(req.ids, "\n") + "\n")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err = cmd.Run()
	if err != nil {
		return nil, &ToolError{Cmd: strings.Join(cmd.Args, " "), Err: err, Stderr: stderr.Bytes()}
	}

	recs, err := sequence.ReadAll(&stdout)
	if err != nil {
		return nil, err
	}
	// fxtract is trusted for order but not for exactness.
	return req.filter(recs), nil
}
