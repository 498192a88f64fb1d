// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fxtract provides interaction with the fxtract fasta/fastq
// pattern extraction tool.
package fxtract

import (
	"errors"
	"os/exec"
	"text/template"

	"github.com/biogo/external"
)

var ErrMissingRequired = errors.New("fxtract: missing required argument")

// Stdin is the pattern file name that directs fxtract to read its
// patterns from standard input.
const Stdin = "/dev/stdin"

// FXTRACT defines parameters for the fxtract tool.
type FXTRACT struct {
	// Usage: fxtract [-hHvCSXrcz] -f <pattern_file> | <pattern> <file> [<file>]
	//
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}fxtract{{end}}"` // fxtract

	// Search context:
	Header   bool `buildarg:"{{if .}}-H{{end}}"` // -H: match against the header line
	Sequence bool `buildarg:"{{if .}}-S{{end}}"` // -S: match against the sequence
	Comment  bool `buildarg:"{{if .}}-C{{end}}"` // -C: match against the header comment

	// Pattern semantics:
	Exact  bool `buildarg:"{{if .}}-X{{end}}"` // -X: whole string, fixed match
	Regex  bool `buildarg:"{{if .}}-r{{end}}"` // -r: patterns are PCRE regular expressions
	Invert bool `buildarg:"{{if .}}-v{{end}}"` // -v: output records that do not match
	Count  bool `buildarg:"{{if .}}-c{{end}}"` // -c: output the number of matching records

	// Input compression:
	Gzip bool `buildarg:"{{if .}}-z{{end}}"` // -z: inputs are gzip compressed

	// Pattern source, one of:
	Patterns string `buildarg:"{{if .}}-f{{split}}{{.}}{{end}}"` // -f: file of patterns, one per line
	Pattern  string `buildarg:"{{if .}}{{.}}{{end}}"`            // a single pattern if Patterns is empty

	// Input files:
	Inputs []string `buildarg:"{{range $i, $f := .}}{{if $i}}{{split}}{{end}}{{$f}}{{end}}"` // "<file> [<file>]"
}

// BuildCommand returns an exec.Cmd built from the parameters in f.
func (f FXTRACT) BuildCommand() (*exec.Cmd, error) {
	if len(f.Inputs) == 0 || (f.Patterns == "" && f.Pattern == "") {
		return nil, ErrMissingRequired
	}
	if f.Patterns != "" && f.Pattern != "" {
		return nil, errors.New("fxtract: both pattern file and pattern specified")
	}
	cl := external.Must(external.Build(f, template.FuncMap{}))
	return exec.Command(cl[0], cl[1:]...), nil
}

// HeaderIDs returns an FXTRACT that reads fixed header identifiers from
// standard input and reports whole matching records from the given files.
func HeaderIDs(cmd string, files ...string) FXTRACT {
	return FXTRACT{
		Cmd:      cmd,
		Header:   true,
		Exact:    true,
		Patterns: Stdin,
		Inputs:   files,
	}
}
