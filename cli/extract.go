// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/AroneyS/singlem/extract"
	"github.com/AroneyS/singlem/sequence"
)

// extractCmd returns the command that extracts sequences by identifier.
func (a *app) extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [id...]",
		Short: "Extract sequences from a FASTA file by identifier",
		Long: `Extract the records of a reference FASTA file whose identifiers exactly
match the requested identifiers. Identifiers are the complete header line after
the leading '>' and may be given as arguments and/or one per line in a file.

Records are written as FASTA in the order they appear in the reference.

Back-ends:
  fxtract  run the fxtract tool over the reference (default)
  index    build and cache an index of header offsets in-process
  scan     read the whole reference in-process; accepts BGZF compressed files`,
		Example: `  singlem extract --fasta proteins.faa 650377985 646564583
  singlem extract --fasta proteins.faa --ids wanted.txt --backend index -o hits.faa`,
		RunE: withRoff(a.runExtract),
	}

	f := cmd.Flags()
	f.StringP("fasta", "f", "", "reference FASTA file (required)")
	f.StringP("ids", "i", "", "file of identifiers, one per line ('-' for stdin)")
	f.StringP("output", "o", "", "output FASTA file (default stdout)")
	f.String("backend", extract.BackendFxtract, "extraction back-end: fxtract, index or scan")
	f.String("fxtract", "", "path to fxtract if not in $PATH")
	f.Int("line-width", 0, "wrap sequence lines at this width (0 for no wrapping)")
	a.v.BindPFlag("extract.backend", f.Lookup("backend"))
	a.v.BindPFlag("extract.fxtract", f.Lookup("fxtract"))
	a.v.BindPFlag("extract.line-width", f.Lookup("line-width"))

	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, args []string) error {
	ref, err := cmd.Flags().GetString("fasta")
	if err != nil {
		return err
	}
	if ref == "" {
		return errors.New("no reference FASTA file specified (--fasta)")
	}

	ids := append([]string(nil), args...)
	idFile, err := cmd.Flags().GetString("ids")
	if err != nil {
		return err
	}
	if idFile != "" {
		more, err := readIDs(idFile, cmd.InOrStdin())
		if err != nil {
			return errors.Wrapf(err, "failed to read identifiers from %s", idFile)
		}
		ids = append(ids, more...)
	}

	conf := a.cfg.Extract
	ex, err := extract.New(conf.Backend, conf.Fxtract)
	if err != nil {
		return err
	}
	a.log.Debug("extracting sequences", "ids", len(ids), "reference", ref, "backend", conf.Backend)
	recs, err := ex.Extract(ids, ref)
	if err != nil {
		return errors.Wrapf(err, "failed to extract sequences from %s", ref)
	}
	a.log.Info("extracted sequences", "requested", len(ids), "found", len(recs))

	name, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	w, done, err := output(cmd, name)
	if err != nil {
		return errors.Wrap(err, "failed to create output")
	}
	err = sequence.NewWriter(w, conf.LineWidth).WriteAll(recs)
	if err != nil {
		done()
		return errors.Wrap(err, "failed to write sequences")
	}
	return done()
}

// readIDs returns the identifiers listed one per line in the named file,
// or in stdin if name is "-". Blank lines are ignored.
func readIDs(name string, stdin io.Reader) ([]string, error) {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var ids []string
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids, sc.Err()
}
