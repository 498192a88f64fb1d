// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/AroneyS/singlem/extract"
)

// idsCmd returns the command that lists the identifiers of a FASTA file.
func (a *app) idsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ids",
		Short:   "List the identifiers in a FASTA file",
		Long:    `List the unique record identifiers of a FASTA file in lexical order, one per line.`,
		Example: "  singlem ids --fasta proteins.faa > all.txt",
		RunE: withRoff(func(cmd *cobra.Command, _ []string) error {
			ref, err := cmd.Flags().GetString("fasta")
			if err != nil {
				return err
			}
			if ref == "" {
				return errors.New("no reference FASTA file specified (--fasta)")
			}
			ids, err := extract.NewIndexed().IDs(ref)
			if err != nil {
				return errors.Wrapf(err, "failed to index %s", ref)
			}
			a.log.Debug("indexed reference", "reference", ref, "ids", len(ids))
			w := cmd.OutOrStdout()
			for _, id := range ids {
				_, err = fmt.Fprintln(w, id)
				if err != nil {
					return err
				}
			}
			return nil
		}),
		Args: cobra.NoArgs,
	}
	cmd.Flags().StringP("fasta", "f", "", "reference FASTA file (required)")
	return cmd
}
