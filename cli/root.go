// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli is the singlem command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/viper"

	"github.com/AroneyS/singlem/config"
)

// Version is the singlem version reported by --version and in man pages.
const Version = "0.1.0"

// app is the state shared by the singlem commands during a single execution.
type app struct {
	v   *viper.Viper
	cfg config.Config
	log *log.Logger
}

// New returns the singlem root command with all subcommands attached.
func New() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "singlem",
		Short: "Extract and inspect sequences from reference FASTA files",
		Long: `singlem reads identifiers of reference sequences and extracts the matching
records from a FASTA file, either with the fxtract tool or in-process.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: withRoff(func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		}),
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "settings file (default is ./singlem.yaml or $HOME/.config/singlem/singlem.yaml)")
	pf.Bool("quiet", false, "only output errors")
	pf.Bool("debug", false, "output debug information")
	pf.Bool("full-help-roff", false, "print the full help as a roff man page and exit")
	a.v.BindPFlag("log.quiet", pf.Lookup("quiet"))
	a.v.BindPFlag("log.debug", pf.Lookup("debug"))

	root.AddCommand(a.extractCmd(), a.idsCmd())
	return root
}

// Execute runs the singlem command line. It is called by main.main.
func Execute() {
	if err := New().Execute(); err != nil {
		log.Fatal(err)
	}
}

// setup loads settings and configures logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	a.cfg, err = config.Load(a.v, file)
	if err != nil {
		return err
	}

	a.log = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Prefix:          "singlem",
	})
	switch {
	case a.cfg.Log.Quiet:
		a.log.SetLevel(log.ErrorLevel)
	case a.cfg.Log.Debug:
		a.log.SetLevel(log.DebugLevel)
	default:
		a.log.SetLevel(log.InfoLevel)
	}
	if f := a.v.ConfigFileUsed(); f != "" {
		a.log.Debug("read settings", "file", f)
	}
	return nil
}

// withRoff wraps a command's run function so that --full-help-roff prints
// the command's man page instead of running it.
func withRoff(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		roff, err := cmd.Flags().GetBool("full-help-roff")
		if err != nil {
			return err
		}
		if roff {
			return Roff(cmd, cmd.OutOrStdout())
		}
		return run(cmd, args)
	}
}

// Roff writes the man page for cmd to w.
func Roff(cmd *cobra.Command, w io.Writer) error {
	return doc.GenMan(cmd, ManHeader(cmd), w)
}

// ManHeader returns the man page header used for cmd.
func ManHeader(cmd *cobra.Command) *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   strings.ToUpper(strings.ReplaceAll(cmd.CommandPath(), " ", "-")),
		Section: "1",
		Source:  fmt.Sprintf("singlem %s", Version),
		Manual:  "singlem manual",
	}
}

// output returns the writer for command output: the named file if name is
// not empty, otherwise stdout. The returned close function must be called
// when writing is complete.
func output(cmd *cobra.Command, name string) (io.Writer, func() error, error) {
	if name == "" || name == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
