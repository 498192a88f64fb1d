// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// singlem-docs renders the singlem command help into Markdown pages for
// the documentation site and roff man pages.
//
// Each subcommand page gets YAML front matter and a title, an optional
// hand-written prelude from the prelude directory, and the generated help
// starting at a marker section.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/AroneyS/singlem/cli"
)

var (
	out     = flag.String("out", "docs", "documentation output directory")
	prelude = flag.String("prelude", filepath.Join("docs", "prelude"), "directory of <command>_prelude.md files")
	build   = flag.String("build", "", "site build command to run after rendering (e.g. 'doctave build')")
	quiet   = flag.Bool("quiet", false, "only output errors")
)

// groups maps documentation subdirectories to the commands documented there.
var groups = []struct {
	dir      string
	commands []string
}{
	{"tools", []string{"extract", "ids"}},
}

// markers is the generated section that pages with a prelude start at.
// Pages without a prelude start at defaultMarker.
var markers = map[string]string{
	"extract": "### Options",
	"ids":     "### Options",
}

const defaultMarker = "### Synopsis"

func main() {
	flag.Parse()
	if *quiet {
		log.SetLevel(log.ErrorLevel)
	} else {
		log.SetLevel(log.DebugLevel)
	}

	root := cli.New()
	for _, g := range groups {
		for _, name := range g.commands {
			cmd := subcommand(root, name)
			if cmd == nil {
				log.Fatal("no such command", "command", name)
			}
			page, err := render(cmd, *prelude)
			if err != nil {
				log.Fatal("failed to render page", "command", name, "err", err)
			}
			dir := filepath.Join(*out, g.dir)
			err = os.MkdirAll(dir, 0o755)
			if err != nil {
				log.Fatal("failed to create output directory", "dir", dir, "err", err)
			}
			path := filepath.Join(dir, name+".md")
			err = os.WriteFile(path, page, 0o644)
			if err != nil {
				log.Fatal("failed to write page", "path", path, "err", err)
			}
			log.Info("wrote page", "command", name, "path", path)
		}
	}

	man := filepath.Join(*out, "man")
	err := os.MkdirAll(man, 0o755)
	if err != nil {
		log.Fatal("failed to create man directory", "dir", man, "err", err)
	}
	err = doc.GenManTree(root, cli.ManHeader(root), man)
	if err != nil {
		log.Fatal("failed to write man pages", "err", err)
	}
	log.Info("wrote man pages", "dir", man)

	if *build != "" {
		args := strings.Fields(*build)
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
		log.Info("building site", "cmd", *build)
		err = cmd.Run()
		if err != nil {
			log.Fatal("site build failed", "err", err)
		}
	}
}

// subcommand returns the direct child of root with the given name.
func subcommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// render returns the documentation page for cmd.
func render(cmd *cobra.Command, preludeDir string) ([]byte, error) {
	var help bytes.Buffer
	cmd.DisableAutoGenTag = true
	err := doc.GenMarkdownCustom(cmd, &help, func(s string) string { return s })
	if err != nil {
		return nil, err
	}

	name := cmd.Name()
	marker := defaultMarker
	pre, err := os.ReadFile(filepath.Join(preludeDir, name+"_prelude.md"))
	switch {
	case err == nil:
		m, ok := markers[name]
		if !ok {
			return nil, fmt.Errorf("no marker section for command %q with prelude", name)
		}
		marker = m
		log.Info("removing generated help before marker", "command", name, "marker", marker)
	case os.IsNotExist(err):
		pre = nil
	default:
		return nil, err
	}
	usage, err := removeBefore(marker, help.String())
	if err != nil {
		return nil, err
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "---\ntitle: SingleM %s\n---\n# singlem %s\n", name, name)
	page.Write(pre)
	page.WriteString(usage)
	return page.Bytes(), nil
}

// removeBefore returns s starting at the line holding marker, preceded by
// a newline. It is an error for marker not to be a line of s.
func removeBefore(marker, s string) (string, error) {
	splitter := "\n" + marker + "\n"
	i := strings.Index(s, splitter)
	if i < 0 {
		return "", fmt.Errorf("marker %q not found", marker)
	}
	return s[i:], nil
}
