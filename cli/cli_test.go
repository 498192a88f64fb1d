// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AroneyS/singlem/extract"
)

const (
	ref    = "testdata/prefilter.faa"
	wanted = "testdata/wanted.txt"

	seq640069326 = "MLAIGKRQYVREKSYPPRKVRIVQEATELLQKYQYVFLFDLHGLSARILGEYRYKLRPYGAVKIIKPTLFKIAYAKVYGG" +
		"VPVEIAEKVRGEVGFFFTNHNPAEVVKLVAKYAVRRAARPGDKAPFDIVIPAGPTNASPGPIISKFGKLKIPTRVQEGKI"
	seq650377985 = "MASQPVFKRTYVRTKPYPEKKVRIVDELKELFSKYETVLIIDIHETSNRVLQEYRFWLRRRGARVIKAKNTLVLIALRQL" +
		"MNDVSEDIEKLFTGENLLIFTNENPFEIARWIWGTGVRREAMPGDIAPFDLVAPAGNTNMSPGPIMSKFGKLKIPIKVQD"
)

// run executes the singlem command line with args and returns its stdout
// and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	cmd := New()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExtract(t *testing.T) {
	want := ">640069326\n" + seq640069326 + "\n>650377985\n" + seq650377985 + "\n"

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			"ids as arguments",
			"",
			[]string{"extract", "--backend", "index", "--fasta", ref, "650377985", "640069326"},
			want,
		},
		{
			"ids from file",
			"",
			[]string{"extract", "--backend", "scan", "--fasta", ref, "--ids", wanted},
			want,
		},
		{
			"ids from stdin",
			"640069326\n650377985\n",
			[]string{"extract", "--backend", "index", "-f", ref, "-i", "-"},
			want,
		},
		{
			"wrapped output",
			"",
			[]string{"extract", "--backend", "index", "--fasta", ref, "--line-width", "80", "646564583"},
			">646564583\n" +
				"MSAVARTYPKWKTEQLEDLVELLKKYKVFLIGDLTGVPASHVQRLRKKLAKTAEVRVVKPKLFAIALERVGIDPEAFKDL\n" +
				"LTGQNIVFFTNENPFDVALKIHNIVTMDYYKPGEKTDKEIVIPEGNTGIPPGPMLSVFGKLKIQTKVQANVIHVAKDTVV\n",
		},
		{
			"no matches",
			"",
			[]string{"extract", "--backend", "index", "--fasta", ref, "65037798"},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := run(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("singlem %s: %v", strings.Join(tt.args, " "), err)
			}
			if got != tt.want {
				t.Errorf("singlem %s output:\n%s\nwant:\n%s", strings.Join(tt.args, " "), got, tt.want)
			}
		})
	}
}

func TestExtractOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hits.faa")
	stdout, _, err := run(t, "", "extract", "--backend", "index", "--fasta", ref, "--output", out, "650377985")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("unexpected stdout output %q", stdout)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if want := ">650377985\n" + seq650377985 + "\n"; string(got) != want {
		t.Errorf("output file:\n%s\nwant:\n%s", got, want)
	}
}

func TestExtractSettingsFile(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "singlem.yaml")
	err := os.WriteFile(settings, []byte("extract:\n  backend: index\n  line-width: 100\n"), 0o644)
	if err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}
	got, _, err := run(t, "", "extract", "--config", settings, "--fasta", ref, "650377985")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	want := ">650377985\n" + seq650377985[:100] + "\n" + seq650377985[100:] + "\n"
	if got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(error) bool
	}{
		{
			"no reference",
			[]string{"extract", "650377985"},
			func(err error) bool { return err != nil },
		},
		{
			"no identifiers",
			[]string{"extract", "--backend", "index", "--fasta", ref},
			func(err error) bool {
				var ie *extract.InputError
				return errors.As(err, &ie)
			},
		},
		{
			"missing reference",
			[]string{"extract", "--backend", "scan", "--fasta", "testdata/missing.faa", "A"},
			func(err error) bool { return errors.Is(err, os.ErrNotExist) },
		},
		{
			"unknown back-end",
			[]string{"extract", "--backend", "blast", "--fasta", ref, "A"},
			func(err error) bool { return err != nil && strings.Contains(err.Error(), "blast") },
		},
		{
			"missing fxtract",
			[]string{"extract", "--fxtract", "testdata/no-such-fxtract", "--fasta", ref, "A"},
			func(err error) bool {
				var te *extract.ToolError
				return errors.As(err, &te)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			if !tt.check(err) {
				t.Errorf("singlem %s: unexpected error %v", strings.Join(tt.args, " "), err)
			}
		})
	}
}

func TestExtractFxtract(t *testing.T) {
	if _, err := exec.LookPath("fxtract"); err != nil {
		t.Skip("fxtract not in $PATH")
	}
	got, _, err := run(t, "", "extract", "--fasta", ref, "--ids", wanted)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	want := ">640069326\n" + seq640069326 + "\n>650377985\n" + seq650377985 + "\n"
	if got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestQuiet(t *testing.T) {
	_, stderr, err := run(t, "", "extract", "--quiet", "--backend", "index", "--fasta", ref, "650377985")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if stderr != "" {
		t.Errorf("unexpected log output with --quiet: %q", stderr)
	}

	_, stderr, err = run(t, "", "extract", "--backend", "index", "--fasta", ref, "650377985")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(stderr, "extracted sequences") {
		t.Errorf("missing log output: %q", stderr)
	}
}

func TestIDs(t *testing.T) {
	got, _, err := run(t, "", "ids", "--fasta", ref)
	if err != nil {
		t.Fatalf("ids failed: %v", err)
	}
	want := "640069326\n646564583\n650377985\n6503779850\n"
	if got != want {
		t.Errorf("ids output %q, want %q", got, want)
	}
}

func TestFullHelpRoff(t *testing.T) {
	for _, args := range [][]string{
		{"extract", "--full-help-roff"},
		{"ids", "--full-help-roff"},
		{"--full-help-roff"},
	} {
		got, _, err := run(t, "", args...)
		if err != nil {
			t.Fatalf("singlem %s: %v", strings.Join(args, " "), err)
		}
		if !strings.HasPrefix(strings.TrimLeft(got, "\n"), ".") || !strings.Contains(got, ".SH NAME") {
			t.Errorf("singlem %s did not write a man page:\n%s", strings.Join(args, " "), got)
		}
	}
}

func TestReadIDs(t *testing.T) {
	ids, err := readIDs("-", strings.NewReader("a\n\n b c \r\nd"))
	if err != nil {
		t.Fatalf("readIDs() error = %v", err)
	}
	want := []string{"a", "b c", "d"}
	if strings.Join(ids, "|") != strings.Join(want, "|") {
		t.Errorf("readIDs() = %q, want %q", ids, want)
	}

	_, err = readIDs(filepath.Join(t.TempDir(), "missing"), io.MultiReader())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("readIDs() error = %v, want os.ErrNotExist", err)
	}
}
