// Copyright ©2016 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// singlem extracts reference sequences by identifier from FASTA files.
package main

import "github.com/AroneyS/singlem/cli"

func main() {
	cli.Execute()
}
