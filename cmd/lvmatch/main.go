// SPDX-License-Identifier: MIT

// Command lvmatch solves maximum-weight (or minimum-cost) assignment
// problems read from YAML or JSON cost-matrix files.
//
// Usage:
//
//	lvmatch solve -i costs.yaml [--minimize] [--format text|json|yaml]
//	lvmatch version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
