// xcslabctl trains and inspects accuracy-based classifier populations from
// the command line.
package main

import (
	"os"

	"xcslab/cmd/xcslabctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
