// main is the gaitscore CLI entry point, kept at the root for `go install`.
package main

import (
	"os"

	"github.com/qixiboss/gaitscore/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
