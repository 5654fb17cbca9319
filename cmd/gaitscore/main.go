// main holds the entry point for the gaitscore CLI.
package main

import (
	"os"

	"github.com/qixiboss/gaitscore/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
