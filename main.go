// Hopstack - routing-chain editing for RouterOS devices with full undo/redo
package main

import (
	"os"

	"github.com/example/hopstack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
