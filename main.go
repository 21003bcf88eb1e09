// Workplan - A command-line project planning tool with working-day scheduling.
package main

import (
	"os"

	"github.com/manav03panchal/workplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
