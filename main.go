// Command subdu reports the disk usage of every immediate subdirectory of a folder.
package main

import (
	"os"

	"github.com/idelchi/subdu/internal/cli"
)

// version is set at build time via -ldflags.
var version = "unknown - unofficial & generated by unknown" //nolint:gochecknoglobals // Set by ldflags

func main() {
	if err := cli.New(version).Execute(); err != nil {
		os.Exit(1)
	}
}
