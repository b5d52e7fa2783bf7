package main

import (
	"os"

	"github.com/mlihgenel/avtools-cli/cmd"
	"github.com/mlihgenel/avtools-cli/internal/ui"
)

// Derleme sırasında -ldflags ile doldurulur.
var (
	version = "1.0.0"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd.SetVersionInfo(version, commit, date)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	ui.PrintError(err.Error())
	return cmd.ExitCode(err)
}
