package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sbilibin2017/finance-planner/internal/commands"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title finance-planner API
// @version 1.0.0
// @description Budgeting API for profiles and their transactions
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	printBuildInfo(os.Stderr)

	root := commands.NewRootCommand()
	root.Version = buildVersion
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
// It writes to stderr so that command output on stdout stays clean.
func printBuildInfo(w io.Writer) {
	fmt.Fprintf(w, "Starting finance version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}
