package main

import (
	"fmt"
	"os"

	app "github.com/opskit/devnotes/internal"
	"github.com/opskit/devnotes/internal/cli"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	basePath := app.ResolveBasePath()

	theApp, err := app.NewApp(basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing dvn: %v\n", err)
		os.Exit(1)
	}

	err = cli.Execute()
	_ = theApp.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
