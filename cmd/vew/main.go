package main

import (
	"os"

	"github.com/hbjs97/vew/internal/cli"
	"github.com/hbjs97/vew/internal/cmdexec"
)

func main() {
	app := &cli.App{Commander: &cmdexec.RealCommander{}}
	cmd := app.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(int(cli.MapExitCode(err)))
	}
}
