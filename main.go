package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/sadopc/liftr/internal/cmd"
)

// Build information injected at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

const tagline = "Plan, run and log strength workouts from the terminal"

func main() {
	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("liftr"),
		kong.Description(tagline),
		kong.Vars{
			"version": fmt.Sprintf("liftr %s (commit: %s)", Version, Commit),
		},
		kong.UsageOnError(),
		kong.Bind(&cli),
	)
	defer cli.Close()

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cli.Close()
		os.Exit(1)
	}
}
