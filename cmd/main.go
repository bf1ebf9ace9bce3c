package main

import (
	"context"
	"os"

	"github.com/desertthunder/tracker/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "tracker",
		Usage:    "Spotify listening tracker: OAuth login, session store and API gateway",
		Version:  "1.0.0",
		Flags:    rootFlags(),
		Before:   runner.setup,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
