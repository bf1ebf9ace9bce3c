package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tracker/internal/services"
	"github.com/desertthunder/tracker/internal/shared"
	"github.com/desertthunder/tracker/internal/ui"
	"github.com/urfave/cli/v3"
)

// Status checks a running server by calling its /health endpoint.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	api := r.api
	if api == nil {
		api = services.NewAPIService(cmd.String("url"), r.httpClient)
	}

	r.logger.Info("checking server status", "url", cmd.String("url"))

	status, err := api.Health(ctx)
	if err != nil {
		r.writePlain("%s\n", ui.Styles.Err("✗ Server is unreachable"))
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	r.writePlain("%s\n", ui.Styles.OK("✓ Server is healthy"))
	r.writePlain("Status: %s\n", status.Status)
	r.writePlain("Message: %s\n", status.Message)
	if !status.Timestamp.IsZero() {
		r.writePlain("Server time: %s\n", status.Timestamp.Format("2006-01-02 15:04:05 MST"))
	}
	if status.SpotifyConfigured {
		return r.writePlain("Spotify: %s\n", ui.Styles.OK("✓ Configured"))
	}
	return r.writePlain("Spotify: %s\n", ui.Styles.Warn("✗ Not configured"))
}
