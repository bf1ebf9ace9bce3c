package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/tracker/internal/shared"
	"github.com/desertthunder/tracker/internal/ui"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes a config file, either the built-in template or the template overlaid with environment values.
//
// An existing file is never overwritten.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")

	if !cmd.Bool("from-env") {
		if err := shared.CreateConfigFile(path); err != nil {
			return err
		}
		r.logger.Info("config file created", "path", path)
		return r.writePlain("%s %s\n", ui.Styles.OK("✓ Config written to"), path)
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	config, err := shared.ResolveConfig("")
	if err != nil {
		return err
	}
	if err := shared.SaveConfig(path, config); err != nil {
		return err
	}

	r.logger.Info("config file created from environment", "path", path)
	return r.writePlain("%s %s\n", ui.Styles.OK("✓ Config written to"), path)
}

// ConfigShow prints the resolved configuration as TOML with the client secret masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	masked := *config
	masked.Credentials.Spotify.ClientSecret = maskSecret(config.Credentials.Spotify.ClientSecret)

	if err := toml.NewEncoder(r.output).Encode(&masked); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// maskSecret keeps the last four characters of s.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
