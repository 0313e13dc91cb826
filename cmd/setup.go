package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/setlistx/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the default configuration to --config. An existing file is left untouched.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		return fmt.Errorf("%w: --config", shared.ErrMissingArgument)
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Config written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set setlistfm.api_key in %s (or export %s)\n", path, apiKeyEnv)
	r.writePlain("2. Run 'setlistx --username <name>' to export your attended concerts\n")
	return nil
}

// ConfigShow prints the effective configuration as JSON with the API key masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config := *r.config
	if config.SetlistFM.APIKey != "" {
		config.SetlistFM.APIKey = "********"
	}
	return r.writeJSON(config, cmd.Bool("pretty"))
}
