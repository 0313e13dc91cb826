// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// rootCommand exports the attended setlists of --username; every other operation is a subcommand.
func rootCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "setlistx",
		Usage:    "Export setlist.fm concert history to CSV and friends",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   r.configure,
		Action:   r.ExportUser,
		Commands: r.register(),
	}
}

// globalFlags are defined on the root command and inherited by every subcommand.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-key",
			Aliases: []string{"k"},
			Usage:   "setlist.fm API key",
			Sources: cli.EnvVars(apiKeyEnv),
		},
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "setlist.fm username whose attended concerts are exported",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Export format: csv, json, markdown or txt (default from config: csv)",
		},
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Usage:   "Directory for the export file (default from config: outputs)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
}

// artistCommand exports every setlist of one artist
func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artist",
		Usage: "Export all setlists of an artist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mbid",
				Usage: "MusicBrainz ID of the artist",
			},
		},
		Action: r.ExportArtist,
	}
}

// tuiCommand runs the user export with an interactive progress view
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Export attended setlists with an interactive progress view",
		Action: r.TUI,
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file commands",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a default config file to --config",
				Action: r.ConfigInit,
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ConfigShow,
			},
		},
	}
}
