package main

import "github.com/urfave/cli/v3"

const envPrefix = "FORMVIEW_"

// inputFlags are shared by every command that loads a schema.
func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML config file; flags override its values",
			Sources: cli.EnvVars(envPrefix + "CONFIG"),
		},
		&cli.StringFlag{
			Name:    "schema",
			Aliases: []string{"s"},
			Usage:   "Schema document path or http(s) URL",
			Sources: cli.EnvVars(envPrefix + "SCHEMA"),
		},
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Data document path or http(s) URL",
			Sources: cli.EnvVars(envPrefix + "DATA"),
		},
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   "conditional hides nodes whose visibility condition fails; all renders everything",
			Sources: cli.EnvVars(envPrefix + "MODE"),
		},
		&cli.BoolFlag{
			Name:    "openapi",
			Usage:   "Treat the schema as an OpenAPI document and render its component schemas",
			Sources: cli.EnvVars(envPrefix + "OPENAPI"),
		},
		&cli.StringSliceFlag{
			Name:  "component",
			Usage: "OpenAPI component schema to render (repeatable; default all)",
		},
		&cli.BoolFlag{
			Name:    "allow-http",
			Usage:   "Allow schema and data sources to be fetched over HTTP",
			Sources: cli.EnvVars(envPrefix + "ALLOW_HTTP"),
		},
		&cli.BoolFlag{
			Name:    "watch",
			Aliases: []string{"w"},
			Usage:   "Re-render when the schema or data file changes",
			Sources: cli.EnvVars(envPrefix + "WATCH"),
		},
		&cli.IntFlag{
			Name:  "parallel",
			Usage: "Walk top-level sections concurrently with at most N workers (0 walks sequentially)",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug, info, warn or error",
			Sources: cli.EnvVars(envPrefix + "LOG_LEVEL"),
		},
	}
}

func withFlags(base []cli.Flag, extra ...cli.Flag) []cli.Flag {
	return append(base, extra...)
}
