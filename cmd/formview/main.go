package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "formview",
		Usage: "Render declarative form schemas as read-only views of sample data",
		Commands: []*cli.Command{
			renderCommand(),
			serveCommand(),
			lintCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("formview error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
