package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formview/pkg/orchestrator"
	"github.com/goliatone/go-formview/pkg/schema"
)

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Report order keys, radios and visibility conditions that will not render as intended",
		ArgsUsage: "[schema paths...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "openapi",
				Usage: "Treat the documents as OpenAPI and lint their component schemas",
			},
		},
		Action: runLint,
	}
}

func runLint(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("lint: at least one schema path is required")
	}

	orch := orchestrator.New()
	out := outWriter(cmd)

	total := 0
	for _, path := range paths {
		src, err := schema.ParseSource(path)
		if err != nil {
			return err
		}
		resolved, err := orch.Resolve(ctx, orchestrator.Request{
			SchemaSource:    src,
			OpenAPI:         cmd.Bool("openapi"),
			ValidateOpenAPI: true,
		})
		if err != nil {
			return fmt.Errorf("lint %s: %w", path, err)
		}
		for _, v := range schema.Lint(resolved.Form) {
			fmt.Fprintf(out, "%s: %s\n", path, v)
			total++
		}
	}

	if total > 0 {
		return fmt.Errorf("lint: %d violation(s)", total)
	}
	return nil
}
