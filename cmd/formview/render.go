package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formview/internal/config"
	"github.com/goliatone/go-formview/internal/prompt"
	"github.com/goliatone/go-formview/internal/watch"
	"github.com/goliatone/go-formview/pkg/orchestrator"
	"github.com/goliatone/go-formview/pkg/view"
)

// newPromptDriver is swapped in tests.
var newPromptDriver = prompt.NewSurveyDriver

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render a schema and data document once (or on every change with --watch)",
		Flags: withFlags(inputFlags(),
			&cli.StringFlag{
				Name:    "renderer",
				Aliases: []string{"r"},
				Usage:   "html, text or json",
				Sources: cli.EnvVars(envPrefix + "RENDERER"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file (stdout if empty)",
				Sources: cli.EnvVars(envPrefix + "OUTPUT"),
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Pick mode, renderer and components interactively",
			},
		),
		Action: runRender,
	}
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)
	orch := newOrchestrator(cmd, cfg, logger)

	req, err := baseRequest(cfg)
	if err != nil {
		return err
	}

	if cmd.Bool("interactive") {
		proceed, err := pickInteractively(ctx, orch, cfg, &req)
		if err != nil {
			return err
		}
		if !proceed {
			logger.Info("render skipped", slog.String("output", cfg.Output))
			return nil
		}
	}

	if err := renderOnce(ctx, cmd, orch, cfg, req, logger); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}

	files, err := watchedFiles(req)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watch.Files(ctx, files, watch.DefaultDebounce, logger, func(paths []string) {
		logger.Info("inputs changed", slog.Any("paths", paths))
		if err := renderOnce(ctx, cmd, orch, cfg, req, logger); err != nil {
			logger.Error("render failed", slog.String("error", err.Error()))
		}
	})
}

func renderOnce(ctx context.Context, cmd *cli.Command, orch *orchestrator.Orchestrator, cfg *config.Config, req orchestrator.Request, logger *slog.Logger) error {
	result, err := orch.Execute(ctx, req)
	if err != nil {
		return err
	}

	stats := view.Stats(result.Page)
	logger.Info("form rendered",
		slog.String("renderer", result.Renderer),
		slog.String("mode", string(result.Page.Mode)),
		slog.Int("sections", stats[view.KindSection]),
		slog.Int("subsections", stats[view.KindSubsection]),
		slog.Int("radio_groups", stats[view.KindRadioGroup]),
		slog.Int("checkboxes", stats[view.KindCheckbox]),
		slog.Int("fields", stats[view.KindField]),
		slog.Int("hidden", len(result.Page.Hidden)),
	)

	if cfg.Output == "" {
		_, err := outWriter(cmd).Write(result.Output)
		return err
	}
	if err := os.WriteFile(cfg.Output, result.Output, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("output written", slog.String("path", cfg.Output), slog.Int("bytes", len(result.Output)))
	return nil
}

// pickInteractively updates req with the user's choices. It reports false
// when the user declines to overwrite an existing output file.
func pickInteractively(ctx context.Context, orch *orchestrator.Orchestrator, cfg *config.Config, req *orchestrator.Request) (bool, error) {
	driver := newPromptDriver()

	var components []string
	if cfg.OpenAPI {
		resolved, err := orch.Resolve(ctx, orchestrator.Request{
			SchemaSource: req.SchemaSource,
			OpenAPI:      true,
		})
		if err != nil {
			return false, err
		}
		components = resolved.Form.Keys()
	}

	choices, err := prompt.Pick(ctx, driver, orch.Renderers(), components, prompt.Choices{
		Mode:       req.Mode,
		Renderer:   req.Renderer,
		Components: req.Components,
	})
	if err != nil {
		return false, err
	}
	req.Mode = choices.Mode
	req.Renderer = choices.Renderer
	req.Components = choices.Components
	cfg.Renderer = choices.Renderer

	if cfg.Output == "" {
		return true, nil
	}
	if _, err := os.Stat(cfg.Output); errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	return prompt.ConfirmOverwrite(ctx, driver, cfg.Output)
}
