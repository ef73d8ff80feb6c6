package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formview/internal/server"
	"github.com/goliatone/go-formview/internal/watch"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve an HTML preview; ?mode=all toggles hidden nodes",
		Flags: withFlags(inputFlags(),
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address",
				Sources: cli.EnvVars(envPrefix + "HTTP_ADDR"),
			},
		),
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
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
	req.Renderer = ""

	srv := server.New(orch, req, logger)
	if err := srv.Reload(ctx); err != nil {
		return err
	}

	var files []string
	if cfg.Watch {
		if files, err = watchedFiles(req); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := srv.HTTPServer(cfg.HTTP.Addr, cfg.HTTP.ReadTimeout)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.HTTP.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	if len(files) > 0 {
		g.Go(func() error {
			return watch.Files(gCtx, files, watch.DefaultDebounce, logger, func([]string) {
				if err := srv.Reload(gCtx); err != nil {
					logger.Warn("reload failed", slog.String("error", err.Error()))
				}
			})
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	return g.Wait()
}
