package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-formview/internal/config"
	"github.com/goliatone/go-formview/internal/loader"
	"github.com/goliatone/go-formview/pkg/orchestrator"
	"github.com/goliatone/go-formview/pkg/schema"
	"github.com/goliatone/go-formview/pkg/view"
)

// defaultConfigFile is read from the working directory when --config is not
// given and the file exists.
const defaultConfigFile = "formview.yaml"

// loadSettings layers the optional config file, then flags and environment
// variables, then validates the result.
func loadSettings(cmd *cli.Command) (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	if path := cmd.String("config"); path != "" {
		if err := config.Read(path, cfg); err != nil {
			return nil, err
		}
	} else if err := config.ReadOptional(defaultConfigFile, cfg); err != nil {
		return nil, err
	}

	if cmd.IsSet("schema") {
		cfg.Schema = cmd.String("schema")
	}
	if cmd.IsSet("data") {
		cfg.Data = cmd.String("data")
	}
	if cmd.IsSet("mode") {
		cfg.Mode = string(view.ParseMode(cmd.String("mode")))
	}
	if cmd.IsSet("renderer") {
		cfg.Renderer = strings.ToLower(strings.TrimSpace(cmd.String("renderer")))
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("openapi") {
		cfg.OpenAPI = cmd.Bool("openapi")
	}
	if cmd.IsSet("component") {
		cfg.Components = cmd.StringSlice("component")
	}
	if cmd.IsSet("allow-http") {
		cfg.AllowHTTP = cmd.Bool("allow-http")
	}
	if cmd.IsSet("watch") {
		cfg.Watch = cmd.Bool("watch")
	}
	if cmd.IsSet("addr") {
		cfg.HTTP.Addr = cmd.String("addr")
	}
	if cmd.IsSet("log-level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
			return nil, fmt.Errorf("config: log level: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cli.Command, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(errWriter(cmd), &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
}

func newOrchestrator(cmd *cli.Command, cfg *config.Config, logger *slog.Logger) *orchestrator.Orchestrator {
	var loaderOptions []schema.LoaderOption
	if cfg.AllowHTTP {
		loaderOptions = append(loaderOptions, schema.WithHTTPFallback(cfg.HTTP.FetchTimeout))
	}

	options := []orchestrator.Option{
		orchestrator.WithLoader(loader.New(schema.NewLoaderOptions(loaderOptions...))),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
		orchestrator.WithLogger(logger),
	}
	if limit := cmd.Int("parallel"); limit > 0 {
		options = append(options, orchestrator.WithParallel(int(limit)))
	}
	return orchestrator.New(options...)
}

func baseRequest(cfg *config.Config) (orchestrator.Request, error) {
	schemaSource, err := schema.ParseSource(cfg.Schema)
	if err != nil {
		return orchestrator.Request{}, err
	}
	req := orchestrator.Request{
		SchemaSource: schemaSource,
		Mode:         view.ParseMode(cfg.Mode),
		Renderer:     cfg.Renderer,
		OpenAPI:      cfg.OpenAPI,
		Components:   cfg.Components,
	}
	if strings.TrimSpace(cfg.Data) != "" {
		dataSource, err := schema.ParseSource(cfg.Data)
		if err != nil {
			return orchestrator.Request{}, err
		}
		req.DataSource = dataSource
	}
	return req, nil
}

// watchedFiles returns the local files backing req. URL sources cannot be
// watched.
func watchedFiles(req orchestrator.Request) ([]string, error) {
	var files []string
	for _, src := range []schema.Source{req.SchemaSource, req.DataSource} {
		if src == nil {
			continue
		}
		if src.Kind() != schema.SourceKindFile {
			return nil, fmt.Errorf("watch: %s is not a local file", src.Location())
		}
		files = append(files, src.Location())
	}
	return files, nil
}

func outWriter(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.ErrWriter != nil {
		return root.ErrWriter
	}
	return os.Stderr
}
