package config

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Supported render modes and renderer names.
const (
	ModeConditional = "conditional"
	ModeAll         = "all"

	RendererHTML = "html"
	RendererText = "text"
	RendererJSON = "json"
)

// Config represents the formview command configuration.
type Config struct {
	Schema     string     `yaml:"schema"`
	Data       string     `yaml:"data"`
	Mode       string     `yaml:"mode"`
	Renderer   string     `yaml:"renderer"`
	Output     string     `yaml:"output"`
	LogLevel   slog.Level `yaml:"log_level"`
	Watch      bool       `yaml:"watch"`
	AllowHTTP  bool       `yaml:"allow_http"`
	OpenAPI    bool       `yaml:"openapi"`
	Components []string   `yaml:"components"`
	HTTP       HTTPConfig `yaml:"http"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Schema, validation.Required),
		validation.Field(&c.Mode, validation.Required, validation.In(ModeConditional, ModeAll)),
		validation.Field(&c.Renderer, validation.Required, validation.In(RendererHTML, RendererText, RendererJSON)),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// HTTPConfig holds the preview server configuration.
type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.ReadTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.FetchTimeout, validation.Min(time.Duration(0))),
	)
}

// String returns a short description used in startup logs.
func (c *HTTPConfig) String() string {
	return fmt.Sprintf("addr=%s read_timeout=%s", c.Addr, c.ReadTimeout)
}

// NewDefaultConfig returns a Config populated with defaults. Schema is left
// empty and must come from a file or flag.
func NewDefaultConfig() *Config {
	return &Config{
		Mode:     ModeConditional,
		Renderer: RendererHTML,
		LogLevel: slog.LevelInfo,
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			FetchTimeout: 10 * time.Second,
		},
	}
}
