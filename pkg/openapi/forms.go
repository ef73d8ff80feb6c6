package openapi

import (
	"context"

	"github.com/goliatone/go-formview/internal/openapi/parser"
	"github.com/goliatone/go-formview/pkg/schema"
)

// Option configures FormFromDocument.
type Option func(*parser.Options)

// WithComponents selects and orders the component schemas to render.
func WithComponents(names ...string) Option {
	return func(opts *parser.Options) {
		for _, name := range names {
			if name != "" {
				opts.Components = append(opts.Components, name)
			}
		}
	}
}

// WithValidation validates the OpenAPI document before conversion.
func WithValidation() Option {
	return func(opts *parser.Options) {
		opts.Validate = true
	}
}

// FormFromOpenAPI converts the named component schemas of raw (JSON or YAML)
// into a form. Without names every component is used, sorted by name.
// Properties follow sorted key order since OpenAPI mappings carry none; use
// x-ui-order to control display order.
func FormFromOpenAPI(ctx context.Context, raw []byte, names ...string) (*schema.Form, error) {
	return FormFromDocument(ctx, raw, WithComponents(names...))
}

// FormFromDocument is FormFromOpenAPI with options.
func FormFromDocument(ctx context.Context, raw []byte, options ...Option) (*schema.Form, error) {
	var opts parser.Options
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	return parser.Parse(ctx, raw, opts)
}

// Components lists the component schema names declared by raw, sorted.
func Components(ctx context.Context, raw []byte) ([]string, error) {
	return parser.Components(ctx, raw)
}
