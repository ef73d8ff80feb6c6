// Package vanilla renders a walked page as static HTML: top-level sections
// with a heading, disabled radio buttons and checkboxes reflecting the data,
// and plain values with missing markers.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formview/pkg/render"
	rendertemplate "github.com/goliatone/go-formview/pkg/render/template"
	gotemplate "github.com/goliatone/go-formview/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formview/pkg/view"
)

// SanitizeFilter is the template filter applied to schema descriptions. It
// keeps basic formatting markup and strips everything else.
const SanitizeFilter = "sanitize"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	classes          ChromeClasses
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/page.tmpl and templates/node.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation. It
// must understand pongo2 syntax and provide the sanitize filter.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithChromeClasses appends utility classes to the semantic chrome classes.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	classes   ChromeClasses
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithFilter(SanitizeFilter, sanitizeFilter(bluemonday.UGCPolicy())),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		classes:   DefaultChromeClasses().merge(cfg.classes),
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page view.Page, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
	}

	result, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"page":          render.NewDocument(page, opts),
		"classes":       r.classes,
		"fragment":      opts.Fragment,
		"node_template": nodeTemplate,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func sanitizeFilter(policy *bluemonday.Policy) pongo2.FilterFunction {
	return func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsSafeValue(policy.Sanitize(in.String())), nil
	}
}
