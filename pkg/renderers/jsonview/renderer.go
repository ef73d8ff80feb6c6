// Package jsonview renders a walked page as JSON so other tools can consume
// the display instructions without re-implementing the walker.
package jsonview

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formview/pkg/render"
	"github.com/goliatone/go-formview/pkg/view"
)

// Option configures the JSON renderer.
type Option func(*Renderer)

// WithIndent pretty-prints the output using indent per level. An empty
// string produces compact JSON.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer implements render.Renderer producing application/json.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, page view.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("json renderer: %w", err)
		}
	}

	doc := render.NewDocument(page, opts)

	var (
		out []byte
		err error
	)
	if r.indent == "" {
		out, err = json.Marshal(doc)
	} else {
		out, err = json.MarshalIndent(doc, "", r.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: encode page: %w", err)
	}
	return append(out, '\n'), nil
}
