// Package formview renders declarative form schemas as read-only views of
// sample data. Nodes gated by x-ui-visible-if conditions are skipped unless
// every node is requested.
//
// The root package re-exports the common entry points; the pipeline pieces
// live under pkg/.
package formview

import (
	"context"

	"github.com/goliatone/go-formview/pkg/data"
	"github.com/goliatone/go-formview/pkg/orchestrator"
	"github.com/goliatone/go-formview/pkg/render"
	"github.com/goliatone/go-formview/pkg/schema"
	"github.com/goliatone/go-formview/pkg/view"
)

// RenderOptions describes per-request presentation overrides.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Mode aliases view.Mode.
type Mode = view.Mode

const (
	ModeConditional = view.ModeConditional
	ModeAll         = view.ModeAll
)

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the schema and data sources and renders them with the named
// renderer ("html", "text" or "json"; empty means html).
func Generate(ctx context.Context, schemaSource, dataSource schema.Source, mode Mode, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		SchemaSource: schemaSource,
		DataSource:   dataSource,
		Mode:         mode,
		Renderer:     rendererName,
	})
}

// GenerateFromBytes renders in-memory schema and data documents. Formats are
// detected from the content.
func GenerateFromBytes(ctx context.Context, rawSchema, rawData []byte, mode Mode, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	form, err := schema.ParseBytes(rawSchema, schema.DetectFormat("", rawSchema))
	if err != nil {
		return nil, err
	}
	tree, err := data.Decode(rawData, schema.DetectFormat("", rawData))
	if err != nil {
		return nil, err
	}

	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Form:     form,
		Data:     tree,
		Mode:     mode,
		Renderer: rendererName,
	})
}
