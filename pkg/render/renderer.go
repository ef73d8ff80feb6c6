// Package render defines the contract between the view walker and the
// presentation layers that turn a view.Page into bytes.
package render

import (
	"context"

	"github.com/goliatone/go-formview/pkg/view"
)

// Renderer converts a walked page into a byte representation (HTML, text,
// JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page view.Page, options RenderOptions) ([]byte, error)
}
