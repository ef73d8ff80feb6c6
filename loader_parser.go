package formview

import (
	"github.com/goliatone/go-formview/internal/loader"
	"github.com/goliatone/go-formview/pkg/schema"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	return loader.New(schema.NewLoaderOptions(options...))
}
