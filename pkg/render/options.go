package render

// RenderOptions describe per-request presentation tweaks. They never change
// which nodes are visible; that is decided by the walker.
type RenderOptions struct {
	// Title overrides the page heading derived from the schema.
	Title string
	// HideDescriptions drops node descriptions from the output.
	HideDescriptions bool
	// Fragment asks document-oriented renderers (HTML) to omit the outer
	// document wrapper so the output can be embedded.
	Fragment bool
}

// PageTitle returns the heading to display for a page title.
func (o RenderOptions) PageTitle(fallback string) string {
	if o.Title != "" {
		return o.Title
	}
	return fallback
}
