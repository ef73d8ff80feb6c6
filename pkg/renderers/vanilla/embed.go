package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	pageTemplate = "templates/page.tmpl"
	// nodeTemplate is included from templates/ and pongo2 resolves includes
	// against the including template's directory.
	nodeTemplate = "node.tmpl"
)

// TemplatesFS exposes the embedded template bundle so callers can copy and
// customise it before passing it back through WithTemplatesFS.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
