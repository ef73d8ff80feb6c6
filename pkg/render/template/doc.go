// Package template defines the template engine seam used by document
// renderers, plus a pongo2-backed implementation in the gotemplate
// sub-package.
package template
