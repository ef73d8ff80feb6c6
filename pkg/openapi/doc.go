// Package openapi builds forms from the component schemas of an OpenAPI 3
// document. Each selected component becomes a top-level section; the
// element, x-ui-order and x-ui-visible-if keywords are read from the schema
// extensions. kin-openapi stays behind internal/openapi.
package openapi
