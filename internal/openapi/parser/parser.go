// Package parser turns the component schemas of an OpenAPI document into a
// schema.Form using kin-openapi.
package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"

	"github.com/goliatone/go-formview/pkg/schema"
)

// Options tune parsing.
type Options struct {
	// Components selects and orders the component schemas to expose. Empty
	// means every component, sorted by name.
	Components []string
	// Validate runs kin-openapi document validation before conversion.
	Validate bool
}

// extensionElement is accepted as an alias of the plain element keyword,
// which some OpenAPI tooling rejects as an unknown schema field.
const extensionElement = "x-ui-element"

// Parse loads raw as an OpenAPI document and converts the selected component
// schemas into top-level form nodes.
func Parse(ctx context.Context, raw []byte, opts Options) (*schema.Form, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	spec, err := load(ctx, raw)
	if err != nil {
		return nil, err
	}
	if opts.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi parser: document does not declare component schemas")
	}
	schemas := spec.Components.Schemas

	names := opts.Components
	if len(names) == 0 {
		names = ComponentNames(spec)
	}

	form := schema.NewForm()
	for _, name := range names {
		name = strings.TrimSpace(name)
		ref, ok := schemas[name]
		if !ok || ref == nil {
			return nil, fmt.Errorf("openapi parser: component %q not found", name)
		}
		node, err := convert(ref)
		if err != nil {
			return nil, fmt.Errorf("openapi parser: component %q: %w", name, err)
		}
		if node.Title == "" {
			node.Title = name
		}
		form.Roots.Set(name, node)
	}
	return form, nil
}

// Components loads raw and lists its component schema names in sorted order.
func Components(ctx context.Context, raw []byte) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	spec, err := load(ctx, raw)
	if err != nil {
		return nil, err
	}
	return ComponentNames(spec), nil
}

func load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	return spec, nil
}

// ComponentNames lists the component schema names of spec in sorted order.
func ComponentNames(spec *openapi3.T) []string {
	if spec == nil || spec.Components == nil {
		return nil
	}
	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// convert renders the kin-openapi schema back into the plain JSON shape the
// schema package parses, so OpenAPI and standalone documents share one set of
// parsing rules. Map keys marshal sorted, which becomes the natural order.
func convert(ref *openapi3.SchemaRef) (*schema.Node, error) {
	doc := document(ref, make(map[*openapi3.Schema]bool))
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return schema.ParseNode(raw, schema.FormatJSON)
}

func document(ref *openapi3.SchemaRef, stack map[*openapi3.Schema]bool) map[string]any {
	out := make(map[string]any)
	if ref == nil || ref.Value == nil {
		return out
	}
	src := ref.Value

	if typ := firstSchemaType(src.Type); typ != "" {
		out["type"] = typ
	}
	if src.Title != "" {
		out["title"] = src.Title
	}
	if src.Description != "" {
		out["description"] = src.Description
	}
	if len(src.Enum) > 0 {
		out["enum"] = src.Enum
	}

	ext := make(map[string]any)
	collectExtensions(ext, src, make(map[*openapi3.Schema]bool))
	if element, ok := ext["element"]; ok {
		out["element"] = element
	} else if element, ok := ext[extensionElement]; ok {
		out["element"] = element
	}
	for _, key := range []string{schema.ExtensionOrder, schema.ExtensionVisibleIf} {
		if value, ok := ext[key]; ok {
			out[key] = value
		}
	}

	// A reference cycle keeps the labels but stops descending.
	if stack[src] {
		return out
	}
	stack[src] = true
	defer delete(stack, src)

	properties := make(map[string]any)
	collectProperties(properties, src, stack)
	if len(properties) > 0 {
		if _, ok := out["type"]; !ok {
			out["type"] = schema.TypeObject
		}
		out["properties"] = properties
	}
	return out
}

func collectProperties(target map[string]any, src *openapi3.Schema, stack map[*openapi3.Schema]bool) {
	for _, member := range src.AllOf {
		if member == nil || member.Value == nil || stack[member.Value] {
			continue
		}
		collectProperties(target, member.Value, stack)
	}
	for name, property := range src.Properties {
		target[name] = document(property, stack)
	}
}

// collectExtensions merges allOf members first so the schema's own
// extensions win.
func collectExtensions(target map[string]any, src *openapi3.Schema, seen map[*openapi3.Schema]bool) {
	if src == nil || seen[src] {
		return
	}
	seen[src] = true
	for _, member := range src.AllOf {
		if member != nil {
			collectExtensions(target, member.Value, seen)
		}
	}
	for key, value := range src.Extensions {
		switch key {
		case "element", extensionElement, schema.ExtensionOrder, schema.ExtensionVisibleIf:
			if value != nil {
				target[key] = value
			}
		}
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
