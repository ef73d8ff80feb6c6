package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formview/pkg/schema"
)

// Transformer mutates a parsed form before it is walked. Implementations can
// relabel nodes, reorder children or attach conditions.
type Transformer interface {
	Transform(ctx context.Context, form *schema.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *schema.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *schema.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file,
// keyed by dotted node path:
//
//	{
//	  "nodes": {
//	    "profile": {"title": "About you", "order": ["name", "plan"]},
//	    "profile.plan": {"description": "Billing tier", "element": "radio"}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Nodes map[string]jsonNodePatch `json:"nodes"`
}

type jsonNodePatch struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Element     string    `json:"element"`
	Order       *[]string `json:"order"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied form. Patches
// naming an unknown path are an error so stale presets surface early.
func (t *JSONPresetTransformer) Transform(ctx context.Context, form *schema.Form) error {
	if form == nil {
		return errors.New("json preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for path, patch := range t.document.Nodes {
		node, ok := form.Lookup(path)
		if !ok {
			return fmt.Errorf("json preset transformer: node %q not found", path)
		}
		applyNodePatch(node, patch)
	}
	return nil
}

func applyNodePatch(node *schema.Node, patch jsonNodePatch) {
	if patch.Title != "" {
		node.Title = patch.Title
	}
	if patch.Description != "" {
		node.Description = patch.Description
	}
	if patch.Element != "" {
		node.Element = patch.Element
	}
	if patch.Order != nil {
		node.Order = append([]string{}, (*patch.Order)...)
	}
}
