// Package testsupport bundles fixtures and helpers shared by package tests.
// The plan fixtures reproduce a retirement-plan questionnaire with nested
// sections, radio groups, string-backed checkboxes and a conditional
// subsection.
package testsupport

import (
	"bytes"
	"context"
	"embed"
	"io"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formview/pkg/data"
	"github.com/goliatone/go-formview/pkg/schema"
)

//go:embed testdata/*
var fixtures embed.FS

// Fixture names.
const (
	PlanSchemaJSON = "plan_schema.json"
	PlanDataJSON   = "plan_data.json"
	PlanSchemaYAML = "plan_schema.yaml"
	PlanDataYAML   = "plan_data.yaml"
)

// FS exposes the fixture directory rooted at its files.
func FS() *embed.FS {
	return &fixtures
}

// Path returns the path of a fixture inside FS.
func Path(name string) string {
	return path.Join("testdata", name)
}

// MustRead returns the raw bytes of a fixture.
func MustRead(t testing.TB, name string) []byte {
	t.Helper()

	raw, err := fixtures.ReadFile(Path(name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return raw
}

// MustForm parses a schema fixture.
func MustForm(t testing.TB, name string) *schema.Form {
	t.Helper()

	raw := MustRead(t, name)
	form, err := schema.ParseBytes(raw, schema.DetectFormat(name, raw))
	if err != nil {
		t.Fatalf("parse fixture %s: %v", name, err)
	}
	return form
}

// MustData decodes a data fixture.
func MustData(t testing.TB, name string) data.Tree {
	t.Helper()

	raw := MustRead(t, name)
	tree, err := data.Decode(raw, schema.DetectFormat(name, raw))
	if err != nil {
		t.Fatalf("decode fixture %s: %v", name, err)
	}
	return tree
}

// WriteFixture copies a fixture into dir and returns the written path. Used by
// tests exercising on-disk loaders.
func WriteFixture(t testing.TB, dir, name string) string {
	t.Helper()

	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, MustRead(t, name), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return target
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
