package schema

import (
	"bytes"
	"errors"
	"path"
	"strings"
)

// Format identifies the serialisation of a document payload.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document wraps a raw schema or data payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Format guesses the payload serialisation from the location extension,
// falling back to sniffing the first significant byte.
func (d Document) Format() Format {
	return DetectFormat(d.Location(), d.raw)
}

// DetectFormat reports FormatYAML for .yaml/.yml locations, FormatJSON for
// .json locations, and otherwise sniffs the payload: documents opening with
// '{' or '[' are JSON.
func DetectFormat(location string, raw []byte) Format {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}
