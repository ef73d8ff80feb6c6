package schema

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where a schema or data document originated so loaders can
// operate on files, fs.FS entries, or URLs without leaking implementation
// details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early; use
// ParseSource for user input.
func SourceFromURL(raw string) Source {
	src, err := urlSourceFrom(raw)
	if err != nil {
		panic(err.Error())
	}
	return src
}

// ParseSource maps a command-line style location to a Source: http(s) URLs
// become URL sources, everything else is treated as a file path.
func ParseSource(raw string) (Source, error) {
	location := strings.TrimSpace(raw)
	if location == "" {
		return nil, errors.New("schema: empty source location")
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return urlSourceFrom(location)
	}
	return SourceFromFile(location), nil
}

func urlSourceFrom(raw string) (Source, error) {
	if raw == "" {
		return nil, errors.New("schema: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("schema: invalid URL %q: %w", raw, err)
	}
	return urlSource{raw: raw}, nil
}
