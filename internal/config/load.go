// Package config loads the formview command configuration from YAML files
// with environment variable expansion.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by configuration structs that check themselves
// after decoding.
type Validator interface {
	Validate() error
}

// Load reads filename into target and validates targets implementing
// Validator.
func Load[T any](filename string, target *T) error {
	if err := Read(filename, target); err != nil {
		return err
	}
	return validate(target)
}

// Read decodes filename into target with ${VAR} references expanded. It does
// not validate, so callers can layer flag overrides before validating.
func Read[T any](filename string, target *T) error {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", filename, err)
	}
	if err := decode(raw, target); err != nil {
		return fmt.Errorf("config: parse %s: %w", filename, err)
	}
	return nil
}

// ReadOptional behaves like Read but leaves target untouched when filename
// is empty or does not exist.
func ReadOptional[T any](filename string, target *T) error {
	if filename == "" {
		return nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return Read(filename, target)
}

// Decode expands environment references in raw, decodes it into target and
// validates the result.
func Decode[T any](raw []byte, target *T) error {
	if err := decode(raw, target); err != nil {
		return fmt.Errorf("config: parse: %w", err)
	}
	return validate(target)
}

func decode[T any](raw []byte, target *T) error {
	expanded := os.ExpandEnv(string(raw))
	return yaml.Unmarshal([]byte(expanded), target)
}

func validate[T any](target *T) error {
	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("config: validation failed: %w", err)
		}
	}
	return nil
}
