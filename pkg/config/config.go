// Package config provides JSON and YAML configuration loading.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound is returned when the configuration file does not exist.
	ErrNotFound = errors.New("config file not found")
	// ErrParse is returned when the file is not well-formed JSON or YAML.
	ErrParse = errors.New("config parse error")
	// ErrSchema is returned when the document is well-formed but has the wrong shape.
	ErrSchema = errors.New("config schema error")
)

// Validator is an interface for configuration validation.
type Validator interface {
	Validate() error
}

// EnvExpander is implemented by configurations that expand environment
// variables in selected fields after decoding. Other fields are left verbatim.
type EnvExpander interface {
	ExpandEnv()
}

// Format is the encoding of a configuration file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf picks the decoder from the file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatOf(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load loads configuration from a JSON or YAML file. Unknown keys are ignored.
// Environment variables are expanded only in the fields an EnvExpander chooses.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := Decode(FormatOf(filename), data, target); err != nil {
		return fmt.Errorf("config file %s: %w", filename, err)
	}

	if expander, ok := any(target).(EnvExpander); ok {
		expander.ExpandEnv()
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrSchema, filename, err)
		}
	}

	return nil
}

// Decode unmarshals data into target and classifies failures as ErrParse or ErrSchema.
func Decode[T any](format Format, data []byte, target *T) error {
	switch format {
	case FormatYAML:
		return decodeYAML(data, target)
	default:
		return decodeJSON(data, target)
	}
}

func decodeJSON(data []byte, target any) error {
	if !json.Valid(data) {
		// Re-run the decoder so the error carries the offset.
		var probe any
		err := json.Unmarshal(data, &probe)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return nil
}

func decodeYAML(data []byte, target any) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(root.Content) == 0 {
		return nil
	}
	if root.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("%w: top-level value must be a mapping", ErrSchema)
	}
	if err := root.Decode(target); err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return nil
}

// Encode marshals v in the given format. JSON output is indented.
func Encode(format Format, v any) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}
