package definition

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a definitions document of the form "zones: [...]".
// Unknown fields are rejected so typos surface as errors.
func DecodeYAML(r io.Reader) (Set, error) {
	var set Set
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&set); err != nil {
		return Set{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return set, nil
}

// LoadYAML reads, parses and validates a definitions file.
func LoadYAML(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read definitions file: %w", err)
	}
	defer f.Close()

	set, err := DecodeYAML(f)
	if err != nil {
		return Set{}, fmt.Errorf("%s: %w", path, err)
	}
	if errs := ValidateSet(set); len(errs) > 0 {
		return Set{}, fmt.Errorf("%s: %w", path, AsError(errs))
	}
	return set, nil
}
