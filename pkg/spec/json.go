package spec

import (
	"encoding/json"
	"fmt"
	"os"
)

const jsonIndent = "   "

// Marshals the attributes of s with sorted keys and a fixed indent
func Marshal(s Spec) ([]byte, error) {
	return json.MarshalIndent(s.ToDict(), "", jsonIndent)
}

// Builds a spec from a JSON document holding its attributes
func Unmarshal(data []byte) (Spec, error) {
	var attrs Attrs
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal spec: %w", err)
	}
	return New(attrs)
}

func ToJSON(s Spec, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", s, err)
	}

	err = os.WriteFile(path, append(data, '\n'), 0644)
	if err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}

	return nil
}

func FromJSON(path string) (Spec, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("spec file '%s' not found: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}

	s, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load '%s': %w", path, err)
	}

	return s, nil
}
