package parser

import (
	"fmt"
	"strings"
)

// Well-known manifest fields.
const (
	FieldPackage        = "package"
	FieldPackageName    = "package.name"
	FieldPackageVersion = "package.version"
	FieldWorkspace      = "workspace"
)

// Document is a decoded TOML manifest.
type Document map[string]any

// Has reports whether the dot-notation field exists.
func (d Document) Has(field string) bool {
	_, err := getNestedValue(d, field)
	return err == nil
}

// String returns the string stored at the dot-notation field.
func (d Document) String(field string) (string, error) {
	value, err := getNestedValue(d, field)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q is not a string", field)
	}
	return s, nil
}

// getNestedValue retrieves a value from a nested map using dot notation.
// Example: "package.version" accesses obj["package"]["version"]
func getNestedValue(obj map[string]any, field string) (any, error) {
	if field == "" {
		return nil, fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		var currentMap map[string]any
		switch m := current.(type) {
		case map[string]any:
			currentMap = m
		case Document:
			currentMap = m
		default:
			return nil, fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i], "."), part)
		}

		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("field %q not found", field)
		}

		current = value
	}

	return current, nil
}
