package jsonschema

import (
	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Marshal renders a node and encodes the document as JSON. Map keys are
// emitted in sorted order, so identical node state always produces identical
// bytes.
func Marshal(n Node) ([]byte, error) {
	return j.Marshal(n.Render())
}

// MarshalIndent is Marshal with indentation, for snapshot files and docs.
func MarshalIndent(n Node, prefix, indent string) ([]byte, error) {
	return j.MarshalIndent(n.Render(), prefix, indent)
}

// MarshalYAML renders a node and encodes the document as YAML, for consumers
// that embed generated schemas in OpenAPI or CRD manifests.
func MarshalYAML(n Node) ([]byte, error) {
	return yaml.Marshal(n.Render())
}
