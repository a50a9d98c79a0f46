package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is the on-disk form of a schema: a list of tabs.
//
//	tabs:
//	  - kind: tab
//	    segment: video
//	    children:
//	      - kind: leaf
//	        segment: gamma
//	        type: float
//	        default: 1
//	        range: {min: 0, max: 5}
type Definition struct {
	Tabs []NodeSpec `yaml:"tabs"`
}

// ParseYAML decodes a YAML definition. Unknown fields are rejected so that a
// typo in a definition does not silently drop a constraint.
func ParseYAML(data []byte) ([]NodeSpec, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse schema yaml: empty document")
		}
		return nil, fmt.Errorf("parse schema yaml: %w", err)
	}
	return def.Tabs, nil
}

// LoadFile reads and builds a YAML definition from disk.
func LoadFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	specs, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Build(specs)
}
