package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/shelfview/internal/shelf"
)

// Layout is a complete warehouse description as stored in layout files.
type Layout struct {
	Name     string           `json:"name" yaml:"name"`
	Floors   []Floor          `json:"floors" yaml:"floors"`
	Occupied []shelf.Location `json:"occupied,omitempty" yaml:"occupied,omitempty"`
}

// Parse decodes a YAML (or JSON, which is valid YAML) layout document.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decoding layout: %w", err)
	}
	return &l, nil
}

// LoadFile reads a layout file.
func LoadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// SaveFile writes the layout as YAML.
func (l *Layout) SaveFile(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
