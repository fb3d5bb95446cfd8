// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/games/maze/core"
	"gopkg.in/yaml.v3"
)

// Level is a parsed level ready for use.
type Level struct {
	Name        string
	Description string
	Author      string
	Map         *core.Level
}

// YAMLLevel is the YAML structure for a level pack file.
// Map holds the native text format as a block string.
type YAMLLevel struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Author      string `yaml:"author,omitempty"`
	Map         string `yaml:"map"`
}

// ParseText parses the native <width>,<height> text format.
func ParseText(data []byte) (Level, error) {
	m, err := core.Decode(string(data))
	if err != nil {
		return Level{}, err
	}
	return Level{Map: m}, nil
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.Map == "" {
		return Level{}, fmt.Errorf("yaml level %q has no map", yl.Name)
	}

	m, err := core.Decode(yl.Map)
	if err != nil {
		return Level{}, err
	}
	return Level{
		Name:        yl.Name,
		Description: yl.Description,
		Author:      yl.Author,
		Map:         m,
	}, nil
}

// MarshalYAML encodes a level as a YAML level pack entry.
func MarshalYAML(l Level) ([]byte, error) {
	return yaml.Marshal(YAMLLevel{
		Name:        l.Name,
		Description: l.Description,
		Author:      l.Author,
		Map:         core.Encode(l.Map),
	})
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".yaml", ".yml"}
}
