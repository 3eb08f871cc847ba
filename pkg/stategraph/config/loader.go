package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes a YAML document into a Config. Engine settings files
// (see stategraph.FromConfig for the recognized keys) are usually YAML.
func FromYAML(data []byte) (Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config: decode yaml: %w", err)
	}
	return New(raw), nil
}

// FromJSON decodes a JSON document into a Config.
func FromJSON(data []byte) (Config, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config: decode json: %w", err)
	}
	return New(raw), nil
}

// FromFile reads path and decodes it by extension: .yaml and .yml as YAML,
// .json as JSON. Anything else is an error.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Config{}, fmt.Errorf("config: unsupported extension %q for %s", ext, path)
	}
}
