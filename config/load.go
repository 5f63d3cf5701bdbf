package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a supported configuration encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (Node, error) {
	var v any
	var err error
	switch format {
	case JSON:
		err = json.Unmarshal(data, &v)
	case YAML:
		err = yaml.Unmarshal(data, &v)
	case TOML:
		var m map[string]any
		err = toml.Unmarshal(data, &m)
		v = m
	default:
		return Node{}, fmt.Errorf("unsupported config format %q", format)
	}
	if err != nil {
		return Node{}, fmt.Errorf("decode %s: %w", format, err)
	}
	return New(v), nil
}

// Load reads and decodes a configuration file.
func Load(path string) (Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Node{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Node{}, fmt.Errorf("read config: %w", err)
	}
	n, err := Parse(data, format)
	if err != nil {
		return Node{}, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}
