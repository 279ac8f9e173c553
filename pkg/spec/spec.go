package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from a file extension. Unknown
// extensions are treated as YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Load reads a generation config from a YAML, TOML or JSON file.
// Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// LoadProject loads a config from a project directory.
// It looks for city.yaml in the given directory.
func LoadProject(projectDir string) (Config, error) {
	return Load(filepath.Join(projectDir, "city.yaml"))
}

// Decode parses a config in the given format on top of Defaults.
// A zone_distribution present in the input replaces the default map
// rather than being merged into it.
func Decode(data []byte, format Format) (Config, error) {
	cfg := Defaults()
	cfg.ZoneDistribution = nil

	var err error
	switch format {
	case FormatTOML:
		_, err = toml.Decode(string(data), &cfg)
	case FormatJSON:
		err = json.Unmarshal(data, &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, err
	}

	if len(cfg.ZoneDistribution) == 0 {
		cfg.ZoneDistribution = DefaultDistribution()
	}
	return cfg, nil
}

// MarshalYAML renders cfg as a YAML document.
func MarshalYAML(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
