package docsql

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .docsql.yaml configuration file.
type Config struct {
	// Mode selects the type table ("strict" or "permissive").
	// Empty means strict.
	Mode string `yaml:"mode,omitempty"`

	// Collection is the default collection name for describe operations.
	Collection string `yaml:"collection,omitempty"`

	// Schema is the default schema-document path, relative to the config
	// file's directory unless absolute.
	Schema string `yaml:"schema,omitempty"`
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".docsql.yaml", ".docsql.yml", "docsql.yaml", "docsql.yml"}

// TypeMode returns the configured mode.
func (c *Config) TypeMode() (TypeMode, error) {
	return ParseTypeMode(c.Mode)
}

// LoadConfig finds and loads the nearest .docsql.yaml walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
