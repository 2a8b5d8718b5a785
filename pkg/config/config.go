package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/insanefusion/fusionenv/pkg/global"
	"github.com/insanefusion/fusionenv/pkg/util/files"
)

// Environment configures the optional conda environment offered during setup.
type Environment struct {
	Name   string `json:"name,omitempty" yaml:"name"`
	Python string `json:"python,omitempty" yaml:"python"`
}

// Model is a single weight file to download.
type Model struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Packages overrides the built-in package groups. A nil slice keeps the
// defaults for that group.
type Packages struct {
	PyTorch   []string `json:"pytorch,omitempty" yaml:"pytorch"`
	OpenCV    []string `json:"opencv,omitempty" yaml:"opencv"`
	Depth     []string `json:"depth,omitempty" yaml:"depth"`
	Splatting []string `json:"splatting,omitempty" yaml:"splatting"`
	Extras    []string `json:"extras,omitempty" yaml:"extras"`
}

// Config is the optional fusionenv.yaml file. Everything in it has a
// compiled-in default; an absent file is a valid configuration.
type Config struct {
	ModelsDir   string       `json:"models_dir,omitempty" yaml:"models_dir"`
	Environment *Environment `json:"environment,omitempty" yaml:"environment"`
	Models      []Model      `json:"models,omitempty" yaml:"models"`
	Packages    *Packages    `json:"packages,omitempty" yaml:"packages"`
}

func DefaultConfig() *Config {
	return &Config{
		ModelsDir: global.DefaultModelsDir,
		Environment: &Environment{
			Name:   global.DefaultEnvName,
			Python: global.DefaultEnvPython,
		},
	}
}

// Load reads fusionenv.yaml from dir if present, returning the defaults
// otherwise.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, global.ConfigFilename)
	exists, err := files.Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return DefaultConfig(), nil
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(contents)
}

// FromYAML parses and validates a fusionenv.yaml document, filling in
// defaults for anything it doesn't set.
func FromYAML(contents []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(contents, cfg); err != nil {
		return nil, fmt.Errorf("Failed to parse %s: %w", global.ConfigFilename, err)
	}
	if cfg.Environment == nil {
		cfg.Environment = DefaultConfig().Environment
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateModels(cfg *Config) error {
	for _, m := range cfg.Models {
		if m.Name != filepath.Base(m.Name) || m.Name == "." || m.Name == ".." {
			return fmt.Errorf("Model name %q must be a plain file name, without directory components", m.Name)
		}
		if !strings.HasPrefix(m.URL, "http://") && !strings.HasPrefix(m.URL, "https://") {
			return fmt.Errorf("Model %s has URL %q, which is not http(s)", m.Name, m.URL)
		}
	}
	return nil
}
