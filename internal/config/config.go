package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the run configuration for the selene CLI.
type Config struct {
	// OpenLibs bootstraps the VM's standard library surface.
	OpenLibs bool `yaml:"open_libs"`
	// Generation selects the module-registration ABI: "modern" or
	// "legacy".
	Generation string `yaml:"generation"`
	// Preload lists native modules to register before any script runs.
	Preload []string `yaml:"preload"`
	// History keeps entered lines in the interactive prompt, retrievable
	// with the :history command.
	History bool `yaml:"history"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		OpenLibs:   true,
		Generation: GenerationModernName,
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Generation != GenerationModernName && cfg.Generation != GenerationLegacyName {
		return cfg, fmt.Errorf("%s: unknown generation %q", path, cfg.Generation)
	}
	return cfg, nil
}
