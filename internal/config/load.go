package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up when no path is given.
const FileName = "scanline.yaml"

// Load loads configuration with priority: defaults < file < overrides.
// An empty path searches the working directory and ConfigDir.
func Load(path string, o Overrides) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		resolvePaths(cfg, filepath.Dir(path))
	}

	o.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		FileName,
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "scanline")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "scanline")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "scanline")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "scanline")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// resolvePaths makes relative asset paths relative to the config file.
func resolvePaths(cfg *Config, dir string) {
	for i := range cfg.Objects {
		p := cfg.Objects[i].Path
		if p != "" && !filepath.IsAbs(p) {
			cfg.Objects[i].Path = filepath.Join(dir, p)
		}
	}
}
