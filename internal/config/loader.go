package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDirName is the per-user directory holding configs, the database and logs.
const AppDirName = ".robbo"

const configFile = "robbo.yaml"

// Source names where a loaded configuration came from.
const SourceEmbedded = "embedded"

// Load loads the game configuration.
// Search order: customPath -> ~/.robbo/configs/robbo.yaml -> ./configs/robbo.yaml -> embedded default.
// Files are decoded over the defaults, so they only need the keys they change.
func Load(customPath string) (RobboConfig, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports which file was used.
func LoadWithSource(customPath string) (RobboConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RobboConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return RobboConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{UserPath("configs", configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, path, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultRobboYAML)
	if err != nil {
		return DefaultRobboConfig(), "default", nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

func decode(data []byte) (RobboConfig, error) {
	cfg := DefaultRobboConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RobboConfig{}, err
	}
	return cfg, nil
}

// UserPath joins elem under ~/.robbo, or returns "" if the home directory is unknown.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDirName}, elem...)...)
}

// DefaultYAML returns the embedded default configuration, for `robbo config` style dumps.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultRobboYAML...)
}
