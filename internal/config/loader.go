package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDefrag loads Defragment Disk configuration.
// Search order: customPath -> ~/.puzzles/configs/defrag.yaml -> ./configs/defrag.yaml -> embedded default
func LoadDefrag(customPath string) (DefragConfig, error) {
	return load("defrag", customPath, DefaultDefragConfig)
}

// LoadDrivers loads Organise Drivers configuration.
// Search order: customPath -> ~/.puzzles/configs/drivers.yaml -> ./configs/drivers.yaml -> embedded default
func LoadDrivers(customPath string) (DriversConfig, error) {
	return load("drivers", customPath, DefaultDriversConfig)
}

// LoadCompression loads Data Compression configuration.
// Search order: customPath -> ~/.puzzles/configs/compression.yaml -> ./configs/compression.yaml -> embedded default
func LoadCompression(customPath string) (CompressionConfig, error) {
	return load("compression", customPath, DefaultCompressionConfig)
}

// load walks the search order for one puzzle. Values missing from a file
// keep their hardcoded defaults since decoding starts from fallback().
// Only a bad custom path is an error; unreadable or malformed files further
// down the list are skipped.
func load[T any](puzzleID, customPath string, fallback func() T) (T, error) {
	filename := puzzleID + ".yaml"

	// Try custom path first
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := decodeFile(userCfgPath, fallback); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := decodeFile(filepath.Join("configs", filename), fallback); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := fallback()
	if err := yaml.Unmarshal(GetDefaultYAML(puzzleID), &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func decodeFile[T any](path string, fallback func() T) (T, bool) {
	cfg := fallback()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback(), false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".puzzles", "configs", filename)
}
