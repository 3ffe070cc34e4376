// Package project handles persistence of user-facing configuration.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Sina-pz/sap2000-automation/internal/sap"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.floordetect/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".floordetect")
}

// DefaultConfigPath returns the default path for the build settings file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "settings.json")
}

// SaveBuildConfig persists a BuildConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveBuildConfig(path string, config sap.BuildConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadBuildConfig reads a BuildConfig from the given path.
// If the file does not exist, it returns DefaultBuildConfig with no error.
func LoadBuildConfig(path string) (sap.BuildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sap.DefaultBuildConfig(), nil
		}
		return sap.BuildConfig{}, err
	}
	var config sap.BuildConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return sap.BuildConfig{}, err
	}
	// Zero tolerances would collapse the vertex grid; treat them as unset.
	if config.Detect.Tolerance <= 0 {
		config.Detect.Tolerance = sap.DefaultBuildConfig().Detect.Tolerance
	}
	if config.Detect.MaxTraceSteps <= 0 {
		config.Detect.MaxTraceSteps = sap.DefaultBuildConfig().Detect.MaxTraceSteps
	}
	if len(config.Detect.Filter.AllowedVertexCounts) == 0 {
		config.Detect.Filter = sap.DefaultBuildConfig().Detect.Filter
	}
	return config, nil
}
