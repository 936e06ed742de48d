package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/benmeehan/wifi-location/pkg/file"
)

const (
	// AppDirName is the application directory created under the platform config directory.
	AppDirName = "wifi-location"
	// ConfigFileName is the name of the credential document.
	ConfigFileName = "config.yaml"
	// PlaceholderAPIKey marks a configuration that was never filled in.
	PlaceholderAPIKey = "YOUR_API_KEY"
)

// Config represents the structure of the configuration file.
type Config struct {
	APIKey string `yaml:"apikey"` // Google Geolocation API key
}

// Environment carries the host facts used to locate the configuration file.
type Environment struct {
	OS      string // runtime.GOOS value, e.g. "windows", "darwin", "linux"
	AppData string // %APPDATA%, only consulted on Windows
	Home    string // $HOME
}

// EnvironmentFromOS captures the current process environment.
func EnvironmentFromOS() Environment {
	return Environment{
		OS:      runtime.GOOS,
		AppData: os.Getenv("APPDATA"),
		Home:    os.Getenv("HOME"),
	}
}

// ConfigDir returns the platform base configuration directory:
//   - Windows: %APPDATA%
//   - macOS: $HOME/Library/Application Support
//   - others: $HOME/.config
func ConfigDir(env Environment) (string, error) {
	switch env.OS {
	case "windows":
		if env.AppData == "" {
			return "", errors.New("cannot determine configuration directory: APPDATA is not set")
		}
		return env.AppData, nil
	case "darwin":
		if env.Home == "" {
			return "", errors.New("cannot determine configuration directory: HOME is not set")
		}
		return filepath.Join(env.Home, "Library", "Application Support"), nil
	default:
		if env.Home == "" {
			return "", errors.New("cannot determine configuration directory: HOME is not set")
		}
		return filepath.Join(env.Home, ".config"), nil
	}
}

// ResolveConfigPath returns <config dir>/wifi-location/config.yaml for env.
func ResolveConfigPath(env Environment) (string, error) {
	dir, err := ConfigDir(env)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName, ConfigFileName), nil
}

// DefaultConfigContent is written when the configuration file is created.
func DefaultConfigContent() string {
	return fmt.Sprintf("apikey: %s", PlaceholderAPIKey)
}

// LoadConfig loads the YAML configuration from the specified file.
// It returns a pointer to the Config struct and an error if loading fails.
func LoadConfig(filename string, fileClient file.FileOperations) (*Config, error) {
	var config Config
	err := fileClient.ReadYamlFile(filename, &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}
