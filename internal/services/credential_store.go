package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/benmeehan/wifi-location/internal/utils"
	"github.com/benmeehan/wifi-location/pkg/file"
)

var (
	// ErrSetupRequired is matched by every SetupError.
	ErrSetupRequired = errors.New("API key setup required")
	// ErrMissingAPIKey is returned when the config file has no apikey value at all.
	ErrMissingAPIKey = errors.New("apikey is missing from configuration file")
)

// SetupReason tells why the user has to edit the configuration file.
type SetupReason int

const (
	// SetupReasonCreated means the file did not exist and was just written with the placeholder.
	SetupReasonCreated SetupReason = iota
	// SetupReasonPlaceholder means the file still holds the placeholder key.
	SetupReasonPlaceholder
)

// SetupError reports a configuration file that needs the user's API key.
type SetupError struct {
	Path   string
	Reason SetupReason
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("Please add your Google Geolocation API key to the configuration file at %s", e.Path)
}

// Is makes errors.Is(err, ErrSetupRequired) hold for any SetupError.
func (e *SetupError) Is(target error) bool {
	return target == ErrSetupRequired
}

// CredentialStore reads the Geolocation API key from the per-user configuration file.
type CredentialStore struct {
	env        utils.Environment
	configPath string // Overrides the resolved path when set

	fileClient file.FileOperations
	logger     zerolog.Logger
}

// NewCredentialStore creates a CredentialStore. An empty configPath means the
// path is resolved from env.
func NewCredentialStore(env utils.Environment, configPath string, fileClient file.FileOperations, logger zerolog.Logger) *CredentialStore {
	return &CredentialStore{
		env:        env,
		configPath: configPath,
		fileClient: fileClient,
		logger:     logger,
	}
}

// ConfigPath returns the location of the configuration file.
func (c *CredentialStore) ConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return utils.ResolveConfigPath(c.env)
}

// ReadAPIKey returns the stored API key. A missing file is created with the
// placeholder key and reported as a SetupError, as is a file that still holds
// the placeholder. Other failures are returned wrapped.
func (c *CredentialStore) ReadAPIKey() (string, error) {
	path, err := c.ConfigPath()
	if err != nil {
		return "", err
	}

	exists, err := c.fileClient.IsFileExists(path)
	if err != nil {
		return "", fmt.Errorf("failed to check configuration file %s: %w", path, err)
	}

	if !exists {
		created, err := c.initConfigFile(path)
		if err != nil {
			return "", err
		}
		if created {
			return "", &SetupError{Path: path, Reason: SetupReasonCreated}
		}
	}

	config, err := utils.LoadConfig(path, c.fileClient)
	if err != nil {
		return "", fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	switch config.APIKey {
	case utils.PlaceholderAPIKey:
		return "", &SetupError{Path: path, Reason: SetupReasonPlaceholder}
	case "":
		return "", fmt.Errorf("%w: %s", ErrMissingAPIKey, path)
	}

	c.logger.Debug().Str("path", path).Msg("API key loaded")
	return config.APIKey, nil
}

// initConfigFile writes the placeholder configuration. It reports false when
// another writer created the file first, leaving that file untouched.
func (c *CredentialStore) initConfigFile(path string) (bool, error) {
	if err := c.fileClient.EnsureDir(filepath.Dir(path)); err != nil {
		return false, err
	}

	err := c.fileClient.CreateFile(path, utils.DefaultConfigContent())
	if os.IsExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create configuration file %s: %w", path, err)
	}

	c.logger.Info().Str("path", path).Msg("Created configuration file with placeholder API key")
	return true, nil
}
