package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benmeehan/wifi-location/internal/utils"
	"github.com/benmeehan/wifi-location/pkg/file"
)

func TestResolveConfigPath(t *testing.T) {
	tests := []struct {
		name string
		env  utils.Environment
		want string
	}{
		{
			name: "windows uses APPDATA",
			env:  utils.Environment{OS: "windows", AppData: "/users/me/AppData/Roaming", Home: "/ignored"},
			want: filepath.Join("/users/me/AppData/Roaming", "wifi-location", "config.yaml"),
		},
		{
			name: "darwin uses Application Support",
			env:  utils.Environment{OS: "darwin", Home: "/Users/me"},
			want: filepath.Join("/Users/me", "Library", "Application Support", "wifi-location", "config.yaml"),
		},
		{
			name: "linux uses .config",
			env:  utils.Environment{OS: "linux", Home: "/home/me"},
			want: filepath.Join("/home/me", ".config", "wifi-location", "config.yaml"),
		},
		{
			name: "other unix falls back to .config",
			env:  utils.Environment{OS: "freebsd", Home: "/home/me", AppData: "/ignored"},
			want: filepath.Join("/home/me", ".config", "wifi-location", "config.yaml"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.ResolveConfigPath(tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := utils.ResolveConfigPath(tt.env)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

// TestResolveConfigPath_MissingVariables fails instead of producing a relative path.
func TestResolveConfigPath_MissingVariables(t *testing.T) {
	_, err := utils.ResolveConfigPath(utils.Environment{OS: "windows", Home: "/home/me"})
	assert.Error(t, err)

	_, err = utils.ResolveConfigPath(utils.Environment{OS: "darwin"})
	assert.Error(t, err)

	_, err = utils.ResolveConfigPath(utils.Environment{OS: "linux", AppData: "/x"})
	assert.Error(t, err)
}

func TestEnvironmentFromOS(t *testing.T) {
	t.Setenv("HOME", "/tmp/home-for-test")
	t.Setenv("APPDATA", "/tmp/appdata-for-test")

	env := utils.EnvironmentFromOS()
	assert.NotEmpty(t, env.OS)
	assert.Equal(t, "/tmp/home-for-test", env.Home)
	assert.Equal(t, "/tmp/appdata-for-test", env.AppData)
}

func TestDefaultConfigContent(t *testing.T) {
	assert.Equal(t, "apikey: YOUR_API_KEY", utils.DefaultConfigContent())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apikey: AIza-test\n"), 0600))

	config, err := utils.LoadConfig(path, file.NewFileService())
	require.NoError(t, err)
	assert.Equal(t, "AIza-test", config.APIKey)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	config, err := utils.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), file.NewFileService())
	assert.True(t, os.IsNotExist(err))
	assert.Nil(t, config)
}
