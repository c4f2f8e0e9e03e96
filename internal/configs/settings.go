package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// UserSettings locates the per-user doggo directory. Populated by
// InitUserSettings; tests point the paths at a temp directory.
type UserSettings struct {
	UserConfigsPath string // ~/.doggo
	UserKeysPath    string // ~/.doggo/keys
}

// UserDoggoSettings holds the resolved per-user paths.
var UserDoggoSettings = &UserSettings{}

// InitUserSettings resolves the user's doggo directory layout.
func InitUserSettings() error {
	if UserDoggoSettings.UserConfigsPath != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	UserDoggoSettings.UserConfigsPath = filepath.Join(home, ".doggo")
	UserDoggoSettings.UserKeysPath = filepath.Join(home, ".doggo", "keys")
	return nil
}

// UserConfig is the per-user configuration stored at ~/.doggo/config.toml.
type UserConfig struct {
	Device   DeviceConfig   `toml:"device"`
	Defaults DefaultsConfig `toml:"defaults"`
}

// DeviceConfig identifies this device. The UUID is the actor id stamped
// into every change this device commits; it is generated once and must
// stay stable for merge determinism.
type DeviceConfig struct {
	UUID      string    `toml:"uuid"`
	Name      string    `toml:"name"`
	CreatedAt time.Time `toml:"created_at"`
}

// DefaultsConfig carries defaults that flags override.
type DefaultsConfig struct {
	Vault string `toml:"vault"`
	Key   string `toml:"key"`
}

func userConfigPath() string {
	return filepath.Join(UserDoggoSettings.UserConfigsPath, "config.toml")
}

// LoadUserConfig reads the user config from disk.
func LoadUserConfig() (*UserConfig, error) {
	var config UserConfig
	if err := LoadTOML(userConfigPath(), &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveUserConfig writes the user config to disk.
func SaveUserConfig(config *UserConfig) error {
	return SaveTOML(userConfigPath(), config)
}

// EnsureUserConfig loads the user config, creating it with a fresh device
// UUID on first run.
func EnsureUserConfig() (*UserConfig, error) {
	if err := InitUserSettings(); err != nil {
		return nil, err
	}

	config, err := LoadUserConfig()
	if err == nil && config.Device.UUID != "" {
		return config, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	config = &UserConfig{
		Device: DeviceConfig{
			UUID:      uuid.NewString(),
			Name:      hostname,
			CreatedAt: time.Now().UTC(),
		},
	}
	if err := SaveUserConfig(config); err != nil {
		return nil, fmt.Errorf("failed to save user config: %w", err)
	}
	return config, nil
}
