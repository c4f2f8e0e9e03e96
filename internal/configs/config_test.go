package configs

import (
	"path/filepath"
	"testing"
	"time"
)

func useTempSettings(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	old := *UserDoggoSettings
	UserDoggoSettings.UserConfigsPath = tempDir
	UserDoggoSettings.UserKeysPath = filepath.Join(tempDir, "keys")
	t.Cleanup(func() {
		*UserDoggoSettings = old
	})
}

func TestSaveAndLoadUserConfig(t *testing.T) {
	useTempSettings(t)

	config := &UserConfig{
		Device: DeviceConfig{
			UUID:      "device-uuid-123",
			Name:      "laptop",
			CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		Defaults: DefaultsConfig{
			Vault: "/home/u/secrets.doggo",
			Key:   "personal",
		},
	}

	if err := SaveUserConfig(config); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	loaded, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}

	if loaded.Device.UUID != config.Device.UUID {
		t.Errorf("Expected UUID %q, got %q", config.Device.UUID, loaded.Device.UUID)
	}
	if loaded.Defaults.Vault != config.Defaults.Vault {
		t.Errorf("Expected vault %q, got %q", config.Defaults.Vault, loaded.Defaults.Vault)
	}
	if loaded.Defaults.Key != config.Defaults.Key {
		t.Errorf("Expected key %q, got %q", config.Defaults.Key, loaded.Defaults.Key)
	}
}

func TestEnsureUserConfigCreatesDeviceUUID(t *testing.T) {
	useTempSettings(t)

	config, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("EnsureUserConfig failed: %v", err)
	}
	if config.Device.UUID == "" {
		t.Fatal("EnsureUserConfig created no device UUID")
	}

	// A second call must return the same identity, not mint a new one.
	again, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("EnsureUserConfig (second call) failed: %v", err)
	}
	if again.Device.UUID != config.Device.UUID {
		t.Errorf("device UUID changed: %q vs %q", config.Device.UUID, again.Device.UUID)
	}
}
