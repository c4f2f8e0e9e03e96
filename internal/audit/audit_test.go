package audit

import (
	"testing"

	"github.com/WilliamSWoodruff/doggo-cli/internal/configs"
)

func useTempSettings(t *testing.T) {
	t.Helper()
	old := *configs.UserDoggoSettings
	configs.UserDoggoSettings.UserConfigsPath = t.TempDir()
	t.Cleanup(func() {
		*configs.UserDoggoSettings = old
	})
}

func TestLogAndReadEntries(t *testing.T) {
	useTempSettings(t)

	Log(Entry{Actor: "device-1", Operation: "add", Tags: "email work", Count: 1})
	Log(Entry{Actor: "device-1", Operation: "delete", Tags: "email work", Count: 0})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "add" || entries[1].Operation != "delete" {
		t.Errorf("entries out of order: %+v", entries)
	}
	if entries[0].Timestamp == "" {
		t.Error("timestamp not populated")
	}
}

func TestReadEntriesMissingLog(t *testing.T) {
	useTempSettings(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil entries, got %v", entries)
	}
}
