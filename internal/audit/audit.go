package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/WilliamSWoodruff/doggo-cli/internal/configs"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`    // RFC3339 with microseconds.
	Actor     string `json:"actor"` // Device UUID performing the operation.
	Operation string `json:"op"`    // Operation name.

	// Optional fields depending on operation.
	Vault    string   `json:"vault,omitempty"`    // Vault file path.
	EntryID  string   `json:"entry_id,omitempty"` // Affected secret id.
	Tags     string   `json:"tags,omitempty"`     // Joined tags of the affected secret.
	Replicas []string `json:"replicas,omitempty"` // For merge.
	Count    int      `json:"count,omitempty"`    // Secrets after the operation.
}

func logPath() string {
	return filepath.Join(configs.UserDoggoSettings.UserConfigsPath, "audit.jsonl")
}

// Log appends an entry to the audit log. Logging is best-effort: an
// operation never fails because its audit record could not be written.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	dir := configs.UserDoggoSettings.UserConfigsPath
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = f.Write(data)
}

// ReadEntries parses the audit log for display. Malformed lines are
// skipped to tolerate partial writes.
func ReadEntries() ([]Entry, error) {
	f, err := os.Open(logPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}
