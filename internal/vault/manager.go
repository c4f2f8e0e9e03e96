package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/WilliamSWoodruff/doggo-cli/internal/crypt"
	"github.com/WilliamSWoodruff/doggo-cli/internal/document"
	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
	"github.com/WilliamSWoodruff/doggo-cli/internal/interaction"
	logger "github.com/WilliamSWoodruff/doggo-cli/internal/logging"
	"github.com/WilliamSWoodruff/doggo-cli/internal/replication"
	"github.com/WilliamSWoodruff/doggo-cli/internal/search"
)

// Manager orchestrates the vault lifecycle: decrypt → load → search/mutate
// → save → encrypt. Its capabilities are injected at construction and never
// looked up implicitly.
type Manager struct {
	Engine replication.Engine
	Cipher crypt.Cipher
	Prompt interaction.Interactor
	Log    logger.Logger
}

// NewManager wires a Manager from its capabilities.
func NewManager(engine replication.Engine, cipher crypt.Cipher, prompt interaction.Interactor, log logger.Logger) *Manager {
	return &Manager{Engine: engine, Cipher: cipher, Prompt: prompt, Log: log}
}

// Init creates a fresh empty vault and persists it. Refuses to overwrite an
// existing vault file.
func (m *Manager) Init(path, keyID string) (*document.Document, error) {
	if path == "" {
		return nil, doggoerrors.ErrNoVaultPath
	}
	if keyID == "" {
		return nil, doggoerrors.ErrNoKeyIdentifier
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", doggoerrors.ErrVaultExists, path)
	}

	doc := m.Engine.Init()
	if err := m.Persist(doc, path, keyID); err != nil {
		return nil, err
	}
	m.Log.Infof("Initialized vault %s (id %s)", path, doc.ID)
	return doc, nil
}

// Load reads, decrypts, and deserializes the vault at path.
func (m *Manager) Load(path, keyID string) (*document.Document, error) {
	if path == "" {
		return nil, doggoerrors.ErrNoVaultPath
	}
	if keyID == "" {
		return nil, doggoerrors.ErrNoKeyIdentifier
	}

	ciphertext, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", doggoerrors.ErrVaultNotFound, path)
		}
		return nil, fmt.Errorf("failed to read vault at %s: %w", path, err)
	}

	plaintext, err := m.Cipher.Decrypt(keyID, ciphertext)
	if err != nil {
		return nil, err
	}
	doc, err := m.Engine.Load(plaintext)
	if err != nil {
		return nil, err
	}
	m.Log.Debugf("Loaded vault %s: version %d, %d secrets", path, doc.Version, len(doc.Secrets))
	return doc, nil
}

// List returns the vault's secrets, narrowed by query when one is given.
// Read-only: the document is never mutated.
func (m *Manager) List(doc *document.Document, query string) ([]document.Entry, error) {
	if doc == nil {
		return nil, doggoerrors.ErrNoDocument
	}
	if query == "" {
		entries := make([]document.Entry, len(doc.Secrets))
		for i, e := range doc.Secrets {
			entries[i] = e.Clone()
		}
		return entries, nil
	}

	matches := search.Entries(doc.Secrets, query, search.Options{})
	entries := make([]document.Entry, len(matches))
	for i, match := range matches {
		entries[i] = match.Entry
	}
	return entries, nil
}

// Add collects tags and a payload from the user and appends a new secret.
func (m *Manager) Add(doc *document.Document) (*document.Document, error) {
	if doc == nil {
		return nil, doggoerrors.ErrNoDocument
	}

	rawTags, err := m.Prompt.Input("Tags (separate with spaces or commas)", "")
	if err != nil {
		return nil, wrapCancel(err, doggoerrors.ErrAddCancelled)
	}
	tags := document.SplitTags(rawTags)
	if len(tags) == 0 {
		return nil, doggoerrors.ErrEmptyTags
	}

	secret, err := m.Prompt.Input("Secret", "")
	if err != nil {
		return nil, wrapCancel(err, doggoerrors.ErrAddCancelled)
	}

	next, err := m.Engine.Change(doc, "add secret", func(dr *document.Draft) {
		dr.AddEntry(tags, secret)
	})
	if err != nil {
		return nil, err
	}
	m.Log.Infof("Added secret tagged %q", document.JoinTags(tags))
	return next, nil
}

// Update locates one secret by query, presents its editable fields
// pre-filled, and overwrites them with the edited values. The id is never
// presented and never editable; unedited fields keep their current values.
func (m *Manager) Update(doc *document.Document, query string) (*document.Document, error) {
	if doc == nil {
		return nil, doggoerrors.ErrNoDocument
	}

	target, err := m.locate(doc, query)
	if err != nil {
		return nil, wrapCancel(err, doggoerrors.ErrUpdateCancelled)
	}

	values, err := m.Prompt.Form([]interaction.Field{
		{Name: "tags", Initial: target.JoinedTags()},
		{Name: "secret", Initial: target.Secret},
	})
	if err != nil {
		return nil, wrapCancel(err, doggoerrors.ErrUpdateCancelled)
	}

	// Edited fields are merged over the original entry.
	tags := target.Tags
	if raw, ok := values["tags"]; ok {
		tags = document.SplitTags(raw)
	}
	if len(tags) == 0 {
		return nil, doggoerrors.ErrEmptyTags
	}
	secret := target.Secret
	if v, ok := values["secret"]; ok {
		secret = v
	}

	next, err := m.Engine.Change(doc, "update secret", func(dr *document.Draft) {
		dr.UpdateEntry(target.ID, tags, secret)
	})
	if err != nil {
		return nil, err
	}
	m.Log.Infof("Updated secret %s", target.ID)
	return next, nil
}

// Delete locates one secret by query and removes it after a two-stage
// confirmation. Declining either stage cancels with no mutation.
func (m *Manager) Delete(doc *document.Document, query string) (*document.Document, error) {
	if doc == nil {
		return nil, doggoerrors.ErrNoDocument
	}

	target, err := m.locate(doc, query)
	if err != nil {
		return nil, wrapCancel(err, doggoerrors.ErrDeleteCancelled)
	}

	ok, err := m.Prompt.Confirm(fmt.Sprintf("Delete %q", target.JoinedTags()))
	if err != nil {
		return nil, wrapCancel(err, doggoerrors.ErrDeleteCancelled)
	}
	if !ok {
		return nil, doggoerrors.ErrDeleteCancelled
	}

	ok, err = m.Prompt.Confirm("Really delete? There is no undo")
	if err != nil {
		return nil, wrapCancel(err, doggoerrors.ErrDeleteCancelled)
	}
	if !ok {
		return nil, doggoerrors.ErrDeleteCancelled
	}

	next, err := m.Engine.Change(doc, "delete secret", func(dr *document.Draft) {
		dr.RemoveEntry(target.ID)
	})
	if err != nil {
		return nil, err
	}
	m.Log.Infof("Deleted secret %s", target.ID)
	return next, nil
}

// Persist serializes, encrypts, and atomically writes the vault. The
// plaintext never touches persistent storage; output appears only as the
// final rename.
func (m *Manager) Persist(doc *document.Document, path, keyID string) error {
	if doc == nil {
		return doggoerrors.ErrNoDocument
	}
	if path == "" {
		return doggoerrors.ErrNoVaultPath
	}
	if keyID == "" {
		return doggoerrors.ErrNoKeyIdentifier
	}

	serialized, err := m.Engine.Save(doc)
	if err != nil {
		return err
	}
	// The serialization must tolerate this; the engine guarantees a
	// single-line form.
	serialized = strings.ReplaceAll(serialized, "\n", " ")

	ciphertext, err := m.Cipher.Encrypt(keyID, []byte(serialized))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, ciphertext, 0600); err != nil {
		return fmt.Errorf("failed to write vault: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize vault write: %w", err)
	}
	m.Log.Debugf("Persisted vault %s: version %d", path, doc.Version)
	return nil
}

// Merge combines two replicas of the same vault lineage.
func (m *Manager) Merge(local, remote *document.Document) (*document.Document, error) {
	return m.Engine.Merge(local, remote)
}

// Diff describes what remote has that local does not.
func (m *Manager) Diff(local, remote *document.Document) (*replication.Changeset, error) {
	return m.Engine.Diff(local, remote)
}

// locate resolves query to exactly one entry: zero matches is not-found;
// one match is used directly; several matches require an explicit pick.
func (m *Manager) locate(doc *document.Document, query string) (document.Entry, error) {
	matches := search.Entries(doc.Secrets, query, search.Options{})
	switch len(matches) {
	case 0:
		return document.Entry{}, doggoerrors.ErrNotFound
	case 1:
		return matches[0].Entry, nil
	}

	options := make([]string, len(matches))
	for i, match := range matches {
		options[i] = match.Joined
	}
	index, err := m.Prompt.Select("Several secrets match, pick one", options)
	if err != nil {
		return document.Entry{}, err
	}
	if index < 0 || index >= len(matches) {
		return document.Entry{}, fmt.Errorf("selection index %d out of range", index)
	}
	return matches[index].Entry, nil
}

// wrapCancel converts the generic cancellation sentinel into the
// operation-specific one so the user sees "delete cancelled" rather than
// just "cancelled". Other errors pass through untouched.
func wrapCancel(err error, sentinel error) error {
	if errors.Is(err, doggoerrors.ErrCancelled) {
		return sentinel
	}
	return err
}
