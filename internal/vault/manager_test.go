package vault

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WilliamSWoodruff/doggo-cli/internal/document"
	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
	"github.com/WilliamSWoodruff/doggo-cli/internal/interaction"
	logger "github.com/WilliamSWoodruff/doggo-cli/internal/logging"
	"github.com/WilliamSWoodruff/doggo-cli/internal/replication"
)

// fakeCipher is a reversible stand-in for the encryption capability so
// tests can verify the boundary is crossed without real key material. The
// XOR keeps the plaintext out of the "ciphertext" byte-for-byte.
type fakeCipher struct{}

func xorBytes(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ 0x5a
	}
	return out
}

func (fakeCipher) Encrypt(keyID string, plaintext []byte) ([]byte, error) {
	return append([]byte("sealed:"+keyID+":"), xorBytes(plaintext)...), nil
}

func (fakeCipher) Decrypt(keyID string, ciphertext []byte) ([]byte, error) {
	prefix := []byte("sealed:" + keyID + ":")
	if !bytes.HasPrefix(ciphertext, prefix) {
		return nil, fmt.Errorf("wrong key %q", keyID)
	}
	return xorBytes(ciphertext[len(prefix):]), nil
}

// script plays back canned answers and records which prompts were reached.
type script struct {
	inputs   []string
	confirms []bool
	selects  []int

	inputCalls   int
	confirmCalls int
	selectCalls  int

	inputErr error
}

func (s *script) Input(label, initial string) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputCalls >= len(s.inputs) {
		return initial, nil
	}
	v := s.inputs[s.inputCalls]
	s.inputCalls++
	if v == "<keep>" {
		return initial, nil
	}
	return v, nil
}

func (s *script) Confirm(label string) (bool, error) {
	if s.confirmCalls >= len(s.confirms) {
		return false, nil
	}
	v := s.confirms[s.confirmCalls]
	s.confirmCalls++
	return v, nil
}

func (s *script) Select(label string, options []string) (int, error) {
	if s.selectCalls >= len(s.selects) {
		return 0, nil
	}
	v := s.selects[s.selectCalls]
	s.selectCalls++
	return v, nil
}

func (s *script) Form(fields []interaction.Field) (map[string]string, error) {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		v, err := s.Input(f.Name, f.Initial)
		if err != nil {
			return nil, err
		}
		values[f.Name] = v
	}
	return values, nil
}

func newTestManager(s *script) *Manager {
	return NewManager(
		replication.NewEngine("test-device", "doggo-go/test"),
		fakeCipher{},
		s,
		logger.Logger{},
	)
}

func addEntry(t *testing.T, m *Manager, doc *document.Document, tags, secret string) *document.Document {
	t.Helper()
	s := m.Prompt.(*script)
	s.inputs = append(s.inputs, tags, secret)
	next, err := m.Add(doc)
	require.NoError(t, err)
	return next
}

func TestInitAndLoadRoundTrip(t *testing.T) {
	m := newTestManager(&script{})
	path := filepath.Join(t.TempDir(), "secrets.doggo")

	doc, err := m.Init(path, "personal")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Version)
	assert.Empty(t, doc.Secrets)

	// The file on disk is ciphertext, not the document.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), doc.ID)
	assert.True(t, bytes.HasPrefix(raw, []byte("sealed:personal:")))

	loaded, err := m.Load(path, "personal")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, loaded.ID)
}

func TestInitRefusesOverwrite(t *testing.T) {
	m := newTestManager(&script{})
	path := filepath.Join(t.TempDir(), "secrets.doggo")

	_, err := m.Init(path, "personal")
	require.NoError(t, err)

	_, err = m.Init(path, "personal")
	assert.ErrorIs(t, err, doggoerrors.ErrVaultExists)
}

func TestInitValidation(t *testing.T) {
	m := newTestManager(&script{})

	_, err := m.Init("", "personal")
	assert.ErrorIs(t, err, doggoerrors.ErrNoVaultPath)

	_, err = m.Init(filepath.Join(t.TempDir(), "v.doggo"), "")
	assert.ErrorIs(t, err, doggoerrors.ErrNoKeyIdentifier)
}

func TestLoadMissingVault(t *testing.T) {
	m := newTestManager(&script{})

	_, err := m.Load(filepath.Join(t.TempDir(), "ghost.doggo"), "personal")
	assert.ErrorIs(t, err, doggoerrors.ErrVaultNotFound)
}

func TestAdd(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	doc := m.Engine.Init()

	next := addEntry(t, m, doc, "email, work", "p@ss")

	assert.Equal(t, 2, next.Version)
	require.Len(t, next.Secrets, 1)
	assert.Equal(t, []string{"email", "work"}, next.Secrets[0].Tags)
	assert.Equal(t, "p@ss", next.Secrets[0].Secret)

	// The input snapshot stays untouched.
	assert.Empty(t, doc.Secrets)
}

func TestAddRejectsEmptyTags(t *testing.T) {
	s := &script{inputs: []string{" , ", "p@ss"}}
	m := newTestManager(s)
	doc := m.Engine.Init()

	_, err := m.Add(doc)
	assert.ErrorIs(t, err, doggoerrors.ErrEmptyTags)
}

func TestAddCancelled(t *testing.T) {
	s := &script{inputErr: doggoerrors.ErrCancelled}
	m := newTestManager(s)

	_, err := m.Add(m.Engine.Init())
	assert.ErrorIs(t, err, doggoerrors.ErrAddCancelled)
}

func TestListNarrowsByQuery(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	doc := addEntry(t, m, m.Engine.Init(), "email work", "a")
	doc = addEntry(t, m, doc, "bank card", "b")

	all, err := m.List(doc, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	narrowed, err := m.List(doc, "bank")
	require.NoError(t, err)
	require.Len(t, narrowed, 1)
	assert.Equal(t, "b", narrowed[0].Secret)
}

func TestUpdateMergesEditedFields(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	doc := addEntry(t, m, m.Engine.Init(), "email work", "old-pass")
	original := doc.Secrets[0]

	// Edit the secret, keep the tags as pre-filled.
	s.inputs, s.inputCalls = []string{"<keep>", "new-pass"}, 0
	next, err := m.Update(doc, "email")
	require.NoError(t, err)

	require.Len(t, next.Secrets, 1)
	got := next.Secrets[0]
	assert.Equal(t, original.ID, got.ID, "identity must survive the update")
	assert.Equal(t, []string{"email", "work"}, got.Tags, "unedited field preserved")
	assert.Equal(t, "new-pass", got.Secret)
	assert.Equal(t, 3, next.Version)
}

func TestUpdateNotFound(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	doc := addEntry(t, m, m.Engine.Init(), "email work", "a")

	_, err := m.Update(doc, "zzzz")
	assert.ErrorIs(t, err, doggoerrors.ErrNotFound)
	assert.Zero(t, s.inputCalls-2, "no form prompt after not-found") // 2 calls were the add
}

func TestUpdateRejectsEmptyTags(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	doc := addEntry(t, m, m.Engine.Init(), "email work", "a")

	s.inputs, s.inputCalls = []string{",", "<keep>"}, 0
	_, err := m.Update(doc, "email")
	assert.ErrorIs(t, err, doggoerrors.ErrEmptyTags)
}

func TestDeleteHappyPath(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	doc := addEntry(t, m, m.Engine.Init(), "email work", "p@ss")

	s.confirms = []bool{true, true}
	next, err := m.Delete(doc, "email")
	require.NoError(t, err)

	assert.Empty(t, next.Secrets)
	assert.Equal(t, 3, next.Version)
	assert.Equal(t, 2, s.confirmCalls, "both confirmation stages asked")
}

func TestDeleteDecliningFirstStageNeverReachesSecond(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	doc := addEntry(t, m, m.Engine.Init(), "email work", "p@ss")

	s.confirms = []bool{false, true}
	_, err := m.Delete(doc, "email")

	assert.ErrorIs(t, err, doggoerrors.ErrDeleteCancelled)
	assert.Equal(t, 1, s.confirmCalls, "second stage must not be prompted")
	assert.Len(t, doc.Secrets, 1, "no mutation on cancel")
}

func TestDeleteDecliningSecondStage(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	doc := addEntry(t, m, m.Engine.Init(), "email work", "p@ss")

	s.confirms = []bool{true, false}
	_, err := m.Delete(doc, "email")

	assert.ErrorIs(t, err, doggoerrors.ErrDeleteCancelled)
	assert.Equal(t, 2, s.confirmCalls)
	assert.Len(t, doc.Secrets, 1, "no mutation on cancel")
}

func TestDeleteNotFound(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	doc := addEntry(t, m, m.Engine.Init(), "email work", "p@ss")

	_, err := m.Delete(doc, "zzzz")

	assert.ErrorIs(t, err, doggoerrors.ErrNotFound)
	assert.Zero(t, s.confirmCalls, "no confirmation for a missing target")
	assert.Len(t, doc.Secrets, 1)
}

func TestDeleteDisambiguatesAmongSeveralMatches(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	doc := addEntry(t, m, m.Engine.Init(), "email work", "a")
	doc = addEntry(t, m, doc, "email personal", "b")

	s.selects = []int{1}
	s.confirms = []bool{true, true}
	next, err := m.Delete(doc, "email")
	require.NoError(t, err)

	assert.Equal(t, 1, s.selectCalls, "several matches require a pick")
	require.Len(t, next.Secrets, 1)
	assert.Equal(t, "a", next.Secrets[0].Secret, "the picked entry was deleted")
}

func TestDeleteSingleMatchSkipsSelection(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	doc := addEntry(t, m, m.Engine.Init(), "email work", "a")
	doc = addEntry(t, m, doc, "bank card", "b")

	s.confirms = []bool{true, true}
	_, err := m.Delete(doc, "bank")
	require.NoError(t, err)

	assert.Zero(t, s.selectCalls, "a single match needs no selection prompt")
}

func TestAddThenDeleteRestoresContent(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	base := addEntry(t, m, m.Engine.Init(), "email work", "a")

	withExtra := addEntry(t, m, base, "temp note", "throwaway")
	s.confirms = []bool{true, true}
	restored, err := m.Delete(withExtra, "temp")
	require.NoError(t, err)

	require.Len(t, restored.Secrets, 1)
	assert.Equal(t, base.Secrets[0].ID, restored.Secrets[0].ID)
	assert.Equal(t, base.Secrets[0].Secret, restored.Secrets[0].Secret)
	assert.NotEqual(t, base.Version, restored.Version, "versions differ by design")
}

func TestPersistValidation(t *testing.T) {
	m := newTestManager(&script{})
	doc := m.Engine.Init()
	path := filepath.Join(t.TempDir(), "v.doggo")

	assert.ErrorIs(t, m.Persist(nil, path, "personal"), doggoerrors.ErrNoDocument)
	assert.ErrorIs(t, m.Persist(doc, "", "personal"), doggoerrors.ErrNoVaultPath)
	assert.ErrorIs(t, m.Persist(doc, path, ""), doggoerrors.ErrNoKeyIdentifier)
}

func TestPersistLeavesNoTempFileBehind(t *testing.T) {
	m := newTestManager(&script{})
	dir := t.TempDir()
	path := filepath.Join(dir, "v.doggo")

	require.NoError(t, m.Persist(m.Engine.Init(), path, "personal"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "v.doggo", entries[0].Name())
}

func TestMergeAcrossReplicas(t *testing.T) {
	s := &script{}
	m := newTestManager(s)
	remoteEngine := replication.NewEngine("other-device", "doggo-go/test")

	base := addEntry(t, m, m.Engine.Init(), "shared", "s")
	local := addEntry(t, m, base, "email work", "a")
	remote, err := remoteEngine.Change(base, "add secret", func(dr *document.Draft) {
		dr.AddEntry([]string{"bank", "card"}, "b")
	})
	require.NoError(t, err)

	merged, err := m.Merge(local, remote)
	require.NoError(t, err)
	assert.Len(t, merged.Secrets, 3)

	cs, err := m.Diff(local, remote)
	require.NoError(t, err)
	assert.Len(t, cs.Added, 1)
}

// The walkthrough from the project docs: empty vault, add one credential,
// find it by a single tag, delete it with both confirmations.
func TestFullScenario(t *testing.T) {
	s := &script{}
	m := newTestManager(s)

	d0 := m.Engine.Init()
	assert.Equal(t, 1, d0.Version)
	assert.Empty(t, d0.Secrets)

	s.inputs = []string{"email work", "p@ss"}
	d1, err := m.Add(d0)
	require.NoError(t, err)
	assert.Equal(t, 2, d1.Version)
	require.Len(t, d1.Secrets, 1)

	found, err := m.List(d1, "work")
	require.NoError(t, err)
	require.Len(t, found, 1)

	s.confirms = []bool{true, true}
	d2, err := m.Delete(d1, "work")
	require.NoError(t, err)
	assert.Equal(t, 3, d2.Version)
	assert.Empty(t, d2.Secrets)
}
