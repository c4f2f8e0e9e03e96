package replication

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/WilliamSWoodruff/doggo-cli/internal/document"
	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
)

// lww is the default Engine: a state-based last-writer-wins document.
// Every committed change advances the document's lamport clock and stamps
// the entries it touched with (clock, actor); deletes leave tombstones.
// Merge keeps, per entry id, whichever side carries the highest stamp:
// a total order, so the result is the same regardless of merge direction
// or grouping.
type lww struct {
	actor       string
	toolVersion string
	now         func() time.Time
}

// NewEngine returns the default replication engine. actor identifies this
// device in stamps and history records; toolVersion is written into every
// snapshot the engine commits.
func NewEngine(actor, toolVersion string) Engine {
	return &lww{actor: actor, toolVersion: toolVersion, now: time.Now}
}

// newEngineAt is like NewEngine with a fixed clock, for tests.
func newEngineAt(actor, toolVersion string, now func() time.Time) Engine {
	return &lww{actor: actor, toolVersion: toolVersion, now: now}
}

func (e *lww) Init() *document.Document {
	return &document.Document{
		ID:            uuid.NewString(),
		Version:       1,
		Secrets:       []document.Entry{},
		UpdatedAt:     e.now().UTC(),
		IsDoggo:       true,
		SchemaVersion: document.SchemaVersion,
		ToolVersion:   e.toolVersion,
	}
}

func (e *lww) Load(data []byte) (*document.Document, error) {
	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse vault document: %w", err)
	}
	if !doc.IsDoggo {
		return nil, fmt.Errorf("failed to parse vault document: origin marker missing")
	}
	if doc.Secrets == nil {
		doc.Secrets = []document.Entry{}
	}
	return &doc, nil
}

func (e *lww) Save(doc *document.Document) (string, error) {
	if doc == nil {
		return "", doggoerrors.ErrNoDocument
	}
	// json.Marshal emits compact output with no raw newlines, so the
	// persisted line survives newline-to-space normalization untouched.
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize vault document: %w", err)
	}
	return string(data), nil
}

func (e *lww) Change(doc *document.Document, message string, mutate func(*document.Draft)) (*document.Document, error) {
	if doc == nil {
		return nil, doggoerrors.ErrNoDocument
	}

	draft := document.NewDraft(doc.Clone())
	mutate(draft)
	if !draft.Changed() {
		return doc, nil
	}

	next := draft.Document()
	next.Clock++
	stamp := document.Stamp{Clock: next.Clock, Actor: e.actor}

	// Stamp every entry whose content differs from the input snapshot and
	// leave tombstones for the ones that vanished.
	before := make(map[string]document.Entry, len(doc.Secrets))
	for _, old := range doc.Secrets {
		before[old.ID] = old
	}
	seen := make(map[string]bool, len(next.Secrets))
	for i, cur := range next.Secrets {
		seen[cur.ID] = true
		old, existed := before[cur.ID]
		if !existed || !old.SameContent(cur) {
			next.Secrets[i].Rev = stamp
		}
	}
	for _, old := range doc.Secrets {
		if !seen[old.ID] {
			next.Graveyard = append(next.Graveyard, document.Tombstone{ID: old.ID, Rev: stamp})
		}
	}

	next.History = append(next.History, document.ChangeRecord{
		Message: message,
		Actor:   e.actor,
		Clock:   next.Clock,
		Time:    e.now().UTC(),
	})
	next.Version = len(next.History) + 1
	next.UpdatedAt = e.now().UTC()
	next.ToolVersion = e.toolVersion
	return next, nil
}

func (e *lww) Merge(local, remote *document.Document) (*document.Document, error) {
	if local == nil || remote == nil {
		return nil, doggoerrors.ErrNoDocument
	}
	if local.ID != remote.ID {
		return nil, fmt.Errorf("%w: %s vs %s", doggoerrors.ErrLineageMismatch, local.ID, remote.ID)
	}

	merged := &document.Document{
		ID:            local.ID,
		IsDoggo:       local.IsDoggo,
		SchemaVersion: local.SchemaVersion,
	}

	// Tombstones: union, keeping the highest stamp per id.
	graves := make(map[string]document.Tombstone)
	for _, t := range append(append([]document.Tombstone{}, local.Graveyard...), remote.Graveyard...) {
		if prev, ok := graves[t.ID]; !ok || prev.Rev.Compare(t.Rev) < 0 {
			graves[t.ID] = t
		}
	}

	// Entries: per id, the highest stamp among both live copies and any
	// tombstone decides. Stamps are totally ordered, so the winner does not
	// depend on which side is "local".
	live := make(map[string]document.Entry)
	for _, src := range [][]document.Entry{local.Secrets, remote.Secrets} {
		for _, entry := range src {
			if prev, ok := live[entry.ID]; !ok || winner(prev, entry) {
				live[entry.ID] = entry.Clone()
			}
		}
	}
	var secrets []document.Entry
	for id, entry := range live {
		if t, dead := graves[id]; dead && entry.Rev.Compare(t.Rev) <= 0 {
			continue
		}
		secrets = append(secrets, entry)
	}
	sort.Slice(secrets, func(i, j int) bool {
		if c := secrets[i].Rev.Compare(secrets[j].Rev); c != 0 {
			return c < 0
		}
		return secrets[i].ID < secrets[j].ID
	})
	if secrets == nil {
		secrets = []document.Entry{}
	}
	merged.Secrets = secrets

	for _, t := range graves {
		merged.Graveyard = append(merged.Graveyard, t)
	}
	sort.Slice(merged.Graveyard, func(i, j int) bool {
		if c := merged.Graveyard[i].Rev.Compare(merged.Graveyard[j].Rev); c != 0 {
			return c < 0
		}
		return merged.Graveyard[i].ID < merged.Graveyard[j].ID
	})

	merged.History = mergeHistory(local.History, remote.History)
	// Version is a derived display counter: re-derived from the merged
	// history, not summed.
	merged.Version = len(merged.History) + 1

	merged.Clock = local.Clock
	if remote.Clock > merged.Clock {
		merged.Clock = remote.Clock
	}
	merged.UpdatedAt = local.UpdatedAt
	if remote.UpdatedAt.After(merged.UpdatedAt) {
		merged.UpdatedAt = remote.UpdatedAt
	}
	merged.ToolVersion = mergeToolVersion(local, remote)

	return merged, nil
}

func (e *lww) Diff(local, remote *document.Document) (*Changeset, error) {
	if local == nil || remote == nil {
		return nil, doggoerrors.ErrNoDocument
	}
	if local.ID != remote.ID {
		return nil, fmt.Errorf("%w: %s vs %s", doggoerrors.ErrLineageMismatch, local.ID, remote.ID)
	}

	cs := &Changeset{}

	localByID := make(map[string]document.Entry, len(local.Secrets))
	for _, entry := range local.Secrets {
		localByID[entry.ID] = entry
	}
	remoteByID := make(map[string]document.Entry, len(remote.Secrets))
	for _, entry := range remote.Secrets {
		remoteByID[entry.ID] = entry
	}

	for _, entry := range remote.Secrets {
		ours, ok := localByID[entry.ID]
		switch {
		case !ok:
			cs.Added = append(cs.Added, entry.Clone())
		case !ours.SameContent(entry):
			cs.Changed = append(cs.Changed, EntryDelta{Local: ours.Clone(), Remote: entry.Clone()})
		}
	}
	remoteGraves := make(map[string]bool, len(remote.Graveyard))
	for _, t := range remote.Graveyard {
		remoteGraves[t.ID] = true
	}
	for _, entry := range local.Secrets {
		if _, ok := remoteByID[entry.ID]; !ok && remoteGraves[entry.ID] {
			cs.Removed = append(cs.Removed, entry.Clone())
		}
	}

	known := make(map[string]bool, len(local.History))
	for _, rec := range local.History {
		known[historyKey(rec)] = true
	}
	for _, rec := range sortedHistory(remote.History) {
		if !known[historyKey(rec)] {
			cs.Messages = append(cs.Messages, rec.Message)
		}
	}

	return cs, nil
}

func (e *lww) HistoryLength(doc *document.Document) int {
	if doc == nil {
		return 0
	}
	return len(doc.History)
}

// winner reports whether candidate beats current for the same entry id.
// Changes committed through the engine always carry distinct stamps. Equal
// stamps with different content can still arrive when a vault file is
// copied outside doggo and both copies are edited under the same device
// id; the tie then falls back to content so both merge directions agree.
func winner(current, candidate document.Entry) bool {
	if c := current.Rev.Compare(candidate.Rev); c != 0 {
		return c < 0
	}
	if current.Secret != candidate.Secret {
		return current.Secret < candidate.Secret
	}
	return current.JoinedTags() < candidate.JoinedTags()
}

func historyKey(rec document.ChangeRecord) string {
	return fmt.Sprintf("%s#%d#%s", rec.Actor, rec.Clock, rec.Message)
}

func sortedHistory(records []document.ChangeRecord) []document.ChangeRecord {
	out := append([]document.ChangeRecord{}, records...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Clock != out[j].Clock {
			return out[i].Clock < out[j].Clock
		}
		if out[i].Actor != out[j].Actor {
			return out[i].Actor < out[j].Actor
		}
		return out[i].Message < out[j].Message
	})
	return out
}

func mergeHistory(a, b []document.ChangeRecord) []document.ChangeRecord {
	seen := make(map[string]bool, len(a)+len(b))
	var union []document.ChangeRecord
	for _, rec := range append(append([]document.ChangeRecord{}, a...), b...) {
		key := historyKey(rec)
		if !seen[key] {
			seen[key] = true
			union = append(union, rec)
		}
	}
	return sortedHistory(union)
}

// mergeToolVersion picks the tool marker of the side that wrote last,
// breaking clock ties lexicographically so the choice is direction-free.
func mergeToolVersion(a, b *document.Document) string {
	if a.Clock != b.Clock {
		if a.Clock > b.Clock {
			return a.ToolVersion
		}
		return b.ToolVersion
	}
	if strings.Compare(a.ToolVersion, b.ToolVersion) >= 0 {
		return a.ToolVersion
	}
	return b.ToolVersion
}
