package document

import (
	"slices"
	"time"
)

// SchemaVersion is written once at vault creation and carried unchanged.
const SchemaVersion = 1

// Tombstone marks a deleted entry so that a replica which never saw the
// delete can learn of it during merge.
type Tombstone struct {
	ID  string `json:"id"`
	Rev Stamp  `json:"rev"`
}

// ChangeRecord is one committed transaction in the document's history.
type ChangeRecord struct {
	Message string    `json:"message"`
	Actor   string    `json:"actor"`
	Clock   uint64    `json:"clock"`
	Time    time.Time `json:"time"`
}

// Document is the versioned, mergeable vault: all secrets plus the metadata
// and causal bookkeeping needed to reconcile replicas. Every field is a
// plain data value so the whole document serializes and merges cleanly:
// no handles, no caches.
type Document struct {
	ID            string    `json:"id"`
	Version       int       `json:"version"`
	Secrets       []Entry   `json:"secrets"`
	UpdatedAt     time.Time `json:"updatedAt"`
	IsDoggo       bool      `json:"isDoggo"`
	SchemaVersion int       `json:"schemaVersion"`
	ToolVersion   string    `json:"toolVersion"`

	// Clock is the document's lamport counter, advanced on every committed
	// change and raised to the max on merge.
	Clock uint64 `json:"clock"`

	// Graveyard holds tombstones for deleted entries.
	Graveyard []Tombstone `json:"graveyard,omitempty"`

	// History records every committed change. Version is derived from its
	// length; it is a display counter, not a conflict-resolution input.
	History []ChangeRecord `json:"history,omitempty"`
}

// FindEntry returns the entry with the given id, if present.
func (d *Document) FindEntry(id string) (Entry, bool) {
	for _, e := range d.Secrets {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return Entry{}, false
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := *d
	c.Secrets = make([]Entry, len(d.Secrets))
	for i, e := range d.Secrets {
		c.Secrets[i] = e.Clone()
	}
	c.Graveyard = slices.Clone(d.Graveyard)
	c.History = slices.Clone(d.History)
	return &c
}
