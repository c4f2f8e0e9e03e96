package document

import (
	"slices"

	"github.com/google/uuid"
)

// Stamp identifies the change that last wrote a value: a per-document
// lamport clock paired with the device that committed it. Stamps form a
// total order, which is what makes merge conflict resolution deterministic.
type Stamp struct {
	Clock uint64 `json:"clock"`
	Actor string `json:"actor"`
}

// Compare orders stamps by clock, then actor. It returns -1, 0, or 1.
func (s Stamp) Compare(o Stamp) int {
	if s.Clock != o.Clock {
		if s.Clock < o.Clock {
			return -1
		}
		return 1
	}
	if s.Actor != o.Actor {
		if s.Actor < o.Actor {
			return -1
		}
		return 1
	}
	return 0
}

// Entry is a single stored secret: free-text tags used to find it, and an
// opaque payload. The id is assigned at creation and never changes.
type Entry struct {
	ID     string   `json:"id"`
	Tags   []string `json:"tags"`
	Secret string   `json:"secret"`

	// Rev records the change that last wrote this entry. Maintained by the
	// replication engine, never edited directly.
	Rev Stamp `json:"rev"`
}

// NewEntry creates an entry with a fresh id.
func NewEntry(tags []string, secret string) Entry {
	return Entry{
		ID:     uuid.NewString(),
		Tags:   slices.Clone(tags),
		Secret: secret,
	}
}

// JoinedTags renders the entry's tags as a single searchable string.
func (e Entry) JoinedTags() string {
	return JoinTags(e.Tags)
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	e.Tags = slices.Clone(e.Tags)
	return e
}

// SameContent reports whether two entries hold the same editable fields.
// Revision stamps are ignored.
func (e Entry) SameContent(o Entry) bool {
	return e.ID == o.ID && e.Secret == o.Secret && slices.Equal(e.Tags, o.Tags)
}
