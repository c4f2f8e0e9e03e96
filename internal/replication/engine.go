package replication

import (
	"github.com/WilliamSWoodruff/doggo-cli/internal/document"
)

// Engine is the change-tracking capability the vault core builds on. It
// owns causal bookkeeping, serialization, and the merge algorithm; the core
// owns the mutation bodies it passes to Change.
//
// Merge is required to be commutative, associative, and idempotent, with
// deterministic resolution for concurrent edits of the same entry or
// document field. The default implementation is NewEngine.
type Engine interface {
	// Init creates a fresh, empty document with all metadata established.
	Init() *document.Document

	// Load deserializes a document previously produced by Save.
	Load(data []byte) (*document.Document, error)

	// Save serializes the document as a single line. The result must
	// survive normalization of embedded newlines to spaces.
	Save(doc *document.Document) (string, error)

	// Change applies mutate to a draft of doc and returns a new snapshot
	// causally dependent on it, described by message. The input snapshot is
	// never modified. A mutator that changes nothing yields the input
	// snapshot unchanged.
	Change(doc *document.Document, message string, mutate func(*document.Draft)) (*document.Document, error)

	// Merge combines two replicas of the same document lineage.
	Merge(local, remote *document.Document) (*document.Document, error)

	// Diff describes what remote has that local does not.
	Diff(local, remote *document.Document) (*Changeset, error)

	// HistoryLength reports the number of committed changes.
	HistoryLength(doc *document.Document) int
}

// Changeset describes the difference between two replicas from the local
// replica's point of view.
type Changeset struct {
	// Added entries exist only in remote.
	Added []document.Entry

	// Removed entries exist in local but are dead in remote.
	Removed []document.Entry

	// Changed entries exist on both sides with different content.
	Changed []EntryDelta

	// Messages are remote history records local has never seen, in commit
	// order.
	Messages []string
}

// EntryDelta pairs the two sides of a concurrently edited entry.
type EntryDelta struct {
	Local  document.Entry
	Remote document.Entry
}

// Empty reports whether the changeset carries no differences.
func (c *Changeset) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0 && len(c.Messages) == 0
}
