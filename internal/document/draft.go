package document

import "slices"

// Draft is a mutable view over a single transaction. The replication
// engine creates one around a copy of the current snapshot, hands it to a
// mutator, and seals the result; a draft never escapes the change call.
type Draft struct {
	doc     *Document
	changed bool
}

// NewDraft wraps a document copy for the duration of one change call.
func NewDraft(doc *Document) *Draft {
	return &Draft{doc: doc}
}

// Document returns the underlying document being built.
func (dr *Draft) Document() *Document {
	return dr.doc
}

// Changed reports whether any mutation took effect. A draft that changed
// nothing commits nothing: no version bump, no history record.
func (dr *Draft) Changed() bool {
	return dr.changed
}

// AddEntry appends a new secret with a fresh id and returns it.
func (dr *Draft) AddEntry(tags []string, secret string) Entry {
	e := NewEntry(tags, secret)
	dr.doc.Secrets = append(dr.doc.Secrets, e)
	dr.changed = true
	return e
}

// UpdateEntry overwrites the editable fields of the entry with the given
// id, in place, preserving its position and identity. The id itself is
// never editable. Returns false (and mutates nothing) when no entry
// matches.
func (dr *Draft) UpdateEntry(id string, tags []string, secret string) bool {
	for i, e := range dr.doc.Secrets {
		if e.ID != id {
			continue
		}
		if e.Secret == secret && slices.Equal(e.Tags, tags) {
			return true // nothing to write
		}
		dr.doc.Secrets[i].Tags = slices.Clone(tags)
		dr.doc.Secrets[i].Secret = secret
		dr.changed = true
		return true
	}
	return false
}

// RemoveEntry deletes the entry with the given id. Returns false (and
// mutates nothing) when no entry matches.
func (dr *Draft) RemoveEntry(id string) bool {
	for i, e := range dr.doc.Secrets {
		if e.ID == id {
			dr.doc.Secrets = append(dr.doc.Secrets[:i], dr.doc.Secrets[i+1:]...)
			dr.changed = true
			return true
		}
	}
	return false
}
