// Package document defines the vault data model: secret entries, the
// versioned document that owns them, and the draft type through which all
// mutations flow.
//
// # Model
//
// An Entry is tags plus an opaque secret payload, identified by an
// immutable uuid. A Document aggregates entries with provenance metadata
// (origin marker, schema and tool versions), a derived display version, and
// the causal bookkeeping (lamport clock, revision stamps, tombstones,
// change history) that the replication engine uses to reconcile replicas.
//
// # Transactions
//
// The document is never mutated directly. Each transaction runs through
// replication.Engine.Change, which copies the current snapshot, wraps it in
// a Draft, and applies a mutator:
//
//	doc, err = eng.Change(doc, "add secret", func(dr *document.Draft) {
//	    dr.AddEntry(tags, secret)
//	})
//
// Draft operations signal a missing target by returning false; a draft that
// changed nothing commits nothing.
//
// # Tags
//
// SplitTags and JoinTags define the round-trippable mapping between the
// human-entered tag string and the stored sequence. Entries with zero tags
// are representable but unfindable by search, so the interaction layer
// refuses them.
package document
