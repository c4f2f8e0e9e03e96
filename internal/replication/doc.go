// Package replication provides the change-tracking capability the vault is
// built on: snapshot transactions, serialization, and the merge/diff pair
// used to reconcile replicas edited offline.
//
// The Engine interface is what the rest of the system depends on. The
// default implementation is a state-based last-writer-wins document: each
// committed change advances a lamport clock and stamps the entries it
// touched with (clock, actor); deletes leave tombstones; merge keeps the
// highest stamp per entry id. Stamps are totally ordered, which makes merge
// commutative, associative, and (up to display order) idempotent: replicas
// can be merged at any time, any number of times, in any order.
//
// The document's version field is derived from history length and is for
// display only; conflict resolution never reads it.
package replication
