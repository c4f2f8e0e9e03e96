// Package vault orchestrates the document lifecycle: load a vault through
// the decryption and replication capabilities, resolve the user's query to
// a target secret, apply one transaction, and persist the result.
//
// # Capabilities
//
// A Manager holds its three collaborators (replication.Engine,
// crypt.Cipher, interaction.Interactor) as injected values. Nothing is a
// package-level singleton; tests substitute fakes for all three.
//
// # Destructive operations
//
// Delete walks an explicit gate sequence: located → confirmed once →
// confirmed twice → applied. A negative answer at either confirmation ends
// in "delete cancelled" with no mutation; a search that finds nothing ends
// in not-found the same way. Cancellation is a user decision, reported
// through the same expected-error channel as validation failures (see the
// errors package), never as a fault.
//
// # Persistence
//
// Each invocation performs at most one transaction. Persist is the only
// write: serialize (single line, newlines normalized to spaces), encrypt
// under the named key, then write a temp file and rename: a failure
// anywhere aborts the whole transaction with no partial output, and the
// plaintext document never reaches persistent storage.
package vault
