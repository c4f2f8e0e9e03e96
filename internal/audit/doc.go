// Package audit provides a best-effort trail of vault operations.
//
// Every mutating operation (init, keygen, add, update, delete, merge) is
// recorded
// as JSON Lines at ~/.doggo/audit.jsonl. Secrets themselves are never
// written to the trail, only ids, tags, and counts.
//
// Logging never fails an operation: if the record cannot be written it is
// silently dropped. Malformed lines are skipped on read to handle partial
// writes. `doggo log` renders the trail.
package audit
