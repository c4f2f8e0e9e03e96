// Package search resolves user queries against vault entries.
//
// Matching is approximate (case-folded and tolerant of typos and partial
// input) over each entry's tags joined into a single string, so "work
// email" and "emial" both find an entry tagged ["email", "work"]. Results
// come back ranked, best match first.
//
// Callers own the disambiguation contract: zero matches means not-found and
// the operation aborts; exactly one match proceeds directly; more than one
// match must be presented (as joined tag strings) for explicit selection
// before anything is mutated.
//
// An empty query matches everything.
package search
