package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/WilliamSWoodruff/doggo-cli/internal/document"
)

// Options controls how entries are matched.
type Options struct {
	// Keys names the entry fields to match against: "tags", "secret", "id".
	// Empty means tags only.
	Keys []string

	// IDs requests entry identifiers instead of the entries themselves.
	// Honored by Resolve; Entries always returns full matches.
	IDs bool
}

// Match is one ranked search result. Lower Rank is a better match.
type Match struct {
	Entry  document.Entry
	Joined string
	Rank   int
}

// Entries resolves query against the given secrets, best match first.
//
// Matching is approximate (case-folded, typo and substring tolerant) and
// per-token: each whitespace-separated word of the query must match the
// entry's joined representation independently, so a query can hit any
// subset or ordering of an entry's tags. An empty query matches
// everything: list-style callers only invoke search with a non-empty
// query, and update/delete with an empty query should still be able to
// enumerate candidates for selection.
func Entries(entries []document.Entry, query string, opts Options) []Match {
	if query == "" {
		all := make([]Match, len(entries))
		for i, e := range entries {
			all[i] = Match{Entry: e.Clone(), Joined: e.JoinedTags()}
		}
		return all
	}

	matches := make([]Match, 0, len(entries))
	for _, e := range entries {
		distance, ok := rank(query, target(e, opts.Keys))
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Entry:  e.Clone(),
			Joined: e.JoinedTags(),
			Rank:   distance,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Rank < matches[j].Rank
	})
	return matches
}

// rank scores target against each query token independently, so "work
// email" hits an entry whose joined representation is "email work". Every
// token must match somewhere in the target; distances add up, lower is
// better.
func rank(query, target string) (int, bool) {
	total := 0
	for _, token := range strings.Fields(query) {
		distance := fuzzy.RankMatchNormalizedFold(token, target)
		if distance < 0 {
			return 0, false
		}
		total += distance
	}
	return total, true
}

// Strings resolves query against a plain string slice, best match first,
// with the same per-token matching as Entries. Used for call sites that
// search raw values rather than entries.
func Strings(values []string, query string) []string {
	if query == "" {
		out := make([]string, len(values))
		copy(out, values)
		return out
	}

	type scored struct {
		value    string
		distance int
	}
	ranked := make([]scored, 0, len(values))
	for _, v := range values {
		distance, ok := rank(query, v)
		if !ok {
			continue
		}
		ranked = append(ranked, scored{v, distance})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.value
	}
	return out
}

// Resolve runs Entries and reduces the result according to opts: with
// opts.IDs set it returns ranked identifiers, otherwise ranked joined tag
// strings.
func Resolve(entries []document.Entry, query string, opts Options) []string {
	matches := Entries(entries, query, opts)
	if opts.IDs {
		return IDs(matches)
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Joined
	}
	return out
}

// IDs extracts the entry identifiers from ranked matches, preserving order.
func IDs(matches []Match) []string {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.Entry.ID
	}
	return ids
}

// target builds the searchable representation of an entry for the selected
// keys. Tags are the default and are always joined into one string so the
// query can span them.
func target(e document.Entry, keys []string) string {
	if len(keys) == 0 {
		return e.JoinedTags()
	}
	var parts []string
	for _, k := range keys {
		switch k {
		case "tags":
			parts = append(parts, e.JoinedTags())
		case "secret":
			parts = append(parts, e.Secret)
		case "id":
			parts = append(parts, e.ID)
		}
	}
	return strings.Join(parts, " ")
}
