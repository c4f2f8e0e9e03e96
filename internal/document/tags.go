package document

import "strings"

// SplitTags normalizes raw user input into a tag sequence. Tags may be
// separated by whitespace, commas, or both; empty fragments are dropped.
func SplitTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	// FieldsFunc returns nil for all-separator input; callers rely on a
	// non-nil sequence.
	tags := make([]string, 0, len(fields))
	return append(tags, fields...)
}

// JoinTags renders a tag sequence as a single searchable, human-readable
// string. SplitTags(JoinTags(tags)) == tags as long as no individual tag
// contains a separator character.
func JoinTags(tags []string) string {
	return strings.Join(tags, " ")
}
