package errors

import "errors"

// Lookup errors indicate a search resolved to nothing actionable.
var (
	// ErrNotFound indicates no secret matched the search query.
	ErrNotFound = errors.New("no result found")
)

// Cancellation errors indicate the user declined a prompt. They are normal
// outcomes, not faults.
var (
	// ErrCancelled indicates a prompt was dismissed or interrupted.
	ErrCancelled = errors.New("cancelled")

	// ErrDeleteCancelled indicates a delete confirmation was declined.
	ErrDeleteCancelled = errors.New("delete cancelled")

	// ErrUpdateCancelled indicates an update prompt was dismissed.
	ErrUpdateCancelled = errors.New("update cancelled")

	// ErrAddCancelled indicates an add prompt was dismissed.
	ErrAddCancelled = errors.New("add cancelled")
)

// Validation errors indicate a required argument or value is missing.
var (
	// ErrNoKeyIdentifier indicates no encryption key identifier was supplied.
	ErrNoKeyIdentifier = errors.New("no key identifier supplied")

	// ErrNoVaultPath indicates no vault file path was supplied.
	ErrNoVaultPath = errors.New("no vault path supplied")

	// ErrNoDocument indicates a nil vault document was supplied.
	ErrNoDocument = errors.New("no vault document supplied")

	// ErrEmptyTags indicates a secret was given no tags. An untagged secret
	// cannot be found by search, so this is rejected at the edge.
	ErrEmptyTags = errors.New("at least one tag is required")
)

// Vault state errors indicate issues with the vault file or keys on disk.
var (
	// ErrVaultNotFound indicates the vault file does not exist.
	ErrVaultNotFound = errors.New("vault file not found")

	// ErrVaultExists indicates a vault file already exists at the target path.
	ErrVaultExists = errors.New("vault file already exists")

	// ErrKeyNotFound indicates the named encryption key could not be located.
	ErrKeyNotFound = errors.New("encryption key not found")

	// ErrKeyExists indicates a key file already exists under that identifier.
	ErrKeyExists = errors.New("encryption key already exists")
)

// ErrLineageMismatch indicates two vault documents do not share a common
// origin and cannot be merged.
var ErrLineageMismatch = errors.New("vaults do not share a common lineage")

// expected is the closed set of domain outcomes that commands report as a
// one-line message. Anything outside this set is a system error and
// propagates with full detail.
var expected = []error{
	ErrNotFound,
	ErrCancelled,
	ErrDeleteCancelled,
	ErrUpdateCancelled,
	ErrAddCancelled,
	ErrNoKeyIdentifier,
	ErrNoVaultPath,
	ErrNoDocument,
	ErrEmptyTags,
	ErrVaultNotFound,
	ErrVaultExists,
	ErrKeyNotFound,
	ErrKeyExists,
	ErrLineageMismatch,
}

// Expected reports whether err is a classified domain outcome (validation,
// not-found, or user cancellation) rather than a system fault.
func Expected(err error) bool {
	for _, e := range expected {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
