// Package errors provides typed error values for the doggo CLI.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Lookup: search found nothing (ErrNotFound)
//   - Cancellation: the user declined a prompt (ErrDeleteCancelled)
//   - Validation: a required argument is missing (ErrNoKeyIdentifier)
//   - Vault state: vault or key files missing/already present (ErrVaultNotFound)
//
// # Expected vs. system errors
//
// Everything defined here is an "expected" domain outcome: commands surface
// it as a concise one-line message and exit cleanly. Any error that does not
// classify via Expected() (a decryption failure, a corrupt vault, an I/O
// fault) is a system error and propagates to the top with full detail and a
// non-zero exit. The two channels are never merged: commands check
// Expected() before deciding how to report.
//
//	doc, err := mgr.Load(path, keyID)
//	if doggoerrors.Expected(err) {
//	    // one-line ✗ message, return nil
//	}
//	if err != nil {
//	    return err // fatal, full detail
//	}
package errors
