// Package interaction abstracts the prompts the vault workflows suspend
// on: freeform text input, yes/no confirmation, single-select lists, and
// multi-field forms.
//
// There are no timeouts: a prompt blocks until the user answers, and
// cancellation is purely user-driven. Dismissing a prompt (Ctrl-C, EOF)
// surfaces as errors.ErrCancelled, which the workflows treat as a normal
// outcome rather than a fault. Tests substitute a scripted Interactor.
package interaction
