package interaction

// Field is one entry in a form prompt: a name and the value to pre-fill.
type Field struct {
	Name    string
	Initial string
}

// Interactor is the user-interaction capability: every prompt the vault
// workflows need, abstracted away from terminal mechanics. Implementations
// map user dismissal (Ctrl-C, EOF) to errors.ErrCancelled; a declined
// confirm is a normal false result, not an error.
type Interactor interface {
	// Input asks for a line of freeform text, pre-filled with initial.
	Input(label, initial string) (string, error)

	// Confirm asks a yes/no question and reports the answer.
	Confirm(label string) (bool, error)

	// Select presents options and returns the index of the chosen one.
	Select(label string, options []string) (int, error)

	// Form presents every field pre-filled and returns the edited values
	// keyed by field name.
	Form(fields []Field) (map[string]string, error)
}
