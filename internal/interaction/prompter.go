package interaction

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
)

// Prompter implements Interactor on the terminal via promptui.
type Prompter struct{}

// NewPrompter returns a terminal-backed Interactor.
func NewPrompter() *Prompter {
	return &Prompter{}
}

func (p *Prompter) Input(label, initial string) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   initial,
		AllowEdit: true,
	}
	value, err := prompt.Run()
	if err != nil {
		return "", classify(err)
	}
	return value, nil
}

func (p *Prompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if err != nil {
		// promptui reports a declined confirm as ErrAbort; that is an
		// answer, not a failure.
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, classify(err)
	}
	return true, nil
}

func (p *Prompter) Select(label string, options []string) (int, error) {
	prompt := promptui.Select{
		Label: label,
		Items: options,
		Size:  10,
	}
	index, _, err := prompt.Run()
	if err != nil {
		return 0, classify(err)
	}
	return index, nil
}

func (p *Prompter) Form(fields []Field) (map[string]string, error) {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		value, err := p.Input(f.Name, f.Initial)
		if err != nil {
			return nil, err
		}
		values[f.Name] = value
	}
	return values, nil
}

// classify maps prompt dismissal to the cancellation sentinel so callers
// never see promptui error types.
func classify(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return doggoerrors.ErrCancelled
	}
	return fmt.Errorf("prompt failed: %w", err)
}
