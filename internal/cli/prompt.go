package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

var errBlank = errors.New("a value is required")

// Prompter asks for values missing from the command line.
type Prompter interface {
	Input(title string) (string, error)
	Confirm(title string, fallback bool) (bool, error)
}

type huhPrompter struct{}

func (huhPrompter) Input(title string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		Value(&value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errBlank
			}
			return nil
		}).
		Run()
	if err != nil {
		return "", err
	}
	return value, nil
}

func (huhPrompter) Confirm(title string, fallback bool) (bool, error) {
	value := fallback
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value).
		Run()
	if err != nil {
		return false, err
	}
	return value, nil
}

// aborted reports whether err came from the user dismissing a prompt.
func aborted(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}
