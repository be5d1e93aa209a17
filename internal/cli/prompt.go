package cli

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// prompter asks the user for values the flags did not provide
type prompter interface {
	Ask(label string, secret bool, validate func(string) error) (string, error)
	Choose(label string, items []string) (int, error)
}

type terminalPrompter struct{}

func (terminalPrompter) Ask(label string, secret bool, validate func(string) error) (string, error) {
	p := promptui.Prompt{Label: label, Validate: validate}
	if secret {
		p.Mask = '*'
	}
	v, err := p.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", errCancelled
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	return v, nil
}

func (terminalPrompter) Choose(label string, items []string) (int, error) {
	s := promptui.Select{Label: label, Items: items}
	i, _, err := s.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return 0, errCancelled
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", label, err)
	}
	return i, nil
}

var errCancelled = errors.New("cancelled")

// valueOr returns flag when set, otherwise asks for it
func valueOr(p prompter, flag, label string, secret bool, validate func(string) error) (string, error) {
	if flag != "" {
		return flag, nil
	}
	return p.Ask(label, secret, validate)
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s es obligatorio", field)
		}
		return nil
	}
}
