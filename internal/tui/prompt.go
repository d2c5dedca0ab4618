package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ErrNothingSelected is returned when the user confirms an empty selection.
var ErrNothingSelected = errors.New("no package selected")

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	MultiSelect(title, description string, options []huh.Option[string]) ([]string, error)
}

// HuhPrompter implements Prompter with huh forms.
type HuhPrompter struct{}

// NewPrompter creates a new HuhPrompter.
func NewPrompter() Prompter {
	return &HuhPrompter{}
}

// MultiSelect shows a multi-select prompt.
func (p *HuhPrompter) MultiSelect(title, description string, options []huh.Option[string]) ([]string, error) {
	var selected []string
	field := huh.NewMultiSelect[string]().
		Title(title).
		Description(description).
		Options(options...).
		Filterable(true).
		Value(&selected)

	if err := huh.NewForm(huh.NewGroup(field)).WithTheme(huh.ThemeCharm()).Run(); err != nil {
		return nil, err
	}
	return selected, nil
}

// SelectPackages asks the user to pick package identifiers from ids.
// labels maps an identifier to the text shown next to it.
func SelectPackages(p Prompter, ids []string, labels map[string]string) ([]string, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no packages discovered", ErrNothingSelected)
	}

	options := make([]huh.Option[string], len(ids))
	for i, id := range ids {
		label := id
		if extra := labels[id]; extra != "" {
			label = fmt.Sprintf("%s (%s)", id, extra)
		}
		options[i] = huh.NewOption(label, id)
	}

	selected, err := p.MultiSelect("Packages", "Select the packages to look up", options)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, ErrNothingSelected
	}
	return selected, nil
}
