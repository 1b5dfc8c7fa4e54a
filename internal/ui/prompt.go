package ui

import (
	"github.com/charmbracelet/huh"
)

const maxPromptHeight = 15

// MultiSelect asks the user to pick any number of paths. Nothing is
// preselected; an empty result is not an error.
func MultiSelect(message string, paths []string) ([]string, error) {
	var selected []string
	opts := make([]huh.Option[string], len(paths))
	for i, p := range paths {
		opts[i] = huh.NewOption(DisplayPath(p), p)
	}

	field := huh.NewMultiSelect[string]().
		Title(message).
		Description("space toggles, / filters, enter accepts").
		Options(opts...).
		Filterable(true).
		Height(min(len(paths)+2, maxPromptHeight)).
		Value(&selected)

	return selected, runForm(field)
}

// Confirm asks a yes/no question that defaults to no.
func Confirm(message string) (bool, error) {
	var confirmed bool
	field := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	return confirmed, runForm(field)
}

func runForm(fields ...huh.Field) error {
	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(huh.ThemeBase()).
		Run()
}
