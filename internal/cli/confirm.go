package cli

import "github.com/charmbracelet/huh"

// Confirm asks a yes/no question on the terminal. assumeYes skips the prompt.
func Confirm(title, description string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeDracula()).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
