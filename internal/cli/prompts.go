package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/suggest"
	"github.com/julianstephens/moodlit/internal/validation"
)

const otherMood = "__other__"

// Prompts are package variables so tests can answer them.
var (
	promptMood    = huhPromptMood
	confirmAction = huhConfirm
	runSpinner    = huhSpinner
)

func huhPromptMood() (string, error) {
	choice := ""
	options := make([]huh.Option[string], 0, len(suggest.Moods())+1)
	for _, m := range suggest.Moods() {
		options = append(options, huh.NewOption(string(m), string(m)))
	}
	options = append(options, huh.NewOption("Something else...", otherMood))

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How are you feeling right now?").
				Options(options...).
				Value(&choice),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	if err != nil {
		return "", err
	}
	if choice != otherMood {
		return choice, nil
	}

	custom := ""
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Describe your mood").
				Placeholder("e.g. restless, overwhelmed").
				CharLimit(constants.MaxMoodLength).
				Value(&custom).
				Validate(func(s string) error {
					_, err := validation.Mood(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	if err != nil {
		return "", err
	}
	return custom, nil
}

func huhConfirm(title string) (bool, error) {
	confirmed := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeDracula()).Run()
	return confirmed, err
}

func huhSpinner(ctx context.Context, title string, action func()) error {
	if err := spinner.New().Title(title).Context(ctx).Action(action).Run(); err != nil {
		return fmt.Errorf("spinner failed: %w", err)
	}
	return nil
}
