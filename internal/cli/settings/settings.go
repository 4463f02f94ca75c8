package settings

import (
	"fmt"

	"github.com/julianstephens/vanguard/internal/cli"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/validation"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	printSettings(settings)
	return nil
}

// SettingsSetCmd updates the settings named by flags. The result is
// validated as a whole before anything is saved.
type SettingsSetCmd struct {
	Timezone          *string `help:"IANA timezone used for day boundaries, or Local."`
	WindowDays        *int    `help:"Trailing adherence window in days."`
	IntelBatchCeiling *int    `name:"intel-ceiling" help:"Intel batches allowed per day."`
	LLMProvider       *string `name:"llm-provider" help:"Text generation provider (ollama, gemini, mock)."`
	LLMModel          *string `name:"llm-model" help:"Model name passed to the provider."`
	LLMURL            *string `name:"llm-url" help:"Base URL of a self-hosted provider."`
	LLMTimeoutSec     *int    `name:"llm-timeout" help:"Generation timeout in seconds."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !c.apply(&settings) {
		fmt.Println("No changes specified. Use 'vanguard settings show' to view settings or flags to update them.")
		return nil
	}

	if result := validation.Settings(settings); result.HasProblems() {
		fmt.Print(result.FormatReport())
		return result.Err()
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

// apply copies every set flag onto s and reports whether anything changed.
func (c *SettingsSetCmd) apply(s *models.Settings) bool {
	updated := false
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
			updated = true
		}
	}
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
			updated = true
		}
	}

	setString(&s.Timezone, c.Timezone)
	setInt(&s.WindowDays, c.WindowDays)
	setInt(&s.IntelBatchCeiling, c.IntelBatchCeiling)
	setString(&s.LLMProvider, c.LLMProvider)
	setString(&s.LLMModel, c.LLMModel)
	setString(&s.LLMURL, c.LLMURL)
	setInt(&s.LLMTimeoutSec, c.LLMTimeoutSec)
	return updated
}

func printSettings(s models.Settings) {
	fmt.Println("Current Settings:")
	fmt.Printf("  Operator:              %s\n", s.UserID)
	fmt.Printf("  Timezone:              %s\n", s.Timezone)
	fmt.Printf("  Window Days:           %d\n", s.WindowDays)
	fmt.Printf("  Intel Ceiling:         %d per day\n", s.IntelBatchCeiling)
	fmt.Println("\nText Generation:")
	fmt.Printf("  Provider:              %s\n", s.LLMProvider)
	fmt.Printf("  Model:                 %s\n", s.LLMModel)
	fmt.Printf("  URL:                   %s\n", s.LLMURL)
	fmt.Printf("  Timeout:               %d sec\n", s.LLMTimeoutSec)
}
