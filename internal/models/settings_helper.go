package models

import (
	"fmt"

	"github.com/julianstephens/vanguard/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingUserID:
			settings.UserID = value
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingWindowDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.WindowDays); err != nil {
				return Settings{}, fmt.Errorf("parsing window_days: %w", err)
			}
		case constants.SettingIntelBatchCeiling:
			if _, err := fmt.Sscanf(value, "%d", &settings.IntelBatchCeiling); err != nil {
				return Settings{}, fmt.Errorf("parsing intel_batch_ceiling: %w", err)
			}
		case constants.SettingLLMProvider:
			settings.LLMProvider = value
		case constants.SettingLLMModel:
			settings.LLMModel = value
		case constants.SettingLLMURL:
			settings.LLMURL = value
		case constants.SettingLLMTimeoutSec:
			if _, err := fmt.Sscanf(value, "%d", &settings.LLMTimeoutSec); err != nil {
				return Settings{}, fmt.Errorf("parsing llm_timeout_sec: %w", err)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingUserID:            settings.UserID,
		constants.SettingTimezone:          settings.Timezone,
		constants.SettingWindowDays:        fmt.Sprintf("%d", settings.WindowDays),
		constants.SettingIntelBatchCeiling: fmt.Sprintf("%d", settings.IntelBatchCeiling),
		constants.SettingLLMProvider:       settings.LLMProvider,
		constants.SettingLLMModel:          settings.LLMModel,
		constants.SettingLLMURL:            settings.LLMURL,
		constants.SettingLLMTimeoutSec:     fmt.Sprintf("%d", settings.LLMTimeoutSec),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.WindowDays == 0 {
		settings.WindowDays = constants.DefaultWindowDays
	}
	if settings.IntelBatchCeiling == 0 {
		settings.IntelBatchCeiling = constants.DefaultIntelBatchCeiling
	}
	if settings.LLMProvider == "" {
		settings.LLMProvider = constants.DefaultLLMProvider
	}
	if settings.LLMModel == "" {
		settings.LLMModel = constants.DefaultLLMModel
	}
	if settings.LLMURL == "" && settings.LLMProvider == constants.LLMProviderOllama {
		settings.LLMURL = constants.DefaultLLMURL
	}
	if settings.LLMTimeoutSec == 0 {
		settings.LLMTimeoutSec = constants.DefaultLLMTimeoutSec
	}
}
