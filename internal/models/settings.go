package models

// Settings represents application-wide settings
type Settings struct {
	UserID            string `json:"user_id"`             // local identity handed to every action
	Timezone          string `json:"timezone"`            // IANA timezone name or "Local"
	WindowDays        int    `json:"window_days"`         // trailing adherence window
	IntelBatchCeiling int    `json:"intel_batch_ceiling"` // intel batches allowed per day
	LLMProvider       string `json:"llm_provider"`        // "ollama", "gemini" or "mock"
	LLMModel          string `json:"llm_model"`
	LLMURL            string `json:"llm_url"`
	LLMTimeoutSec     int    `json:"llm_timeout_sec"`
}
