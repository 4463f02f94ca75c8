package constants

const (
	SettingUserID            = "user_id"
	SettingTimezone          = "timezone"
	SettingWindowDays        = "window_days"
	SettingIntelBatchCeiling = "intel_batch_ceiling"
	SettingLLMProvider       = "llm_provider"
	SettingLLMModel          = "llm_model"
	SettingLLMURL            = "llm_url"
	SettingLLMTimeoutSec     = "llm_timeout_sec"

	// Default Settings Values
	DefaultTimezone      = "Local" // Use system local timezone by default
	DefaultLLMProvider   = "ollama"
	DefaultLLMModel      = "llama3.2"
	DefaultLLMURL        = "http://localhost:11434"
	DefaultLLMTimeoutSec = 60

	LLMProviderOllama = "ollama"
	LLMProviderGemini = "gemini"
	LLMProviderMock   = "mock"
)
