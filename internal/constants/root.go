package constants

const (
	AppName            = "vanguard"
	DefaultKeyringUser = "database-connection"
	LLMKeyringUser     = "llm-api-key"
	DefaultConfigPath  = "~/.config/vanguard/vanguard.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Environment variables
	EnvDBConnection = "VANGUARD_DB_CONNECTION"
	EnvLLMAPIKey    = "VANGUARD_LLM_API_KEY"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "vanguard-"
	BackupFileSuffix = ".db"
)
