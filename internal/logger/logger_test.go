package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message", "key", "value")
	Error("Test error message")

	logFile := filepath.Join(logDir, "vanguard.log")
	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Errorf("Log file was not created: %s", logFile)
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}
	Debug("Test debug message in debug mode")
}

func TestLoggingWithoutInit(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	// Must not panic when the logger was never initialized.
	Debug("noop")
	Info("noop")
	Warn("noop")
	Error("noop")
}

func TestForUserAddsUserKey(t *testing.T) {
	configDir := t.TempDir()
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	ForUser("op-7").With("kind", "daily_briefing").Warn("generation failed", "stale", true)
	With("season", "s1").Debug("below the configured level")

	data, err := os.ReadFile(filepath.Join(configDir, "logs", "vanguard.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	for _, want := range []string{"generation failed", "user=op-7", "kind=daily_briefing", "stale=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "season=s1") {
		t.Errorf("debug entry written at warn level:\n%s", out)
	}
}

func TestScopedWithoutInit(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	scoped := ForUser("nobody")
	scoped.Debug("noop")
	scoped.Info("noop")
	scoped.Warn("noop")
	scoped.Error("noop")
}
