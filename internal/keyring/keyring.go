package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/vanguard/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the entry.
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Entry names one secret held under the application's keyring service.
type Entry string

const (
	ConnectionString Entry = constants.DefaultKeyringUser
	LLMAPIKey        Entry = constants.LLMKeyringUser
)

func (e Entry) label() string {
	if e == LLMAPIKey {
		return "LLM API key"
	}
	return "connection string"
}

// Get retrieves the secret stored under e.
func Get(e Entry) (string, error) {
	value, err := keyring.Get(constants.AppName, string(e))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

// Set stores value under e, replacing any previous secret.
func Set(e Entry, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", e.label())
	}
	if err := keyring.Set(constants.AppName, string(e), value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", e.label(), err)
	}
	return nil
}

// Delete removes the secret stored under e.
func Delete(e Entry) error {
	err := keyring.Delete(constants.AppName, string(e))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", e.label(), err)
	}
	return nil
}

func GetConnectionString() (string, error) { return Get(ConnectionString) }

func SetConnectionString(connStr string) error { return Set(ConnectionString, connStr) }

func DeleteConnectionString() error { return Delete(ConnectionString) }

// IsAvailable is a best-effort probe: a not-found answer still means the
// keyring service responded.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
