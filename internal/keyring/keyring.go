package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitflow/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Account names under the application's keyring service.
const (
	ConnectionAccount = constants.DefaultKeyringUser
	JWTSecretAccount  = "jwt-secret"
)

func get(account string) (string, error) {
	v, err := keyring.Get(constants.AppName, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func set(account, value, what string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if err := keyring.Set(constants.AppName, account, value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", what, err)
	}
	return nil
}

func del(account, what string) error {
	if err := keyring.Delete(constants.AppName, account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", what, err)
	}
	return nil
}

// GetConnectionString retrieves the PostgreSQL connection string.
// Returns ErrNotFound if nothing is stored.
func GetConnectionString() (string, error) { return get(ConnectionAccount) }

// SetConnectionString stores the PostgreSQL connection string.
func SetConnectionString(connStr string) error {
	return set(ConnectionAccount, connStr, "connection string")
}

// DeleteConnectionString removes the PostgreSQL connection string.
func DeleteConnectionString() error { return del(ConnectionAccount, "connection string") }

// GetJWTSecret retrieves the API token signing secret.
func GetJWTSecret() (string, error) { return get(JWTSecretAccount) }

// SetJWTSecret stores the API token signing secret.
func SetJWTSecret(secret string) error { return set(JWTSecretAccount, secret, "JWT secret") }

// DeleteJWTSecret removes the API token signing secret.
func DeleteJWTSecret() error { return del(JWTSecretAccount, "JWT secret") }

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
