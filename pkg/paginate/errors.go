package paginate

import (
	"errors"
	"fmt"
)

// Common errors returned by the reducer.
var (
	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("invalid pagination config")

	// ErrKey is matched by every *KeyError.
	ErrKey = errors.New("invalid pagination key")
)

// ConfigError is returned by New when the reducer configuration is rejected.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("pagination config %s: %s", e.Field, e.Reason)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// KeyError is returned at dispatch time when the key function produces no
// key for a recognized action.
type KeyError struct {
	ActionType string
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	return fmt.Sprintf("pagination key for action %q: expected key to be a string", e.ActionType)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *KeyError) Unwrap() error {
	return ErrKey
}
