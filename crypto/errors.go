package crypto

import (
	"errors"
	"fmt"
)

// ErrEmptyKey is returned by every engine when there is no usable key material
var ErrEmptyKey = errors.New("key cannot be empty")

// ValidateKey validates a key for the byte engine, any non-empty string is accepted
func ValidateKey(key string) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	return nil
}

// ValidateTextKey validates a key for the text engine, it must contain at least one letter
func ValidateTextKey(key string) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if LettersOnlyUpper(key) == "" {
		return fmt.Errorf("%w: key %q has no letters A-Z", ErrEmptyKey, key)
	}
	return nil
}
