package core

import (
	"errors"
	"fmt"

	"github.com/nimble-ui/core/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// Encodable is implemented by props types that encode themselves to a map.
type Encodable = encoding.Encodable

// Decodable is implemented by props types that decode themselves from a map.
type Decodable = encoding.Decodable

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// wrapEncodingError maps encoding package errors onto core sentinels,
// keeping the original message.
func wrapEncodingError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrInvalidFormat):
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	case errors.Is(err, encoding.ErrDecryptFailed):
		return fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}
	return err
}
