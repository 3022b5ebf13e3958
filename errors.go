package core

import "errors"

// Sentinel errors for rendering and transport.
var (
	ErrNotFound         = errors.New("core: component not found")
	ErrDecryptFailed    = errors.New("core: props decryption failed")
	ErrSignatureInvalid = errors.New("core: props signature verification failed")
	ErrInvalidFormat    = errors.New("core: invalid props format")
	ErrRenderFailed     = errors.New("core: render failed")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecodeError checks if err came from decoding transported props.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrInvalidFormat)
}
