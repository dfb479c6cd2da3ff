package cryptoutils

import "errors"

// Errors returned by document encryption operations. These are sentinel
// values matched with errors.Is; any text wrapped around them is diagnostic
// only and carries no additional semantics.
var (
	// ErrInvalidKeyLength signals document key material that is not a
	// 64-byte curve point encoding.
	ErrInvalidKeyLength = errors.New("invalid public key length")

	// ErrInvalidCiphertext signals an encrypted document shorter than its
	// mandatory trailing initialization vector.
	ErrInvalidCiphertext = errors.New("invalid encrypted data")

	// ErrEncryptionFailed signals a failure during shadow combination
	// arithmetic: a malformed scalar, an invalid point, or an undefined
	// operation. It is intentionally generic; which step failed is not
	// exposed to callers.
	ErrEncryptionFailed = errors.New("encryption error")
)
