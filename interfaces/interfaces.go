// Package interfaces defines the contract between the document encryption
// core and the serving layer, without implementation details.
package interfaces

import (
	"github.com/ruteri/secretstore-backend/cryptoutils"
)

// Public is a secp256k1 curve point in its 64-byte encoding.
type Public = cryptoutils.Public

// Secret is a scalar modulo the curve group order in its 32-byte encoding.
type Secret = cryptoutils.Secret

// DocumentEncryptor is the document encryption core consumed by the API
// layer. Implementations hold no per-call state and are safe for concurrent
// use.
type DocumentEncryptor interface {
	// EncryptDocument encrypts a document under a key derived from the
	// 64-byte distributed key material and returns ciphertext followed by
	// a fresh 16-byte initialization vector.
	EncryptDocument(keyMaterial []byte, document []byte) ([]byte, error)

	// DecryptDocument reverses EncryptDocument under the same key material.
	DecryptDocument(keyMaterial []byte, encrypted []byte) ([]byte, error)

	// DecryptDocumentWithShadow reconstructs the key material from partial
	// decryption contributions before decrypting.
	DecryptDocumentWithShadow(decryptedShadow, commonPoint Public, shadowCoefficients []Secret, encrypted []byte) ([]byte, error)
}
