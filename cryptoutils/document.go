package cryptoutils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// InitVectorLength is the byte length of the initialization vector appended
// to every encrypted document.
const InitVectorLength = 16

// documentKeyLength is the byte length of the derived AES-128 document key.
const documentKeyLength = 16

// DocumentCipher encrypts and decrypts secret-store documents under keys
// derived from distributedly generated key material. It holds no state
// between calls and is safe for concurrent use.
type DocumentCipher struct {
	rand io.Reader
}

// NewDocumentCipher creates a document cipher drawing initialization
// vectors from the given randomness source. Passing nil selects the
// process-wide cryptographically secure source (crypto/rand). Tests may
// inject a deterministic reader.
func NewDocumentCipher(randomSource io.Reader) *DocumentCipher {
	if randomSource == nil {
		randomSource = rand.Reader
	}
	return &DocumentCipher{rand: randomSource}
}

// EncryptDocument encrypts a document with a distributedly generated key.
// The key material must be a 64-byte curve point encoding. The result is
// the ciphertext (same length as the document) followed by a fresh 16-byte
// initialization vector.
func (c *DocumentCipher) EncryptDocument(keyMaterial []byte, document []byte) ([]byte, error) {
	key, err := intoDocumentKey(keyMaterial)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, InitVectorLength)
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return nil, fmt.Errorf("could not generate initialization vector: %w", err)
	}

	encrypted := make([]byte, len(document)+InitVectorLength)
	if err := applyKeystream(key, iv, document, encrypted[:len(document)]); err != nil {
		return nil, err
	}
	copy(encrypted[len(document):], iv)
	return encrypted, nil
}

// DecryptDocument decrypts a document previously encrypted with
// EncryptDocument under the same key material.
func (c *DocumentCipher) DecryptDocument(keyMaterial []byte, encrypted []byte) ([]byte, error) {
	ciphertext, iv, err := splitInitVector(encrypted)
	if err != nil {
		return nil, err
	}

	key, err := intoDocumentKey(keyMaterial)
	if err != nil {
		return nil, err
	}

	document := make([]byte, len(ciphertext))
	if err := applyKeystream(key, iv, ciphertext, document); err != nil {
		return nil, err
	}
	return document, nil
}

// DecryptDocumentWithShadow reconstructs the document key material from a
// requester-held decrypted shadow point, the common point shared by all
// key-server contributions, and the ordered set of shadow coefficients,
// then decrypts the document with it.
func (c *DocumentCipher) DecryptDocumentWithShadow(decryptedShadow, commonPoint Public, shadowCoefficients []Secret, encrypted []byte) ([]byte, error) {
	keyMaterial, err := combineShadowCoefficients(decryptedShadow, commonPoint, shadowCoefficients)
	if err != nil {
		return nil, err
	}
	return c.DecryptDocument(keyMaterial, encrypted)
}

// intoDocumentKey derives the symmetric document key from a distributedly
// generated public key. Only the first 16 bytes of the 64-byte point
// encoding are used; this matches the wire format of existing deployments,
// see the package documentation for the entropy caveat.
func intoDocumentKey(keyMaterial []byte) ([]byte, error) {
	if len(keyMaterial) != PublicLength {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeyLength, len(keyMaterial), PublicLength)
	}
	return keyMaterial[:documentKeyLength], nil
}

// splitInitVector splits an encrypted document into its ciphertext and
// trailing initialization vector.
func splitInitVector(encrypted []byte) (ciphertext, iv []byte, err error) {
	if len(encrypted) < InitVectorLength {
		return nil, nil, fmt.Errorf("%w: %d bytes is shorter than the initialization vector", ErrInvalidCiphertext, len(encrypted))
	}

	boundary := len(encrypted) - InitVectorLength
	return encrypted[:boundary], encrypted[boundary:], nil
}

// applyKeystream runs the AES-128-CTR keystream over src into dst.
// Encryption and decryption are the same operation; dst must be as long as
// src.
func applyKeystream(key, iv, src, dst []byte) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("could not initialize cipher: %w", err)
	}

	cipher.NewCTR(block, iv).XORKeyStream(dst, src)
	return nil
}
