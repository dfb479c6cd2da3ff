package cryptoutils

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// PublicLength is the byte length of an uncompressed secp256k1 point
// encoding: the big-endian x coordinate followed by the y coordinate.
const PublicLength = 64

// SecretLength is the byte length of a big-endian scalar modulo the curve
// group order.
const SecretLength = 32

// Public represents a secp256k1 curve point as its 64-byte encoding. It is
// used both for distributedly generated document key material and for
// intermediate shadow points during reconstruction.
type Public []byte

// NewPublic creates a new curve point from raw bytes with length validation.
// The bytes are copied; the caller keeps ownership of data.
func NewPublic(data []byte) (Public, error) {
	if len(data) != PublicLength {
		return nil, fmt.Errorf("invalid public key: got %d bytes, want %d", len(data), PublicLength)
	}

	res := make(Public, PublicLength)
	copy(res, data)
	return res, nil
}

// NewPublicFromHex creates a new curve point from a hex string, with or
// without a 0x prefix.
func NewPublicFromHex(s string) (Public, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid public key hex: %w", err)
	}
	return NewPublic(data)
}

// Validate checks the encoding length.
func (p Public) Validate() error {
	if len(p) != PublicLength {
		return fmt.Errorf("invalid public key: got %d bytes, want %d", len(p), PublicLength)
	}
	return nil
}

// String returns the hex encoding of the point.
func (p Public) String() string {
	return hex.EncodeToString(p)
}

// ECDSA parses the encoding into a curve point, verifying that it actually
// lies on the secp256k1 curve.
func (p Public) ECDSA() (*ecdsa.PublicKey, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// crypto.UnmarshalPubkey expects the uncompressed SEC1 form with the
	// 0x04 prefix and rejects points off the curve.
	buf := make([]byte, PublicLength+1)
	buf[0] = 4
	copy(buf[1:], p)
	return crypto.UnmarshalPubkey(buf)
}

// publicFromCoordinates encodes curve point coordinates into the 64-byte
// wire form.
func publicFromCoordinates(x, y *big.Int) Public {
	res := make(Public, PublicLength)
	x.FillBytes(res[:PublicLength/2])
	y.FillBytes(res[PublicLength/2:])
	return res
}

// Secret represents an integer modulo the secp256k1 group order, encoded as
// 32 big-endian bytes. Shadow coefficients supplied by key servers are
// Secrets.
type Secret []byte

// NewSecret creates a new scalar from raw bytes with length validation.
// The bytes are copied; the caller keeps ownership of data.
func NewSecret(data []byte) (Secret, error) {
	if len(data) != SecretLength {
		return nil, fmt.Errorf("invalid secret: got %d bytes, want %d", len(data), SecretLength)
	}

	res := make(Secret, SecretLength)
	copy(res, data)
	return res, nil
}

// NewSecretFromHex creates a new scalar from a hex string, with or without
// a 0x prefix.
func NewSecretFromHex(s string) (Secret, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid secret hex: %w", err)
	}
	return NewSecret(data)
}

// Validate checks that the scalar is canonical: 32 bytes, nonzero, and
// below the curve group order. A zero or out-of-range coefficient indicates
// a corrupted or malicious key-server contribution.
func (s Secret) Validate() error {
	if len(s) != SecretLength {
		return fmt.Errorf("invalid secret: got %d bytes, want %d", len(s), SecretLength)
	}

	v := s.num()
	if v.Sign() == 0 {
		return errors.New("invalid secret: scalar is zero")
	}
	if v.Cmp(crypto.S256().Params().N) >= 0 {
		return errors.New("invalid secret: scalar is not below the group order")
	}
	return nil
}

// Add returns s + other modulo the curve group order. It fails if either
// operand is out of range or the sum reduces to zero.
func (s Secret) Add(other Secret) (Secret, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := other.Validate(); err != nil {
		return nil, err
	}

	sum := new(big.Int).Add(s.num(), other.num())
	sum.Mod(sum, crypto.S256().Params().N)
	if sum.Sign() == 0 {
		return nil, errors.New("invalid secret: sum of scalars is zero")
	}

	res := make(Secret, SecretLength)
	sum.FillBytes(res)
	return res, nil
}

func (s Secret) num() *big.Int {
	return new(big.Int).SetBytes(s)
}
