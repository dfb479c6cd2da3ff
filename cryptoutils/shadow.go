package cryptoutils

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// combineShadowCoefficients reconstructs document key material from partial
// decryption results. The coefficients are summed modulo the curve group
// order in the order given, the common point is multiplied by the sum, and
// the product is added to the decrypted shadow point. The 64-byte encoding
// of the resulting point is the key material.
//
// The step order is fixed by the distributed decryption protocol: the sum
// must be complete before the multiplication, and the product is consumed
// exactly once by the addition. Inputs are caller-owned and never mutated.
// Any arithmetic failure aborts the combination with ErrEncryptionFailed;
// there is nothing to retry, since a failure means a corrupted input or a
// misbehaving key server.
func combineShadowCoefficients(decryptedShadow, commonPoint Public, shadowCoefficients []Secret) (Public, error) {
	if len(shadowCoefficients) == 0 {
		return nil, fmt.Errorf("%w: empty shadow coefficient set", ErrEncryptionFailed)
	}

	coefficientsSum := shadowCoefficients[0]
	for _, coefficient := range shadowCoefficients[1:] {
		var err error
		coefficientsSum, err = coefficientsSum.Add(coefficient)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
		}
	}
	// A single-element set skips Add entirely; the seed coefficient still
	// has to be a canonical scalar before it multiplies the common point.
	if err := coefficientsSum.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	common, err := commonPoint.ECDSA()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	shadow, err := decryptedShadow.ECDSA()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	curve := crypto.S256()
	mulX, mulY := curve.ScalarMult(common.X, common.Y, coefficientsSum)
	resX, resY := curve.Add(shadow.X, shadow.Y, mulX, mulY)
	if resX.Sign() == 0 && resY.Sign() == 0 {
		return nil, fmt.Errorf("%w: combined point is the identity", ErrEncryptionFailed)
	}

	return publicFromCoordinates(resX, resY), nil
}
