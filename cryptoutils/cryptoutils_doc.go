// Package cryptoutils implements document encryption for the distributed
// secret store.
//
// A document is encrypted once under a symmetric key derived from
// distributedly generated secp256k1 key material. The private key
// corresponding to that material is never assembled in one place: it is
// split among independent key servers, and decryption is only possible
// after a threshold of them return partial ("shadow") decryption
// contributions that the requester combines locally.
//
// The package covers exactly that combination and encryption logic:
//
//   - Deriving the symmetric document key from a 64-byte point encoding
//   - AES-128-CTR encryption and decryption of opaque documents
//   - Reconstructing key material from a decrypted shadow point, a common
//     point, and per-server shadow coefficients
//
// # Encrypted Document Format
//
//	[ciphertext (same length as the document)][initialization vector (16 bytes)]
//
// The initialization vector is freshly generated for every encryption call
// and never reused. The ciphertext is exactly as long as the document; CTR
// mode uses no padding.
//
// # Known Limitations
//
// The format is fixed by existing secret-store deployments and both of the
// following properties are preserved deliberately rather than fixed:
//
//   - Ciphertext is not authenticated. No integrity tag is produced or
//     verified; tampering is not detected at this layer.
//   - The document key is the first 16 bytes of the 64-byte point encoding,
//     i.e. only half of the point's 32-byte x coordinate. This may reduce
//     effective key entropy, but changing the derivation would make every
//     previously encrypted document unrecoverable.
//
// # Shadow Decryption
//
// Key servers never see the reconstructed key. Each returns a shadow
// coefficient; the requester holds one decrypted shadow point and the
// common point shared by all contributions. Reconstruction sums the
// coefficients modulo the curve group order, multiplies the common point by
// the sum, and adds the result to the decrypted shadow point. The resulting
// point encoding is the document key material.
//
// All operations are pure, retain no state between calls, and are safe for
// concurrent use. The only external resource is the randomness source used
// for initialization vectors, injectable for tests via NewDocumentCipher.
package cryptoutils
