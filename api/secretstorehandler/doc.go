// Package secretstorehandler exposes the document encryption core over
// HTTP for the secret-store RPC gateway.
//
// The gateway speaks JSON with 0x-prefixed hex byte fields, mirroring the
// encoding of the surrounding secret-store protocol:
//
//	POST /api/v1/document/encrypt
//	    {"key": "0x...64 bytes...", "document": "0x..."}
//	    -> {"encrypted": "0x..."}
//
//	POST /api/v1/document/decrypt
//	    {"key": "0x...", "encrypted": "0x..."}
//	    -> {"document": "0x..."}
//
//	POST /api/v1/document/shadow-decrypt
//	    {"decrypted_secret": "0x...64 bytes...",
//	     "common_point": "0x...64 bytes...",
//	     "decrypt_shadows": ["0x...32 bytes...", ...],
//	     "encrypted": "0x..."}
//	    -> {"document": "0x..."}
//
// Parameter validation failures (wrong key length, missing IV suffix,
// malformed hex) return 400 with a descriptive message. Failures inside
// shadow combination also return 400 but with a deliberately generic
// "encryption error" body.
//
// The package also provides Client, a typed client for the same API.
package secretstorehandler
