// Package secrets provides the RSA key handling behind encrypted storage.
//
// # Key Material
//
// A KeyPair is loaded once from two PEM files and is immutable afterwards:
//   - Public keys: PKIX ("PUBLIC KEY") or PKCS#1 ("RSA PUBLIC KEY")
//   - Private keys: PKCS#1, PKCS#8, or unencrypted OpenSSH
//
// Read failures wrap errors.ErrKeyFileUnreadable and parse failures wrap
// errors.ErrKeyParse.
//
// # Encryption
//
// Payloads are encrypted directly with RSA PKCS#1 v1.5 and base64 encoded.
// There is no hybrid scheme, so a payload must fit in one block: at most
// 245 bytes for the default 2048-bit key. Larger payloads are rejected with
// errors.ErrPayloadTooLarge before any encryption is attempted.
//
// # Key Generation
//
// GenerateRSAKeyPair writes a fresh pair as private.pem/public.pem style
// files with mode 0660, matching what the storage:generate-keys command
// produces.
package secrets
