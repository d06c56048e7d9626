package errors

import "errors"

// Storage errors indicate the storage file could not be locked or written.
var (
	// ErrNotWritable indicates neither the storage file nor its directory is writable.
	ErrNotWritable = errors.New("storage file is not writable")

	// ErrLockTimeout indicates a lock could not be acquired within the retry budget.
	ErrLockTimeout = errors.New("timed out waiting for file lock")

	// ErrPartialWrite indicates fewer bytes reached disk than were requested.
	ErrPartialWrite = errors.New("data may be incomplete")

	// ErrLockHeld indicates a lock from GetAndHold is still outstanding on this store.
	ErrLockHeld = errors.New("storage file lock is already held")

	// ErrRenameFailed indicates the temp file could not be renamed over the storage file.
	ErrRenameFailed = errors.New("failed to rename temp file")
)

// Key errors indicate the RSA key pair could not be loaded.
var (
	// ErrMissingKeyOption indicates a public or private key path was not configured.
	ErrMissingKeyOption = errors.New("required key option not set")

	// ErrKeyFileUnreadable indicates a key file could not be opened or read.
	ErrKeyFileUnreadable = errors.New("key file is not readable")

	// ErrKeyParse indicates a key file does not contain a usable RSA key.
	ErrKeyParse = errors.New("unable to parse key")

	// ErrPassphraseRequired indicates an OpenSSH private key is passphrase-protected.
	ErrPassphraseRequired = errors.New("private key is passphrase-protected")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrPayloadTooLarge indicates the plaintext exceeds what one RSA block can hold.
	ErrPayloadTooLarge = errors.New("payload too large for RSA key")

	// ErrEncryptFailed indicates the payload could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt data")

	// ErrDecryptFailed indicates the stored data could not be decoded or decrypted.
	ErrDecryptFailed = errors.New("failed to decrypt data")
)

// Input errors are raised by the command layer before storage is invoked.
var (
	ErrKeysExist      = errors.New("key files already exist")
	ErrKeysNotFound   = errors.New("public/private key not found")
	ErrSecretExists   = errors.New("secret file already exists")
	ErrSecretNotFound = errors.New("secret file not found")
	ErrSecretMismatch = errors.New("entries did not match")
	ErrEmptySecret    = errors.New("secret must not be empty")
	ErrUnexpandedHome = errors.New("path contains an unexpanded home directory")
	ErrNotTerminal    = errors.New("stdin is not a terminal")
)
