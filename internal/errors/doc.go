// Package errors provides typed error values for filestore.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Storage errors: locking and writing the storage file (ErrLockTimeout, ErrPartialWrite)
//   - Key errors: loading the RSA key pair (ErrMissingKeyOption, ErrKeyParse)
//   - Crypto errors: encrypting or decrypting the payload (ErrPayloadTooLarge, ErrDecryptFailed)
//   - Input errors: values rejected by the CLI before storage is touched (ErrSecretMismatch)
//
// # Usage
//
// Wrap errors with the path or operation that failed:
//
//	return fmt.Errorf("unable to lock storage file for %s: %s: %w", mode, path, errors.ErrLockTimeout)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, ferrors.ErrLockTimeout) {
//	    // Tell the user another process is holding the file
//	}
package errors
