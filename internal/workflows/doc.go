// Package workflows provides the orchestration behind filestore's commands.
//
// Each workflow takes a context and an options struct and returns a result
// struct, leaving flag parsing, spinners and output formatting to cmd/.
//
//   - GenerateKeys: creates public.pem/private.pem in a key directory
//   - EncryptSecret: reads a secret and writes it as an encrypted file
//   - DecryptSecret: reads an encrypted file back to plaintext
//
// Workflows return sentinel errors from internal/errors so the CLI can pick
// a message with errors.Is:
//
//	result, err := workflows.EncryptSecret(ctx, opts)
//	if errors.Is(err, ferrors.ErrSecretExists) {
//	    // tell the user to remove the old file first
//	}
package workflows
