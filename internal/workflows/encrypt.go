package workflows

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
	"path/filepath"

	ferrors "github.com/PolarWolf314/filestore/internal/errors"
	logger "github.com/PolarWolf314/filestore/internal/logging"
	"github.com/PolarWolf314/filestore/internal/services"
	"github.com/PolarWolf314/filestore/internal/storage"
	"github.com/PolarWolf314/filestore/internal/utils"

	"github.com/awnumar/memguard"
)

const (
	// SecretPrompt and ConfirmPrompt are passed to ReadSecret.
	SecretPrompt  = "Enter password to encrypt: "
	ConfirmPrompt = "Retype password to confirm: "
)

// EncryptSecretOptions configures the encrypt-pw workflow.
type EncryptSecretOptions struct {
	// Keys locates the public and private key files. Both must exist.
	Keys storage.KeyOptions

	// SecretPath is the encrypted file to create. It must not exist yet.
	SecretPath string

	// ReadSecret supplies the plaintext. It is called once with SecretPrompt
	// and, when Confirm is set, again with ConfirmPrompt.
	ReadSecret func(prompt string) ([]byte, error)

	// Confirm requires a second matching entry.
	Confirm bool

	Logger logger.Logger
}

// EncryptSecretResult contains the outcome of an encrypt-pw run.
type EncryptSecretResult struct {
	SecretPath    string
	PublicKeyPath string
}

// EncryptSecret reads a secret and stores it encrypted at opts.SecretPath.
//
// Returns ErrKeysNotFound if either key is missing, ErrSecretExists if the
// target is already present, ErrEmptySecret or ErrSecretMismatch for bad
// input, and ErrPayloadTooLarge if the secret does not fit one RSA block.
// Plaintext buffers are wiped before returning.
func EncryptSecret(ctx context.Context, opts EncryptSecretOptions) (*EncryptSecretResult, error) {
	if opts.ReadSecret == nil {
		return nil, fmt.Errorf("no secret reader configured")
	}

	keys, err := resolveKeys(opts.Keys)
	if err != nil {
		return nil, err
	}

	secretPath, err := utils.ResolvePath(opts.SecretPath)
	if err != nil {
		return nil, err
	}

	exists, err := utils.FileExists(secretPath)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", secretPath, ferrors.ErrSecretExists)
	}

	secret, err := readConfirmedSecret(opts.ReadSecret, opts.Confirm)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(secret)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(secretPath), 0770); err != nil {
		return nil, fmt.Errorf("creating directory for %s: %w", secretPath, err)
	}

	opts.Logger.Debugf("Encrypting secret to %s with %s", secretPath, keys.PublicKey)
	service := services.EncryptedFileStorageService{Keys: keys, Logger: opts.Logger}
	store, err := service.Init(secretPath)
	if err != nil {
		return nil, err
	}

	if err := store.Save(secret); err != nil {
		return nil, err
	}

	return &EncryptSecretResult{
		SecretPath:    secretPath,
		PublicKeyPath: keys.PublicKey,
	}, nil
}

func readConfirmedSecret(read func(string) ([]byte, error), confirm bool) ([]byte, error) {
	first, err := read(SecretPrompt)
	if err != nil {
		return nil, err
	}
	if len(first) == 0 {
		return nil, ferrors.ErrEmptySecret
	}
	if !confirm {
		return first, nil
	}

	second, err := read(ConfirmPrompt)
	if err != nil {
		memguard.WipeBytes(first)
		return nil, err
	}
	defer memguard.WipeBytes(second)

	if subtle.ConstantTimeCompare(first, second) != 1 {
		memguard.WipeBytes(first)
		return nil, ferrors.ErrSecretMismatch
	}
	return first, nil
}

// resolveKeys validates both key paths and checks that the files exist.
func resolveKeys(keys storage.KeyOptions) (storage.KeyOptions, error) {
	var resolved storage.KeyOptions
	var err error

	if keys.PublicKey == "" || keys.PrivateKey == "" {
		return resolved, ferrors.ErrKeysNotFound
	}
	if resolved.PublicKey, err = utils.ResolvePath(keys.PublicKey); err != nil {
		return resolved, err
	}
	if resolved.PrivateKey, err = utils.ResolvePath(keys.PrivateKey); err != nil {
		return resolved, err
	}

	for _, path := range []string{resolved.PublicKey, resolved.PrivateKey} {
		exists, err := utils.FileExists(path)
		if err != nil {
			return resolved, err
		}
		if !exists {
			return resolved, fmt.Errorf("%s: %w", path, ferrors.ErrKeysNotFound)
		}
	}
	return resolved, nil
}
