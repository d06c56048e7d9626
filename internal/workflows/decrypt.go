package workflows

import (
	"context"
	"fmt"

	ferrors "github.com/PolarWolf314/filestore/internal/errors"
	logger "github.com/PolarWolf314/filestore/internal/logging"
	"github.com/PolarWolf314/filestore/internal/services"
	"github.com/PolarWolf314/filestore/internal/storage"
	"github.com/PolarWolf314/filestore/internal/utils"
)

// DecryptSecretOptions configures the decrypt workflow.
type DecryptSecretOptions struct {
	Keys       storage.KeyOptions
	SecretPath string
	Logger     logger.Logger
}

// DecryptSecretResult holds the plaintext. Callers should wipe Secret once
// it has been written out.
type DecryptSecretResult struct {
	SecretPath string
	Secret     []byte
}

// DecryptSecret reads and decrypts the file at opts.SecretPath.
//
// Returns ErrSecretNotFound if the file is missing or empty, ErrKeysNotFound
// if either key is missing, and ErrDecryptFailed if the content was not
// produced by this key pair.
func DecryptSecret(ctx context.Context, opts DecryptSecretOptions) (*DecryptSecretResult, error) {
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
	if !exists {
		return nil, fmt.Errorf("%s: %w", secretPath, ferrors.ErrSecretNotFound)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	service := services.EncryptedFileStorageService{Keys: keys, Logger: opts.Logger}
	store, err := service.Init(secretPath)
	if err != nil {
		return nil, err
	}

	secret, err := store.Get()
	if err != nil {
		return nil, err
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%s: %w", secretPath, ferrors.ErrSecretNotFound)
	}

	return &DecryptSecretResult{SecretPath: secretPath, Secret: secret}, nil
}
