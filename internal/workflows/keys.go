package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/filestore/internal/configs"
	ferrors "github.com/PolarWolf314/filestore/internal/errors"
	"github.com/PolarWolf314/filestore/internal/secrets"
	"github.com/PolarWolf314/filestore/internal/utils"
)

// GenerateKeysOptions configures the generate-keys workflow.
type GenerateKeysOptions struct {
	// KeysPath is the directory receiving public.pem and private.pem.
	KeysPath string

	// Bits is the RSA modulus size. Zero means secrets.DefaultKeyBits.
	Bits int
}

// GenerateKeysResult contains the outcome of a key generation.
type GenerateKeysResult struct {
	PublicKeyPath  string
	PrivateKeyPath string
	Bits           int
}

// GenerateKeys creates a new RSA key pair in opts.KeysPath.
//
// Returns ErrKeysExist if either key file is already present. Existing keys
// are never overwritten since secrets encrypted with them would be lost.
func GenerateKeys(ctx context.Context, opts GenerateKeysOptions) (*GenerateKeysResult, error) {
	keysPath, err := utils.ResolvePath(opts.KeysPath)
	if err != nil {
		return nil, err
	}

	bits := opts.Bits
	if bits == 0 {
		bits = secrets.DefaultKeyBits
	}
	if bits < 1024 {
		return nil, fmt.Errorf("key size %d is too small (minimum 1024 bits)", bits)
	}

	keys := configs.KeysInDir(keysPath)
	for _, path := range []string{keys.PublicKey, keys.PrivateKey} {
		exists, err := utils.FileExists(path)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%s: %w", path, ferrors.ErrKeysExist)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := secrets.GenerateRSAKeyPair(keys.PrivateKey, keys.PublicKey, bits); err != nil {
		return nil, fmt.Errorf("generating key pair: %w", err)
	}

	return &GenerateKeysResult{
		PublicKeyPath:  keys.PublicKey,
		PrivateKeyPath: keys.PrivateKey,
		Bits:           bits,
	}, nil
}
