package storage

import (
	"fmt"

	ferrors "github.com/PolarWolf314/filestore/internal/errors"
	"github.com/PolarWolf314/filestore/internal/secrets"
)

// KeyOptions names the PEM files holding an RSA key pair.
type KeyOptions struct {
	PublicKey  string
	PrivateKey string
}

// EncryptedStorage is a FileStorage whose contents are RSA encrypted at rest.
type EncryptedStorage struct {
	storage *FileStorage
	keys    secrets.KeyPair
}

var _ Storage = (*EncryptedStorage)(nil)

// NewEncrypted returns an EncryptedStorage for path, loading both keys
// immediately. It fails with ErrMissingKeyOption when a key path is empty,
// ErrKeyFileUnreadable when a key file cannot be read and ErrKeyParse when
// its contents are not an RSA key.
func NewEncrypted(path string, keys KeyOptions, opts ...Option) (*EncryptedStorage, error) {
	storage, err := New(path, opts...)
	if err != nil {
		return nil, err
	}

	if keys.PublicKey == "" {
		return nil, fmt.Errorf("%w: public_key", ferrors.ErrMissingKeyOption)
	}
	if keys.PrivateKey == "" {
		return nil, fmt.Errorf("%w: private_key", ferrors.ErrMissingKeyOption)
	}

	pair, err := secrets.LoadKeyPair(keys.PublicKey, keys.PrivateKey)
	if err != nil {
		return nil, err
	}

	return &EncryptedStorage{storage: storage, keys: pair}, nil
}

// Path returns the storage file path.
func (e *EncryptedStorage) Path() string {
	return e.storage.Path()
}

// Get returns the decrypted contents of the storage file.
func (e *EncryptedStorage) Get() ([]byte, error) {
	data, err := e.storage.Get()
	if err != nil {
		return nil, err
	}
	return e.DecryptData(data)
}

// GetAndHold is FileStorage.GetAndHold with decryption. If decryption fails
// the lock is released before returning.
func (e *EncryptedStorage) GetAndHold() ([]byte, error) {
	data, err := e.storage.GetAndHold()
	if err != nil {
		return nil, err
	}
	plaintext, err := e.DecryptData(data)
	if err != nil {
		_ = e.storage.Release()
		return nil, err
	}
	return plaintext, nil
}

// Save encrypts data and writes it to the storage file.
func (e *EncryptedStorage) Save(data []byte) error {
	ciphertext, err := e.EncryptData(data)
	if err != nil {
		return err
	}
	return e.storage.Save(ciphertext)
}

// SaveAndRelease encrypts data and hands it to FileStorage.SaveAndRelease.
// The held lock is released even when encryption fails.
func (e *EncryptedStorage) SaveAndRelease(data []byte) error {
	ciphertext, err := e.EncryptData(data)
	if err != nil {
		_ = e.storage.Release()
		return err
	}
	return e.storage.SaveAndRelease(ciphertext)
}

// Release drops a lock held since GetAndHold.
func (e *EncryptedStorage) Release() error {
	return e.storage.Release()
}

// Delete removes the storage file.
func (e *EncryptedStorage) Delete() error {
	return e.storage.Delete()
}

// MaxPayloadSize is the largest plaintext Save accepts.
func (e *EncryptedStorage) MaxPayloadSize() int {
	return secrets.MaxPayloadSize(e.keys.Public())
}

// EncryptData encrypts data with the public key and base64 encodes it.
func (e *EncryptedStorage) EncryptData(data []byte) ([]byte, error) {
	return e.keys.Seal(data)
}

// DecryptData reverses EncryptData. Empty input is returned unchanged.
func (e *EncryptedStorage) DecryptData(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	plaintext, err := e.keys.Open(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.storage.Path(), err)
	}
	return plaintext, nil
}
