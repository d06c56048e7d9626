package services

import (
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/filestore/internal/configs"
	ferrors "github.com/PolarWolf314/filestore/internal/errors"
	logger "github.com/PolarWolf314/filestore/internal/logging"
	"github.com/PolarWolf314/filestore/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageService_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")

	s, err := FileStorageService{}.Init(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	require.NoError(t, s.Save([]byte("plain")))
	got, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, "plain", string(got))
}

func TestEncryptedFileStorageService_Init(t *testing.T) {
	dir := t.TempDir()
	keysDir := filepath.Join(dir, "keys")
	keys := configs.KeysInDir(keysDir)
	require.NoError(t, secrets.GenerateRSAKeyPair(keys.PrivateKey, keys.PublicKey, 0))

	config := &configs.Config{PublicKey: keys.PublicKey, PrivateKey: keys.PrivateKey}
	service := NewEncryptedFileStorageService(config, logger.Logger{})

	s, err := service.Init(filepath.Join(dir, "pw.txt"))
	require.NoError(t, err)
	require.NoError(t, s.Save([]byte("s3cret")))

	// Each Init builds an independent store with its own cache.
	again, err := service.Init(filepath.Join(dir, "pw.txt"))
	require.NoError(t, err)
	got, err := again.Get()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(got))
}

func TestEncryptedFileStorageService_MissingKeys(t *testing.T) {
	service := NewEncryptedFileStorageService(&configs.Config{}, logger.Logger{})

	_, err := service.Init(filepath.Join(t.TempDir(), "pw.txt"))
	assert.ErrorIs(t, err, ferrors.ErrMissingKeyOption)
}
