// Package services constructs storage objects from configuration so callers
// only deal in paths.
package services

import (
	"github.com/PolarWolf314/filestore/internal/configs"
	logger "github.com/PolarWolf314/filestore/internal/logging"
	"github.com/PolarWolf314/filestore/internal/storage"
)

// FileStorageService opens plain locked storage.
type FileStorageService struct {
	Logger logger.Logger
}

// Init returns a FileStorage for path.
func (s FileStorageService) Init(path string) (*storage.FileStorage, error) {
	return storage.New(path, storage.WithLogger(s.Logger))
}

// EncryptedFileStorageService opens encrypted storage with a fixed key pair.
type EncryptedFileStorageService struct {
	Keys   storage.KeyOptions
	Logger logger.Logger
}

// NewEncryptedFileStorageService takes its key paths from config.
func NewEncryptedFileStorageService(config *configs.Config, log logger.Logger) EncryptedFileStorageService {
	return EncryptedFileStorageService{Keys: config.KeyOptions(), Logger: log}
}

// Init returns an EncryptedStorage for path.
func (s EncryptedFileStorageService) Init(path string) (*storage.EncryptedStorage, error) {
	return storage.NewEncrypted(path, s.Keys, storage.WithLogger(s.Logger))
}
