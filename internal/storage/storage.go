package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	ferrors "github.com/PolarWolf314/filestore/internal/errors"
	logger "github.com/PolarWolf314/filestore/internal/logging"
)

const (
	// MaxLockRetries is the default number of lock attempts before giving up.
	MaxLockRetries = 10

	// LockRetryDelay is the default pause between lock attempts.
	LockRetryDelay = 10 * time.Millisecond

	// FileMode is applied to storage and temp files on creation.
	FileMode os.FileMode = 0660
)

// Storage is implemented by both FileStorage and EncryptedStorage.
type Storage interface {
	Get() ([]byte, error)
	GetAndHold() ([]byte, error)
	Save(data []byte) error
	SaveAndRelease(data []byte) error
	Release() error
	Delete() error
	Path() string
}

var _ Storage = (*FileStorage)(nil)

// FileStorage stores a single blob at a fixed path.
type FileStorage struct {
	path string

	// data caches the last bytes read or written; nil means nothing cached.
	data []byte

	// fh is the open, locked handle while a lock is held.
	fh *os.File

	retries    int
	retryDelay time.Duration
	log        logger.Logger
}

// Option configures a FileStorage.
type Option func(*FileStorage)

// WithLogger sets the logger used for lock diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStorage) { s.log = l }
}

// WithRetries overrides MaxLockRetries. Values below 1 are treated as 1.
func WithRetries(n int) Option {
	return func(s *FileStorage) {
		if n < 1 {
			n = 1
		}
		s.retries = n
	}
}

// WithRetryDelay overrides LockRetryDelay.
func WithRetryDelay(d time.Duration) Option {
	return func(s *FileStorage) { s.retryDelay = d }
}

// New returns a FileStorage for path. It fails with ErrNotWritable when
// neither the file nor its parent directory is writable.
func New(path string, opts ...Option) (*FileStorage, error) {
	s := &FileStorage{
		path:       path,
		retries:    MaxLockRetries,
		retryDelay: LockRetryDelay,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !writable(s.path) && !writable(filepath.Dir(s.path)) {
		return nil, fmt.Errorf("storage file %s: %w", s.path, ferrors.ErrNotWritable)
	}

	return s, nil
}

// Path returns the storage file path.
func (s *FileStorage) Path() string {
	return s.path
}

// Get returns the contents of the storage file, reading it under a shared
// lock unless a cached copy is available. A missing file yields nil.
func (s *FileStorage) Get() (data []byte, err error) {
	if s.data != nil {
		return bytes.Clone(s.data), nil
	}

	if err := s.acquireLock(lockRead); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer func() {
		if closeErr := s.close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	data, err = io.ReadAll(s.fh)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file %s: %w", s.path, err)
	}

	s.data = data
	return bytes.Clone(data), nil
}

// GetAndHold reads the storage file under an exclusive lock and leaves the
// lock in place. The caller must follow up with SaveAndRelease or Release.
// A missing file yields nil and no lock is taken.
func (s *FileStorage) GetAndHold() ([]byte, error) {
	if err := s.acquireLock(lockReadWrite); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	data, err := io.ReadAll(s.fh)
	if err != nil {
		_ = s.close()
		return nil, fmt.Errorf("failed to read storage file %s: %w", s.path, err)
	}

	s.data = data
	return bytes.Clone(data), nil
}

// Save replaces the contents of the storage file under an exclusive lock,
// creating the file with FileMode if needed.
func (s *FileStorage) Save(data []byte) (err error) {
	if err := s.acquireLock(lockWrite); err != nil {
		return err
	}
	defer func() {
		if closeErr := s.close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	// Truncate only once the lock is ours so readers never see an empty file.
	if err := s.fh.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate storage file %s: %w", s.path, err)
	}
	if err := writeAll(s.fh, data); err != nil {
		return err
	}
	if err := s.fh.Sync(); err != nil {
		return fmt.Errorf("failed to sync storage file %s: %w", s.path, err)
	}

	s.data = bytes.Clone(data)
	return nil
}

// SaveAndRelease writes data to a temp file beside the storage file, renames
// it into place and then drops the lock held since GetAndHold. The lock and
// handle are released on every path, including failures.
func (s *FileStorage) SaveAndRelease(data []byte) (err error) {
	defer func() {
		if closeErr := s.close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	tmp, err := s.openTempFile()
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := writeAll(tmp, data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file %s: %w", tmpPath, err)
	}

	if releaseBeforeRename {
		if err := s.close(); err != nil {
			return err
		}
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("%s -> %s: %w: %v", tmpPath, s.path, ferrors.ErrRenameFailed, err)
	}
	renamed = true

	s.log.Debugf("Replaced %s and released lock", s.path)
	s.data = bytes.Clone(data)
	return nil
}

// Release drops a lock held since GetAndHold without writing. It is a no-op
// when no lock is held.
func (s *FileStorage) Release() error {
	return s.close()
}

// Delete clears the cache and removes the storage file. It takes no lock.
func (s *FileStorage) Delete() error {
	s.data = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete storage file %s: %w", s.path, err)
	}
	return nil
}

// openTempFile creates a uniquely named file next to the storage file so the
// final rename stays on one filesystem.
func (s *FileStorage) openTempFile() (*os.File, error) {
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	if err := tmp.Chmod(FileMode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to set permissions on temp file %s: %w", tmp.Name(), err)
	}
	return tmp, nil
}

// writeAll writes data and verifies the full length reached the file.
func writeAll(f *os.File, data []byte) error {
	n, err := f.Write(data)
	if n != len(data) {
		return fmt.Errorf("wrote %d of %d bytes to %s: %w", n, len(data), f.Name(), ferrors.ErrPartialWrite)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Name(), err)
	}
	return nil
}
