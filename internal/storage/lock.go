package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	ferrors "github.com/PolarWolf314/filestore/internal/errors"
)

// lockMode selects how the storage file is opened and locked.
type lockMode int

const (
	lockRead lockMode = iota
	lockWrite
	lockReadWrite
)

func (m lockMode) String() string {
	switch m {
	case lockRead:
		return "reading"
	case lockWrite:
		return "writing"
	case lockReadWrite:
		return "read/write"
	default:
		return fmt.Sprintf("lockMode(%d)", int(m))
	}
}

func (m lockMode) exclusive() bool {
	return m != lockRead
}

// acquireLock opens the storage file for mode and locks it, retrying a
// non-blocking attempt up to s.retries times. On success the locked handle is
// kept in s.fh until close.
func (s *FileStorage) acquireLock(mode lockMode) error {
	if s.fh != nil {
		return fmt.Errorf("%s: %w", s.path, ferrors.ErrLockHeld)
	}

	f, err := s.open(mode)
	if err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		err := tryLock(f, mode.exclusive())
		if err == nil {
			current, err := s.isCurrent(f)
			if err != nil {
				_ = unlock(f)
				_ = f.Close()
				return err
			}
			if current {
				s.log.Debugf("Locked %s for %s after %d attempt(s)", s.path, mode, attempt)
				s.fh = f
				return nil
			}

			// The path was renamed over while we waited; the lock is on a
			// file nobody will read again.
			s.log.Debugf("Lock on %s was for a replaced file, reopening", s.path)
			_ = unlock(f)
			_ = f.Close()
			if attempt >= s.retries {
				return fmt.Errorf("unable to lock storage file for %s: %s: %w", mode, s.path, ferrors.ErrLockTimeout)
			}
			if f, err = s.open(mode); err != nil {
				return err
			}
			continue
		}
		if !isContended(err) {
			_ = f.Close()
			return fmt.Errorf("failed to lock storage file for %s: %s: %w", mode, s.path, err)
		}
		if attempt >= s.retries {
			_ = f.Close()
			return fmt.Errorf("unable to lock storage file for %s: %s: %w", mode, s.path, ferrors.ErrLockTimeout)
		}
		s.log.Debugf("Lock on %s busy, retrying (%d/%d)", s.path, attempt, s.retries)
		time.Sleep(s.retryDelay)
	}
}

// open returns a handle suited to mode. Read modes never create the file, so
// a missing file surfaces as fs.ErrNotExist. Write mode creates it with
// FileMode regardless of umask.
func (s *FileStorage) open(mode lockMode) (*os.File, error) {
	switch mode {
	case lockRead:
		return s.openExisting(os.O_RDONLY)
	case lockReadWrite:
		return s.openExisting(os.O_RDWR)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FileMode)
	if errors.Is(err, fs.ErrExist) {
		return s.openExisting(os.O_WRONLY)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage file %s: %w", s.path, err)
	}
	if err := f.Chmod(FileMode); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to set permissions on %s: %w", s.path, err)
	}
	return f, nil
}

func (s *FileStorage) openExisting(flag int) (*os.File, error) {
	f, err := os.OpenFile(s.path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage file %s: %w", s.path, err)
	}
	return f, nil
}

// isCurrent reports whether f is still the file at s.path. A missing path
// counts as replaced.
func (s *FileStorage) isCurrent(f *os.File) (bool, error) {
	held, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat storage file %s: %w", s.path, err)
	}
	onDisk, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat storage file %s: %w", s.path, err)
	}
	return os.SameFile(held, onDisk), nil
}

// close unlocks and closes the held handle. No handle is a no-op.
func (s *FileStorage) close() error {
	if s.fh == nil {
		return nil
	}
	f := s.fh
	s.fh = nil

	unlockErr := unlock(f)
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close storage file %s: %w", s.path, err)
	}
	if unlockErr != nil {
		return fmt.Errorf("failed to unlock storage file %s: %w", s.path, unlockErr)
	}
	return nil
}
