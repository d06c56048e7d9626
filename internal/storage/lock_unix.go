//go:build unix

package storage

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// flock stays with the old file when it is renamed over; waiters notice the
// swap and reopen.
var releaseBeforeRename = false

// tryLock applies a non-blocking flock to f.
func tryLock(f *os.File, exclusive bool) error {
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}
	return unix.Flock(int(f.Fd()), how|unix.LOCK_NB)
}

func unlock(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}

// isContended reports whether a tryLock failure is worth retrying.
func isContended(err error) bool {
	return errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EINTR)
}

func writable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
