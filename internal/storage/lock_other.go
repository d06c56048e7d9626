//go:build !unix

package storage

import "os"

// Without flock the store still works within one process but gives no
// cross-process exclusion.

// Renaming over a file with an open handle fails on Windows.
var releaseBeforeRename = true

func tryLock(f *os.File, exclusive bool) error { return nil }

func unlock(f *os.File) error { return nil }

func isContended(err error) bool { return false }

func writable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0200 != 0
}
