// Package storage provides locked, atomically updated storage of a single
// blob on the local filesystem, optionally encrypted at rest.
//
// # FileStorage
//
// FileStorage owns one path. Every disk access is mediated by an advisory
// flock(2) lock taken without blocking and retried a bounded number of times
// (10 attempts, 10ms apart by default) before failing with
// errors.ErrLockTimeout:
//
//   - Get takes a shared lock, so concurrent readers do not exclude each other
//   - Save takes an exclusive lock and rewrites the file in place
//   - GetAndHold takes an exclusive lock and keeps it after returning
//   - SaveAndRelease writes a temp file in the same directory, renames it over
//     the path, then drops the lock taken by GetAndHold
//
// GetAndHold and SaveAndRelease together form one critical section spanning
// two calls. Readers never observe a partially written file during the swap
// because the rename is the only step that changes what the path resolves to.
// No other locking operation may be issued on the same store in between;
// doing so fails with errors.ErrLockHeld. A caller that was waiting for the
// lock while the path was renamed over finds its lock on the old file,
// drops it and locks the new one, within the same retry budget.
//
// Locks are only enforced on unix. Other platforms get the same API
// without cross-process exclusion, and SaveAndRelease closes the held handle
// before renaming since an open file cannot be replaced there.
//
// A store caches the last bytes it read or wrote. The cache is private to the
// instance: a second store on the same path always reads from disk.
//
// Stores are not safe for concurrent use by multiple goroutines. Coordination
// between processes happens entirely through the file locks.
//
// # EncryptedStorage
//
// EncryptedStorage wraps a FileStorage and encrypts payloads with an RSA
// public key before they reach disk, storing base64 text. Reads decrypt with
// the matching private key; an empty file passes through untouched. Payloads
// are limited to a single RSA block (245 bytes for a 2048-bit key).
package storage
