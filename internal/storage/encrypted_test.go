package storage

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ferrors "github.com/PolarWolf314/filestore/internal/errors"
	"github.com/PolarWolf314/filestore/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// testKeys is generated once in TestMain; RSA generation is too slow to repeat per test.
var testKeys KeyOptions

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "filestore-keys-*")
	if err != nil {
		panic(err)
	}
	testKeys = KeyOptions{
		PublicKey:  filepath.Join(dir, "public.pem"),
		PrivateKey: filepath.Join(dir, "private.pem"),
	}
	if err := secrets.GenerateRSAKeyPair(testKeys.PrivateKey, testKeys.PublicKey, secrets.DefaultKeyBits); err != nil {
		panic(err)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newTestEncrypted(t *testing.T) (*EncryptedStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "encrypted.txt")
	e, err := NewEncrypted(path, testKeys, fastOptions...)
	require.NoError(t, err)
	return e, path
}

func TestEncryptedStorage_SaveGet(t *testing.T) {
	e, path := newTestEncrypted(t)

	require.NoError(t, e.Save([]byte("Write encrypted content to file")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Write encrypted content")
	_, err = base64.StdEncoding.DecodeString(string(raw))
	assert.NoError(t, err, "file should hold base64 text")

	got, err := e.Get()
	require.NoError(t, err)
	assert.Equal(t, "Write encrypted content to file", string(got))

	// A second instance has no cache and must decrypt what is on disk.
	other, err := NewEncrypted(path, testKeys)
	require.NoError(t, err)
	got, err = other.Get()
	require.NoError(t, err)
	assert.Equal(t, "Write encrypted content to file", string(got))
}

func TestEncryptedStorage_RoundTripLimits(t *testing.T) {
	e, _ := newTestEncrypted(t)
	assert.Equal(t, 245, e.MaxPayloadSize())

	for _, plain := range [][]byte{{}, {0}, []byte("hello world"), bytes.Repeat([]byte{0x7f}, e.MaxPayloadSize())} {
		sealed, err := e.EncryptData(plain)
		require.NoError(t, err)
		opened, err := e.DecryptData(sealed)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(plain, opened), "round trip mismatch for %d bytes", len(plain))
	}
}

func TestEncryptedStorage_PayloadTooLarge(t *testing.T) {
	e, path := newTestEncrypted(t)
	require.NoError(t, e.Save([]byte("keep me")))

	err := e.Save(bytes.Repeat([]byte("a"), e.MaxPayloadSize()+1))
	assert.ErrorIs(t, err, ferrors.ErrPayloadTooLarge)

	fresh, err := NewEncrypted(path, testKeys)
	require.NoError(t, err)
	got, err := fresh.Get()
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(got))
}

func TestEncryptedStorage_EmptyAndMissing(t *testing.T) {
	e, path := newTestEncrypted(t)

	got, err := e.Get()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, os.WriteFile(path, nil, 0600))
	fresh, err := NewEncrypted(path, testKeys)
	require.NoError(t, err)
	got, err = fresh.Get()
	require.NoError(t, err)
	assert.Empty(t, got, "zero-length file passes through without decryption")
}

func TestEncryptedStorage_GetAndHold(t *testing.T) {
	e, path := newTestEncrypted(t)
	require.NoError(t, e.Save([]byte("v1")))

	got, err := e.GetAndHold()
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))
	assert.False(t, canLock(t, path, unix.LOCK_SH))

	require.NoError(t, e.SaveAndRelease([]byte("v2")))
	assert.True(t, canLock(t, path, unix.LOCK_EX))

	fresh, err := NewEncrypted(path, testKeys)
	require.NoError(t, err)
	got, err = fresh.Get()
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func TestEncryptedStorage_FailuresReleaseLock(t *testing.T) {
	e, path := newTestEncrypted(t)
	require.NoError(t, os.WriteFile(path, []byte("plaintext is a caller error"), 0600))

	_, err := e.GetAndHold()
	assert.ErrorIs(t, err, ferrors.ErrDecryptFailed)
	assert.True(t, canLock(t, path, unix.LOCK_EX), "lock must not leak when decryption fails")

	require.NoError(t, e.Save([]byte("ok")))
	_, err = e.GetAndHold()
	require.NoError(t, err)
	err = e.SaveAndRelease(bytes.Repeat([]byte("a"), e.MaxPayloadSize()+1))
	assert.ErrorIs(t, err, ferrors.ErrPayloadTooLarge)
	assert.True(t, canLock(t, path, unix.LOCK_EX), "lock must not leak when encryption fails")
}

func TestEncryptedStorage_Delete(t *testing.T) {
	e, path := newTestEncrypted(t)
	require.NoError(t, e.Save([]byte("gone soon")))
	require.NoError(t, e.Delete())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	got, err := e.Get()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewEncrypted_KeyErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "encrypted.txt")

	garbage := filepath.Join(dir, "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a key"), 0600))
	missing := filepath.Join(dir, "missing.pem")

	testCases := []struct {
		name string
		keys KeyOptions
		want error
	}{
		{"MissingPublic", KeyOptions{PrivateKey: testKeys.PrivateKey}, ferrors.ErrMissingKeyOption},
		{"MissingPrivate", KeyOptions{PublicKey: testKeys.PublicKey}, ferrors.ErrMissingKeyOption},
		{"UnreadablePublic", KeyOptions{PublicKey: missing, PrivateKey: testKeys.PrivateKey}, ferrors.ErrKeyFileUnreadable},
		{"UnreadablePrivate", KeyOptions{PublicKey: testKeys.PublicKey, PrivateKey: missing}, ferrors.ErrKeyFileUnreadable},
		{"GarbagePublic", KeyOptions{PublicKey: garbage, PrivateKey: testKeys.PrivateKey}, ferrors.ErrKeyParse},
		{"GarbagePrivate", KeyOptions{PublicKey: testKeys.PublicKey, PrivateKey: garbage}, ferrors.ErrKeyParse},
		{"SwappedKeys", KeyOptions{PublicKey: testKeys.PrivateKey, PrivateKey: testKeys.PublicKey}, ferrors.ErrKeyParse},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEncrypted(path, tc.keys)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewEncrypted_MissingOptionNamesKey(t *testing.T) {
	_, err := NewEncrypted(filepath.Join(t.TempDir(), "x"), KeyOptions{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "public_key"))
}
