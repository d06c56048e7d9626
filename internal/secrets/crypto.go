package secrets

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"

	ferrors "github.com/PolarWolf314/filestore/internal/errors"
)

// pkcs1v15Overhead is the padding PKCS#1 v1.5 encryption adds to each block.
const pkcs1v15Overhead = 11

// MaxPayloadSize returns the largest plaintext a single PKCS#1 v1.5 block
// can hold under publicKey (245 bytes for a 2048-bit key).
func MaxPayloadSize(publicKey *rsa.PublicKey) int {
	return publicKey.Size() - pkcs1v15Overhead
}

// EncryptWithPublicKey encrypts plaintext using an RSA public key.
func EncryptWithPublicKey(plaintext []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	if limit := MaxPayloadSize(publicKey); len(plaintext) > limit {
		return nil, fmt.Errorf("%d bytes exceeds %d byte limit: %w", len(plaintext), limit, ferrors.ErrPayloadTooLarge)
	}
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, publicKey, plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ferrors.ErrEncryptFailed, err)
	}
	return ciphertext, nil
}

// DecryptWithPrivateKey decrypts data using an RSA private key.
func DecryptWithPrivateKey(ciphertext []byte, privateKey *rsa.PrivateKey) ([]byte, error) {
	plaintext, err := rsa.DecryptPKCS1v15(rand.Reader, privateKey, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ferrors.ErrDecryptFailed, err)
	}
	return plaintext, nil
}

// Seal encrypts plaintext with the pair's public key and base64 encodes the
// result so it can be stored as text.
func (k KeyPair) Seal(plaintext []byte) ([]byte, error) {
	ciphertext, err := EncryptWithPublicKey(plaintext, k.public)
	if err != nil {
		return nil, err
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(len(ciphertext)))
	base64.StdEncoding.Encode(out, ciphertext)
	return out, nil
}

// Open reverses Seal.
func (k KeyPair) Open(data []byte) ([]byte, error) {
	ciphertext := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(ciphertext, data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ferrors.ErrDecryptFailed, err)
	}
	return DecryptWithPrivateKey(ciphertext[:n], k.private)
}
