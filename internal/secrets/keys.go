package secrets

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	ferrors "github.com/PolarWolf314/filestore/internal/errors"

	"golang.org/x/crypto/ssh"
)

// DefaultKeyBits is the modulus size used by GenerateRSAKeyPair when none is given.
const DefaultKeyBits = 2048

// KeyPair holds the RSA keys a single encrypted store was constructed with.
// It is loaded once and never modified.
type KeyPair struct {
	public  *rsa.PublicKey
	private *rsa.PrivateKey
}

// LoadKeyPair reads and parses both halves of an RSA key pair.
func LoadKeyPair(publicPath, privatePath string) (KeyPair, error) {
	priv, err := LoadPrivateKey(privatePath)
	if err != nil {
		return KeyPair{}, err
	}
	pub, err := LoadPublicKey(publicPath)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{public: pub, private: priv}, nil
}

// Public returns the public half of the pair.
func (k KeyPair) Public() *rsa.PublicKey { return k.public }

// Private returns the private half of the pair.
func (k KeyPair) Private() *rsa.PrivateKey { return k.private }

// LoadPrivateKey loads an RSA private key from disk. PKCS#1, PKCS#8 and
// unencrypted OpenSSH encodings are accepted.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := readKeyFile(path)
	if err != nil {
		return nil, err
	}
	key, err := parsePrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ferrors.ErrKeyParse, err)
	}
	return key, nil
}

// LoadPublicKey loads an RSA public key in PKIX or PKCS#1 PEM encoding.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := readKeyFile(path)
	if err != nil {
		return nil, err
	}
	key, err := parsePublicKey(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ferrors.ErrKeyParse, err)
	}
	return key, nil
}

func readKeyFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ferrors.ErrKeyFileUnreadable, err)
	}
	return data, nil
}

func parsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block containing private key")
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("not an RSA private key")
		}
		return rsaKey, nil
	case "OPENSSH PRIVATE KEY":
		return parseOpenSSHPrivateKey(data)
	default:
		return nil, fmt.Errorf("unsupported PEM block type %q", block.Type)
	}
}

// parseOpenSSHPrivateKey handles keys written by ssh-keygen. Passphrase
// protected keys are rejected since there is nowhere to supply one.
func parseOpenSSHPrivateKey(data []byte) (*rsa.PrivateKey, error) {
	raw, err := ssh.ParseRawPrivateKey(data)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, ferrors.ErrPassphraseRequired
		}
		return nil, err
	}
	rsaKey, ok := raw.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA private key")
	}
	return rsaKey, nil
}

func parsePublicKey(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block containing public key")
	}

	switch block.Type {
	case "PUBLIC KEY":
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("not an RSA public key")
		}
		return rsaPub, nil
	case "RSA PUBLIC KEY":
		return x509.ParsePKCS1PublicKey(block.Bytes)
	default:
		return nil, fmt.Errorf("unsupported PEM block type %q", block.Type)
	}
}

// GenerateRSAKeyPair creates a new RSA key pair and saves both halves as PEM
// files with mode 0660. Existing files are overwritten; callers check first.
func GenerateRSAKeyPair(privatePath, publicPath string, bits int) (err error) {
	if bits == 0 {
		bits = DefaultKeyBits
	}
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("failed to generate RSA key pair: %w", err)
	}

	for _, dir := range []string{filepath.Dir(privatePath), filepath.Dir(publicPath)} {
		if err := os.MkdirAll(dir, 0770); err != nil {
			return fmt.Errorf("failed to create key directory at %s: %w", dir, err)
		}
	}

	privPem := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}
	if err := writePEM(privatePath, privPem); err != nil {
		return fmt.Errorf("failed to write private key file at %s: %w", privatePath, err)
	}

	pubASN1, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to marshal public key: %w", err)
	}
	pubPem := &pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubASN1,
	}
	if err := writePEM(publicPath, pubPem); err != nil {
		return fmt.Errorf("failed to write public key file at %s: %w", publicPath, err)
	}

	return nil
}

func writePEM(path string, block *pem.Block) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0660)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close key file: %w", closeErr)
		}
	}()

	// umask may have stripped group bits on create.
	if err := f.Chmod(0660); err != nil {
		return err
	}
	return pem.Encode(f, block)
}
