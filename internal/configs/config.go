package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/filestore/internal/storage"
)

// Config describes where a secret lives and which keys protect it.
//
// Keys may be given either as a nested table:
//
//	[keys]
//	public  = "keys/public.pem"
//	private = "keys/private.pem"
//
// or as flat options:
//
//	public_key  = "keys/public.pem"
//	private_key = "keys/private.pem"
//
// The nested table wins when both are present. Relative paths are resolved
// against the directory of the config file.
type Config struct {
	Storage    StorageConfig `toml:"storage"`
	Keys       KeysConfig    `toml:"keys"`
	PublicKey  string        `toml:"public_key,omitempty"`
	PrivateKey string        `toml:"private_key,omitempty"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type KeysConfig struct {
	Public  string `toml:"public,omitempty"`
	Private string `toml:"private,omitempty"`
}

// LoadConfig reads a config file. A missing file yields an empty Config.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	config.resolve(filepath.Dir(path))
	return config, nil
}

// SaveConfig writes config to path.
func SaveConfig(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// KeyOptions returns the key paths in the form the storage package expects.
// Empty fields are left empty so storage can report which one is missing.
func (c *Config) KeyOptions() storage.KeyOptions {
	opts := storage.KeyOptions{
		PublicKey:  c.Keys.Public,
		PrivateKey: c.Keys.Private,
	}
	if opts.PublicKey == "" {
		opts.PublicKey = c.PublicKey
	}
	if opts.PrivateKey == "" {
		opts.PrivateKey = c.PrivateKey
	}
	return opts
}

// KeysInDir points both key options at public.pem/private.pem inside dir.
func KeysInDir(dir string) storage.KeyOptions {
	return storage.KeyOptions{
		PublicKey:  filepath.Join(dir, PublicKeyFile),
		PrivateKey: filepath.Join(dir, PrivateKeyFile),
	}
}

func (c *Config) resolve(base string) {
	for _, p := range []*string{&c.Storage.Path, &c.Keys.Public, &c.Keys.Private, &c.PublicKey, &c.PrivateKey} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
