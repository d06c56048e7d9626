package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	PublicKeyFile  = "public.pem"
	PrivateKeyFile = "private.pem"
	SecretFile     = "pw.txt"

	// ConfigEnv overrides the default config file location.
	ConfigEnv = "FILESTORE_CONFIG"
)

// Settings holds the default locations used when no flag or config value is given.
type Settings struct {
	// KeysPath is the directory holding public.pem and private.pem.
	KeysPath string

	// SecretPath is the encrypted secret file.
	SecretPath string

	// ConfigPath is the TOML config file.
	ConfigPath string
}

// DefaultSettings derives default paths from the XDG base directories.
func DefaultSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting home directory: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	configPath := os.Getenv(ConfigEnv)
	if configPath == "" {
		configPath = filepath.Join(configDir, "filestore", "config.toml")
	}

	return &Settings{
		KeysPath:   filepath.Join(dataDir, "filestore", "keys"),
		SecretPath: filepath.Join(dataDir, "filestore", SecretFile),
		ConfigPath: configPath,
	}, nil
}
