package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_NestedKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[storage]
path = "/srv/app/pw.txt"

[keys]
public  = "/srv/app/keys/public.pem"
private = "/srv/app/keys/private.pem"
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Storage.Path != "/srv/app/pw.txt" {
		t.Errorf("Expected storage path /srv/app/pw.txt, got %q", config.Storage.Path)
	}
	keys := config.KeyOptions()
	if keys.PublicKey != "/srv/app/keys/public.pem" {
		t.Errorf("Expected public key /srv/app/keys/public.pem, got %q", keys.PublicKey)
	}
	if keys.PrivateKey != "/srv/app/keys/private.pem" {
		t.Errorf("Expected private key /srv/app/keys/private.pem, got %q", keys.PrivateKey)
	}
}

func TestLoadConfig_FlatKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
public_key  = "/etc/keys/public.pem"
private_key = "/etc/keys/private.pem"
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	keys := config.KeyOptions()
	if keys.PublicKey != "/etc/keys/public.pem" || keys.PrivateKey != "/etc/keys/private.pem" {
		t.Errorf("Unexpected key options: %+v", keys)
	}
}

func TestLoadConfig_NestedWinsOverFlat(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
public_key  = "/flat/public.pem"
private_key = "/flat/private.pem"

[keys]
public = "/nested/public.pem"
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	keys := config.KeyOptions()
	if keys.PublicKey != "/nested/public.pem" {
		t.Errorf("Expected nested public key, got %q", keys.PublicKey)
	}
	if keys.PrivateKey != "/flat/private.pem" {
		t.Errorf("Expected flat private key fallback, got %q", keys.PrivateKey)
	}
}

func TestLoadConfig_RelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[storage]
path = "pw.txt"

[keys]
public  = "keys/public.pem"
private = "keys/private.pem"
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Storage.Path != filepath.Join(dir, "pw.txt") {
		t.Errorf("Expected path relative to config dir, got %q", config.Storage.Path)
	}
	if config.KeyOptions().PrivateKey != filepath.Join(dir, "keys", "private.pem") {
		t.Errorf("Expected private key relative to config dir, got %q", config.KeyOptions().PrivateKey)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Expected no error for missing config, got: %v", err)
	}

	keys := config.KeyOptions()
	if keys.PublicKey != "" || keys.PrivateKey != "" {
		t.Errorf("Expected empty key options, got %+v", keys)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[storage\npath = ")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("Expected error for malformed config, got nil")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	original := &Config{
		Storage: StorageConfig{Path: "/srv/pw.txt"},
		Keys:    KeysConfig{Public: "/srv/keys/public.pem", Private: "/srv/keys/private.pem"},
	}

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *loaded != *original {
		t.Errorf("Expected %+v, got %+v", original, loaded)
	}
}

func TestKeysInDir(t *testing.T) {
	keys := KeysInDir("/opt/keys")
	if keys.PublicKey != "/opt/keys/public.pem" || keys.PrivateKey != "/opt/keys/private.pem" {
		t.Errorf("Unexpected key options: %+v", keys)
	}
}

func TestDefaultSettings(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv(ConfigEnv, "/custom/config.toml")

	settings, err := DefaultSettings()
	if err != nil {
		t.Fatalf("DefaultSettings failed: %v", err)
	}

	if settings.KeysPath != "/data/filestore/keys" {
		t.Errorf("Expected keys path /data/filestore/keys, got %q", settings.KeysPath)
	}
	if settings.SecretPath != "/data/filestore/pw.txt" {
		t.Errorf("Expected secret path /data/filestore/pw.txt, got %q", settings.SecretPath)
	}
	if settings.ConfigPath != "/custom/config.toml" {
		t.Errorf("Expected config path from env, got %q", settings.ConfigPath)
	}
}
