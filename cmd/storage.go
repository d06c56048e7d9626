package cmd

import (
	"errors"

	"github.com/PolarWolf314/filestore/internal/configs"
	logger "github.com/PolarWolf314/filestore/internal/logging"
	"github.com/PolarWolf314/filestore/internal/storage"
	"github.com/PolarWolf314/filestore/internal/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger

	// readPassphrase is swapped out in tests.
	readPassphrase = utils.ReadPassphrase

	StorageCmd = &cobra.Command{
		Use:   "storage",
		Short: "Manage encrypted secret files",
		Long: `Generates RSA key pairs, encrypts a secret into a locked file on disk,
and decrypts it again for scripts that need the plaintext.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing storage command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	StorageCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	StorageCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	StorageCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $"+configs.ConfigEnv+" or the user config dir)")

	StorageCmd.AddCommand(generateKeysCmd)
	StorageCmd.AddCommand(encryptPwCmd)
	StorageCmd.AddCommand(decryptCmd)
}

// reportedError wraps an error whose message was already shown to the user.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already printed by the command.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// loadedConfig bundles the default settings with the optional config file.
type loadedConfig struct {
	settings *configs.Settings
	config   *configs.Config
}

func loadConfig() (*loadedConfig, error) {
	settings, err := configs.DefaultSettings()
	if err != nil {
		return nil, err
	}

	path := configPath
	if path == "" {
		path = settings.ConfigPath
	}
	Logger.Debugf("Loading config from %s", path)

	config, err := configs.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return &loadedConfig{settings: settings, config: config}, nil
}

// keyOptions picks key paths from the --keys flag, then the config file,
// then the default key directory.
func (l *loadedConfig) keyOptions(keysFlag string) storage.KeyOptions {
	if keysFlag != "" {
		return configs.KeysInDir(keysFlag)
	}
	if keys := l.config.KeyOptions(); keys.PublicKey != "" && keys.PrivateKey != "" {
		return keys
	}
	return configs.KeysInDir(l.settings.KeysPath)
}

// secretPath picks the secret file from the --path flag, then the config
// file, then the default location.
func (l *loadedConfig) secretPath(pathFlag string) string {
	if pathFlag != "" {
		return pathFlag
	}
	if l.config.Storage.Path != "" {
		return l.config.Storage.Path
	}
	return l.settings.SecretPath
}

// resetFlags restores every storage flag to its default.
func resetFlags() {
	verbose = false
	debug = false
	configPath = ""
	keysFlagPath = ""
	keysBits = 0
	encryptKeys = ""
	encryptPath = ""
	encryptStdin = false
	decryptKeys = ""
	decryptPath = ""
	readPassphrase = utils.ReadPassphrase

	for _, c := range []*cobra.Command{StorageCmd, generateKeysCmd, encryptPwCmd, decryptCmd} {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}
