package cmd

import (
	"github.com/PolarWolf314/filestore/internal/ui"
	"github.com/PolarWolf314/filestore/internal/utils"
	"github.com/PolarWolf314/filestore/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	keysFlagPath string
	keysBits     int
)

func init() {
	generateKeysCmd.Flags().StringVar(&keysFlagPath, "path", "", "directory for the key files")
	generateKeysCmd.Flags().IntVar(&keysBits, "bits", 0, "RSA key size (default 2048)")
}

var generateKeysCmd = &cobra.Command{
	Use:   "generate-keys",
	Short: "Generate encryption keys to encrypt data files at rest in the file system",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting generate-keys command")

		loaded, err := loadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}

		keysPath := keysFlagPath
		if keysPath == "" {
			keysPath = loaded.settings.KeysPath
		}
		Logger.Debugf("Key directory: %s, bits: %d", keysPath, keysBits)

		if keysBits > 4096 {
			Logger.WarnfUser("Generating a %d-bit key may take a while", keysBits)
		}

		spinner, cleanup := startSpinner("Generating new key...")
		defer cleanup()

		result, err := workflows.GenerateKeys(cmd.Context(), workflows.GenerateKeysOptions{
			KeysPath: keysPath,
			Bits:     keysBits,
		})
		if err != nil {
			Logger.Errorf("generate-keys failed: %v", err)
			spinner.FinalMSG = describe(err)
			return reportedError{err}
		}

		spinner.FinalMSG = ui.Done("Generated a "+ui.Highlight.Sprintf("%d", result.Bits)+"-bit key pair:") +
			utils.FormatPaths([]string{result.PrivateKeyPath, result.PublicKeyPath}) +
			ui.Hint("Keep the private key out of version control")
		return nil
	},
}
