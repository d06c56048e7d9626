package cmd

import (
	"fmt"

	"github.com/PolarWolf314/filestore/internal/ui"
	"github.com/PolarWolf314/filestore/internal/utils"
	"github.com/PolarWolf314/filestore/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	encryptKeys  string
	encryptPath  string
	encryptStdin bool
)

func init() {
	encryptPwCmd.Flags().StringVar(&encryptKeys, "keys", "", "directory holding public.pem and private.pem")
	encryptPwCmd.Flags().StringVar(&encryptPath, "path", "", "path for the resulting password file")
	encryptPwCmd.Flags().BoolVar(&encryptStdin, "stdin", false, "read the password from stdin instead of prompting")
}

var encryptPwCmd = &cobra.Command{
	Use:   "encrypt-pw",
	Short: "Generate an encrypted password file",
	Long: `Prompts twice for a password and stores it encrypted with the public key.
Refuses to overwrite an existing password file.

With --stdin the password is read once from a pipe, for use in provisioning scripts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt-pw command")

		loaded, err := loadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}

		opts := workflows.EncryptSecretOptions{
			Keys:       loaded.keyOptions(encryptKeys),
			SecretPath: loaded.secretPath(encryptPath),
			ReadSecret: readPassphrase,
			Confirm:    true,
			Logger:     Logger,
		}
		if encryptStdin {
			opts.ReadSecret = func(string) ([]byte, error) { return utils.ReadStdin() }
			opts.Confirm = false
		}
		Logger.Debugf("Keys: %s, %s; secret: %s", opts.Keys.PublicKey, opts.Keys.PrivateKey, opts.SecretPath)

		result, err := workflows.EncryptSecret(cmd.Context(), opts)
		if err != nil {
			Logger.Errorf("encrypt-pw failed: %v", err)
			fmt.Println(describe(err))
			return reportedError{err}
		}

		fmt.Println(ui.Done("Password encrypted to " + ui.Path.Sprint(result.SecretPath)))
		return nil
	},
}
