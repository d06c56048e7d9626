package cmd

import (
	"fmt"

	"github.com/PolarWolf314/filestore/internal/workflows"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
)

var (
	decryptKeys string
	decryptPath string
)

func init() {
	decryptCmd.Flags().StringVar(&decryptKeys, "keys", "", "directory holding public.pem and private.pem")
	decryptCmd.Flags().StringVar(&decryptPath, "path", "", "path of the password file")
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Print the decrypted contents of a password file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")

		loaded, err := loadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}

		result, err := workflows.DecryptSecret(cmd.Context(), workflows.DecryptSecretOptions{
			Keys:       loaded.keyOptions(decryptKeys),
			SecretPath: loaded.secretPath(decryptPath),
			Logger:     Logger,
		})
		if err != nil {
			Logger.Errorf("decrypt failed: %v", err)
			fmt.Fprintln(cmd.ErrOrStderr(), describe(err))
			return reportedError{err}
		}
		defer memguard.WipeBytes(result.Secret)

		out := cmd.OutOrStdout()
		if _, err := out.Write(result.Secret); err != nil {
			return err
		}
		_, err = fmt.Fprintln(out)
		return err
	},
}
