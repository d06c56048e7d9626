package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/filestore/cmd"
	"github.com/PolarWolf314/filestore/internal/ui"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "filestore",
	Short: "filestore - locked, encrypted single-file secret storage.",
	Long: `filestore keeps a small secret (typically a password) in a file on disk,
encrypted with an RSA key pair and guarded by advisory file locks.

Usage:
  filestore storage <command> [flags]

Available Commands:
  storage generate-keys   Create public.pem and private.pem
  storage encrypt-pw      Encrypt a password into a file
  storage decrypt         Print a decrypted password file

Run 'filestore help <command>' for more details on a specific command.
`,
	SilenceErrors: true,
	Run: func(c *cobra.Command, args []string) {
		figure.NewColorFigure("filestore", "standard", "green", true).Print()
		fmt.Println()
		fmt.Println("Run " + ui.Code.Sprint("filestore --help") + " to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.StorageCmd)

	if err := rootCmd.Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintln(os.Stderr, ui.Fail(err.Error()))
		}
		os.Exit(1)
	}
}
