package utils

import (
	"fmt"
	"os"

	ferrors "github.com/PolarWolf314/filestore/internal/errors"

	"golang.org/x/term"
)

// ReadPassphrase prompts the user for a secret without echoing input.
// Returns ErrNotTerminal if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read secret: %w", ferrors.ErrNotTerminal)
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	return passphrase, nil
}
