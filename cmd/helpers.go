package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	ferrors "github.com/PolarWolf314/filestore/internal/errors"
	"github.com/PolarWolf314/filestore/internal/ui"

	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines; cleanup adds one.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Cleared so s.Stop() doesn't print it as well.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// describe turns a workflow error into a user-facing message with a hint
// where one helps.
func describe(err error) string {
	switch {
	case errors.Is(err, ferrors.ErrKeysExist):
		return ui.Fail("Key files already exist. Please remove before generating new keys.")
	case errors.Is(err, ferrors.ErrKeysNotFound):
		return ui.Fail("Public/private key not found.") + "\n" +
			ui.Hint("Run "+ui.Code.Sprint("filestore storage generate-keys")+" first, or pass "+ui.Flag.Sprint("--keys"))
	case errors.Is(err, ferrors.ErrSecretExists):
		return ui.Fail("Secret file already exists: "+err.Error()) + "\n" +
			ui.Hint("Remove it first if you want to replace the secret")
	case errors.Is(err, ferrors.ErrSecretNotFound):
		return ui.Fail("No secret stored: " + err.Error())
	case errors.Is(err, ferrors.ErrSecretMismatch):
		return ui.Fail("Password entries did not match!")
	case errors.Is(err, ferrors.ErrEmptySecret):
		return ui.Fail("Password must not be empty.")
	case errors.Is(err, ferrors.ErrUnexpandedHome):
		return ui.Fail(err.Error()) + "\n" +
			ui.Hint("Leave "+ui.Code.Sprint("~")+" unquoted so the shell expands it")
	case errors.Is(err, ferrors.ErrNotTerminal):
		return ui.Fail("No terminal available to prompt for the password.") + "\n" +
			ui.Hint("Pipe the secret in with "+ui.Flag.Sprint("--stdin"))
	case errors.Is(err, ferrors.ErrPayloadTooLarge):
		return ui.Fail("Secret is too large for the key: " + err.Error())
	case errors.Is(err, ferrors.ErrLockTimeout):
		return ui.Fail("Secret file is locked by another process: " + err.Error())
	}
	return ui.Fail(err.Error())
}
