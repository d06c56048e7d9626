package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	logger "github.com/PolarWolf314/filestore/internal/logging"

	"github.com/spf13/cobra"
)

// setupTestEnvironment points every default location at a temp directory
// and returns that directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("FILESTORE_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("NO_COLOR", "1")

	resetFlags()
	t.Cleanup(resetFlags)
	return dir
}

// withStdin replaces os.Stdin with a pipe holding input for the duration of the test.
func withStdin(t *testing.T, input string) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	if _, err := w.WriteString(input); err != nil {
		t.Fatalf("Failed to write stdin: %v", err)
	}
	w.Close()

	original := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = original
		r.Close()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	collect := func(r io.Reader, out chan<- string) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		out <- buf.String()
	}
	go collect(stdoutReader, stdoutChan)
	go collect(stderrReader, stderrChan)

	err := fn()

	// Close writers to signal EOF.
	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// createTestCLI creates a root command wired to StorageCmd and runs args under it.
func createTestCLI(args ...string) *cobra.Command {
	Logger = logger.Logger{Verbose: verbose, Debug: debug}

	rootCmd := &cobra.Command{
		Use:           "filestore",
		SilenceErrors: true,
	}
	rootCmd.AddCommand(StorageCmd)

	// Output goes through os.Stdout so captureOutput sees it.
	for _, c := range []*cobra.Command{rootCmd, StorageCmd, generateKeysCmd, encryptPwCmd, decryptCmd} {
		c.SetOut(nil)
		c.SetErr(nil)
	}

	rootCmd.SetArgs(append([]string{"storage"}, args...))
	return rootCmd
}

// runCLI executes the storage command with args and returns its combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	output, err := captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
	if testing.Verbose() {
		fmt.Println(output)
	}
	return output, err
}
