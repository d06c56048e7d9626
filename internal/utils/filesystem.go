package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ferrors "github.com/PolarWolf314/filestore/internal/errors"
)

// ResolvePath rejects paths the shell failed to expand and makes the rest
// absolute. A leading "~" reaches here when the path was quoted.
func ResolvePath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		return "", fmt.Errorf("%s: %w (use $HOME or an absolute path)", path, ferrors.ErrUnexpandedHome)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, nil
}

// FileExists reports whether path exists. Errors other than "not found" are returned.
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("error checking %s: %w", path, err)
}
