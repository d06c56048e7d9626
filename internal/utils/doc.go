// Package utils provides shared utility functions for the filestore CLI.
//
// # Filesystem Utilities
//
//   - ResolvePath: rejects unexpanded "~" paths and makes paths absolute
//   - FileExists: stat wrapper distinguishing "missing" from real errors
//   - FormatPaths: formats file paths for human-readable output
//
// # I/O Utilities
//
//   - ReadStdin: reads a piped secret from standard input
//
// # Terminal Utilities
//
//   - ReadPassphrase: prompts for hidden input on the terminal
package utils
