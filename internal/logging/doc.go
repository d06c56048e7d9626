// Package logger provides leveled, colored logging for filestore.
//
// Verbosity is controlled by two flags on the CLI:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including lock retries and error details
//
// The zero Logger only prints user-facing warnings, so library code such as
// the storage package can hold one unconditionally.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Debugf("acquiring lock on %s", path)
package logger
