// Package logger provides leveled logging for doggo CLI commands.
//
// Output is gated by two flags:
//
//   - --verbose: shows info messages
//   - --debug: shows all messages including debug details
//
// Without flags, only warnings and errors are shown.
//
// Commands create a logger in their PersistentPreRun and pass it to
// internal functions:
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded vault with %d secrets", n)
//
// ErrorfAndReturn logs and returns a system error in one step, keeping the
// command bodies terse while ensuring fatal failures are both shown and
// propagated.
package logger
