package logger

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Logger writes verbosity-gated diagnostic output for CLI commands.
type Logger struct {
	Verbose bool
	Debug   bool
}

// Infof logs an informational message. Shown with --verbose or --debug.
func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		fmt.Fprintf(os.Stdout, color.GreenString("[info] ")+msg+"\n", args...)
	}
}

// Debugf logs a debug message. Shown only with --debug.
func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		fmt.Fprintf(os.Stdout, color.CyanString("[debug] ")+msg+"\n", args...)
	}
}

// Warnf logs a warning to stderr. Always shown.
func (l Logger) Warnf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, color.YellowString("[warn] ")+msg+"\n", args...)
}

// Errorf logs an error to stderr. Always shown.
func (l Logger) Errorf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, color.RedString("[error] ")+msg+"\n", args...)
}

// ErrorfAndReturn logs an error and returns it so commands can propagate
// system failures in one step.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	l.Errorf("%v", err)
	return err
}
