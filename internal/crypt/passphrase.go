package crypt

import (
	"fmt"
	"os"
	"runtime"
	"syscall"

	"golang.org/x/term"
)

// PassphraseEnvVar lets non-interactive callers supply the passphrase for a
// wrapped key without a terminal.
const PassphraseEnvVar = "DOGGO_PASSPHRASE"

// ReadPassphrase reads a passphrase without echo. The environment variable
// takes precedence; otherwise it reads from the terminal, falling back to
// /dev/tty when stdin is piped.
func ReadPassphrase(prompt string) ([]byte, error) {
	if envPass := os.Getenv(PassphraseEnvVar); envPass != "" {
		return []byte(envPass), nil
	}

	fmt.Fprint(os.Stderr, prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		pass, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		return pass, err
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		if runtime.GOOS == "windows" {
			return nil, fmt.Errorf("passphrase must be set via %s when stdin is piped", PassphraseEnvVar)
		}
		return nil, fmt.Errorf("cannot read passphrase: stdin is piped and /dev/tty is unavailable; set %s", PassphraseEnvVar)
	}
	defer tty.Close()

	pass, err := term.ReadPassword(int(tty.Fd()))
	fmt.Fprintln(os.Stderr)
	return pass, err
}

// zeroBytes overwrites key material after use.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
