package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/WilliamSWoodruff/doggo-cli/internal/configs"
	"github.com/WilliamSWoodruff/doggo-cli/internal/crypt"
	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
	"github.com/WilliamSWoodruff/doggo-cli/internal/interaction"
	"github.com/WilliamSWoodruff/doggo-cli/internal/replication"
	"github.com/WilliamSWoodruff/doggo-cli/internal/ui"
	"github.com/WilliamSWoodruff/doggo-cli/internal/vault"
	"github.com/WilliamSWoodruff/doggo-cli/internal/version"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should
// be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The
// cleanup function calls ui.EnsureNewline() on the final message before
// printing it, so output formatting stays consistent across all commands.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// pauseSpinner stops the spinner around interactive prompts and returns a
// function that restarts it. In verbose and debug mode the spinner never
// ran, so both halves are no-ops.
func pauseSpinner(s *spinner.Spinner) func() {
	if verbose || debug {
		return func() {}
	}
	s.Stop()
	return func() { s.Restart() }
}

// newManager wires a vault.Manager from the user config: the device UUID is
// the replication actor, the cipher is rooted at the user's keys directory,
// and prompts go to the terminal.
func newManager() (*vault.Manager, *configs.UserConfig, error) {
	config, err := configs.EnsureUserConfig()
	if err != nil {
		return nil, nil, err
	}
	manager := vault.NewManager(
		replication.NewEngine(config.Device.UUID, version.Tool),
		crypt.NewFileCipher(configs.UserDoggoSettings.UserKeysPath),
		interaction.NewPrompter(),
		Logger,
	)
	return manager, config, nil
}

// resolveVault returns the vault path: the --vault flag when given,
// otherwise the configured default.
func resolveVault(config *configs.UserConfig) (string, error) {
	if vaultFlag != "" {
		return vaultFlag, nil
	}
	if config.Defaults.Vault != "" {
		return config.Defaults.Vault, nil
	}
	return "", doggoerrors.ErrNoVaultPath
}

// resolveKey returns the key identifier: the --key flag when given,
// otherwise the configured default.
func resolveKey(config *configs.UserConfig) (string, error) {
	if keyFlag != "" {
		return keyFlag, nil
	}
	if config.Defaults.Key != "" {
		return config.Defaults.Key, nil
	}
	return "", doggoerrors.ErrNoKeyIdentifier
}

// expectedFinalMessage renders an expected domain outcome as the one-line
// spinner final message, with a usage hint when one helps.
func expectedFinalMessage(err error) string {
	message := ui.Error.Sprint("✗") + " " + err.Error()
	switch {
	case errors.Is(err, doggoerrors.ErrNoVaultPath):
		message += "\n" + ui.Info.Sprint("→") + " Pass " + ui.Code.Sprint("--vault <path>") + " or set a default in " + ui.Path.Sprint("~/.doggo/config.toml")
	case errors.Is(err, doggoerrors.ErrNoKeyIdentifier):
		message += "\n" + ui.Info.Sprint("→") + " Pass " + ui.Code.Sprint("--key <identifier>") + " or set a default in " + ui.Path.Sprint("~/.doggo/config.toml")
	case errors.Is(err, doggoerrors.ErrKeyNotFound):
		message += "\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("doggo keygen") + " to create one"
	case errors.Is(err, doggoerrors.ErrVaultNotFound):
		message += "\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("doggo init") + " to create a vault"
	}
	return message
}
