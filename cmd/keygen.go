package cmd

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/WilliamSWoodruff/doggo-cli/internal/audit"
	"github.com/WilliamSWoodruff/doggo-cli/internal/configs"
	"github.com/WilliamSWoodruff/doggo-cli/internal/crypt"
	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
	"github.com/WilliamSWoodruff/doggo-cli/internal/ui"
)

var keygenPassphrase bool

func init() {
	keygenCmd.Flags().BoolVarP(&keygenPassphrase, "passphrase", "p", false, "wrap the key under a passphrase at rest")
}

// resetKeygenCommandState resets the keygen command's global state for testing.
func resetKeygenCommandState() {
	keygenPassphrase = false
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new encryption key",
	Long: `Generates a random 32-byte key under the given identifier and stores it in
your keys directory. With --passphrase the key material is wrapped at rest
and the passphrase is asked for on every use (DOGGO_PASSPHRASE skips the
prompt for non-interactive runs).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keygen command")
		spinner, cleanup := startSpinner("Generating key...", verbose)
		defer cleanup()

		config, err := configs.EnsureUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load user config: %v", err)
		}

		keyID, err := resolveKey(config)
		if err != nil {
			spinner.FinalMSG = expectedFinalMessage(err)
			return nil
		}
		Logger.Debugf("Generating key %q in %s", keyID, configs.UserDoggoSettings.UserKeysPath)

		var passphrase []byte
		if keygenPassphrase {
			resume := pauseSpinner(spinner)
			passphrase, err = crypt.ReadPassphrase("Passphrase for new key: ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read passphrase: %v", err)
			}
			confirm, err := crypt.ReadPassphrase("Repeat passphrase: ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read passphrase: %v", err)
			}
			if !bytes.Equal(passphrase, confirm) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Passphrases do not match"
				return nil
			}
			resume()
		}

		cipher := crypt.NewFileCipher(configs.UserDoggoSettings.UserKeysPath)
		if err := cipher.GenerateKey(keyID, passphrase); err != nil {
			if doggoerrors.Expected(err) {
				spinner.FinalMSG = expectedFinalMessage(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to generate key: %v", err)
		}

		audit.Log(audit.Entry{
			Actor:     config.Device.UUID,
			Operation: "keygen",
		})

		wrapped := ""
		if keygenPassphrase {
			wrapped = " " + ui.Muted.Sprint("passphrase-wrapped")
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Created key " + ui.Highlight.Sprint(keyID) + wrapped + "\n" +
			ui.Info.Sprint("→") + " Create a vault with " + ui.Code.Sprint("doggo init")
		return nil
	},
}
