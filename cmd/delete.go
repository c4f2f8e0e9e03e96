package cmd

import (
	"github.com/spf13/cobra"

	"github.com/WilliamSWoodruff/doggo-cli/internal/audit"
	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
	"github.com/WilliamSWoodruff/doggo-cli/internal/ui"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [search]",
	Short: "Delete a secret from the vault",
	Long: `Finds a secret by fuzzy tag search and deletes it after asking twice.
Declining either confirmation leaves the vault untouched. There is no
undo on this device; a replica that still carries the secret can bring
it back through merge only if it was edited concurrently.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting delete command")
		spinner, cleanup := startSpinner("Loading vault...", verbose)
		defer cleanup()

		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		manager, config, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load user config: %v", err)
		}
		path, err := resolveVault(config)
		if err != nil {
			spinner.FinalMSG = expectedFinalMessage(err)
			return nil
		}
		keyID, err := resolveKey(config)
		if err != nil {
			spinner.FinalMSG = expectedFinalMessage(err)
			return nil
		}

		doc, err := manager.Load(path, keyID)
		if err != nil {
			if doggoerrors.Expected(err) {
				spinner.FinalMSG = expectedFinalMessage(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to load vault: %v", err)
		}

		resume := pauseSpinner(spinner)
		next, err := manager.Delete(doc, query)
		if err != nil {
			if doggoerrors.Expected(err) {
				spinner.FinalMSG = expectedFinalMessage(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to delete secret: %v", err)
		}
		resume()

		if err := manager.Persist(next, path, keyID); err != nil {
			return Logger.ErrorfAndReturn("failed to save vault: %v", err)
		}

		audit.Log(audit.Entry{
			Actor:     config.Device.UUID,
			Operation: "delete",
			Vault:     path,
			Count:     len(next.Secrets),
		})

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted secret " +
			ui.Muted.Sprintf("version %d, %s left", next.Version, countSecrets(len(next.Secrets)))
		return nil
	},
}
