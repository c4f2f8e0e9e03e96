package cmd

import (
	"github.com/spf13/cobra"

	"github.com/WilliamSWoodruff/doggo-cli/internal/audit"
	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
	"github.com/WilliamSWoodruff/doggo-cli/internal/ui"
)

var updateCmd = &cobra.Command{
	Use:   "update [search]",
	Short: "Edit an existing secret",
	Long: `Finds a secret by fuzzy tag search and presents its tags and value
pre-filled for editing. When several secrets match, you pick the one you
meant. Fields you leave untouched keep their current values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting update command")
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
		next, err := manager.Update(doc, query)
		if err != nil {
			if doggoerrors.Expected(err) {
				spinner.FinalMSG = expectedFinalMessage(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to update secret: %v", err)
		}
		resume()

		if err := manager.Persist(next, path, keyID); err != nil {
			return Logger.ErrorfAndReturn("failed to save vault: %v", err)
		}

		audit.Log(audit.Entry{
			Actor:     config.Device.UUID,
			Operation: "update",
			Vault:     path,
			Count:     len(next.Secrets),
		})

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Updated secret " +
			ui.Muted.Sprintf("version %d", next.Version)
		return nil
	},
}
