package cmd

import (
	"github.com/spf13/cobra"

	"github.com/WilliamSWoodruff/doggo-cli/internal/audit"
	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
	"github.com/WilliamSWoodruff/doggo-cli/internal/ui"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new secret to the vault",
	Long: `Prompts for tags and the secret value, then appends a new entry to the
vault. At least one tag is required - an untagged secret could never be
found again by search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting add command")
		spinner, cleanup := startSpinner("Loading vault...", verbose)
		defer cleanup()

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

		// Interactive prompts next; the spinner would fight the terminal.
		resume := pauseSpinner(spinner)
		next, err := manager.Add(doc)
		if err != nil {
			if doggoerrors.Expected(err) {
				spinner.FinalMSG = expectedFinalMessage(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to add secret: %v", err)
		}
		resume()

		if err := manager.Persist(next, path, keyID); err != nil {
			return Logger.ErrorfAndReturn("failed to save vault: %v", err)
		}

		added := next.Secrets[len(next.Secrets)-1]
		audit.Log(audit.Entry{
			Actor:     config.Device.UUID,
			Operation: "add",
			Vault:     path,
			EntryID:   added.ID,
			Tags:      added.JoinedTags(),
			Count:     len(next.Secrets),
		})

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Added secret tagged " + ui.Highlight.Sprint(added.JoinedTags()) + " " +
			ui.Muted.Sprintf("version %d, %s", next.Version, countSecrets(len(next.Secrets)))
		return nil
	},
}
