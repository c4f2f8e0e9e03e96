package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/WilliamSWoodruff/doggo-cli/internal/audit"
	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
	"github.com/WilliamSWoodruff/doggo-cli/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new empty vault",
	Long: `Creates a fresh, empty vault at the target path and encrypts it under the
named key. Refuses to overwrite an existing vault file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing vault...", verbose)
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
		Logger.Debugf("Initializing vault at %s under key %q", path, keyID)

		doc, err := manager.Init(path, keyID)
		if err != nil {
			if doggoerrors.Expected(err) {
				spinner.FinalMSG = expectedFinalMessage(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to initialize vault: %v", err)
		}

		audit.Log(audit.Entry{
			Actor:     config.Device.UUID,
			Operation: "init",
			Vault:     path,
		})

		if !verbose && !debug {
			spinner.Stop()
		}
		fmt.Println()
		banner := figure.NewColorFigure("doggo", "alligator2", "green", true)
		banner.Print()
		fmt.Println()

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Created vault " + ui.Path.Sprint(path) + " " +
			ui.Muted.Sprintf("version %d, id %s", doc.Version, doc.ID) + "\n" +
			ui.Info.Sprint("→") + " Add your first secret with " + ui.Code.Sprint("doggo add")
		return nil
	},
}
