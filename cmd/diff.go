package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
	"github.com/WilliamSWoodruff/doggo-cli/internal/replication"
	"github.com/WilliamSWoodruff/doggo-cli/internal/ui"
)

var diffCmd = &cobra.Command{
	Use:   "diff <replica>",
	Short: "Show what a replica has that this vault does not",
	Long: `Compares the local vault against a replica and shows the secrets the
replica added, removed, or changed, plus any history the replica has that
this vault has never seen. Nothing is modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting diff command")
		spinner, cleanup := startSpinner("Comparing replicas...", verbose)
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

		local, err := manager.Load(path, keyID)
		if err != nil {
			if doggoerrors.Expected(err) {
				spinner.FinalMSG = expectedFinalMessage(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to load vault: %v", err)
		}
		remote, err := manager.Load(args[0], keyID)
		if err != nil {
			if doggoerrors.Expected(err) {
				spinner.FinalMSG = expectedFinalMessage(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to load replica %s: %v", args[0], err)
		}

		changeset, err := manager.Diff(local, remote)
		if err != nil {
			if doggoerrors.Expected(err) {
				spinner.FinalMSG = expectedFinalMessage(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to diff replicas: %v", err)
		}

		spinner.FinalMSG = renderChangeset(changeset, args[0])
		return nil
	},
}

// renderChangeset formats a changeset for display, one line per difference.
func renderChangeset(changeset *replication.Changeset, replica string) string {
	if changeset.Empty() {
		return ui.Success.Sprint("✓") + " Nothing to pull from " + ui.Path.Sprint(replica)
	}

	var out strings.Builder
	out.WriteString(ui.Success.Sprint("✓") + " Changes in " + ui.Path.Sprint(replica) + ":\n")
	for _, entry := range changeset.Added {
		out.WriteString("    " + ui.Success.Sprint("+ ") + ui.Highlight.Sprint(entry.JoinedTags()) + "\n")
	}
	for _, entry := range changeset.Removed {
		out.WriteString("    " + ui.Error.Sprint("- ") + ui.Highlight.Sprint(entry.JoinedTags()) + "\n")
	}
	for _, delta := range changeset.Changed {
		out.WriteString("    " + ui.Warning.Sprint("~ ") + ui.Highlight.Sprint(delta.Local.JoinedTags()) +
			" " + ui.Info.Sprint("→") + " " + ui.Highlight.Sprint(delta.Remote.JoinedTags()) + "\n")
	}
	if len(changeset.Messages) > 0 {
		out.WriteString("  Unseen history:\n")
		for _, message := range changeset.Messages {
			out.WriteString("    " + ui.Muted.Sprint(message) + "\n")
		}
	}
	out.WriteString(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("doggo merge "+replica) + " to reconcile")
	return out.String()
}
