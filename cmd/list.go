package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
	"github.com/WilliamSWoodruff/doggo-cli/internal/search"
	"github.com/WilliamSWoodruff/doggo-cli/internal/ui"
)

var listIDs bool

func init() {
	listCmd.Flags().BoolVar(&listIDs, "ids", false, "print ranked entry ids instead of tags and secrets")
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listIDs = false
}

var listCmd = &cobra.Command{
	Use:   "list [search]",
	Short: "List secrets, optionally narrowed by a fuzzy tag search",
	Long: `Lists the vault's secrets with their tags. With a search argument, only
secrets whose tags approximately match are shown, best match first. The
search tolerates typos and partial words.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")
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

		if listIDs {
			ids := search.Resolve(doc.Secrets, query, search.Options{IDs: true})
			if len(ids) == 0 && query != "" {
				spinner.FinalMSG = expectedFinalMessage(doggoerrors.ErrNotFound)
				return nil
			}
			spinner.FinalMSG = strings.Join(ids, "\n")
			return nil
		}

		entries, err := manager.List(doc, query)
		if err != nil {
			if doggoerrors.Expected(err) {
				spinner.FinalMSG = expectedFinalMessage(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to list secrets: %v", err)
		}

		if len(entries) == 0 {
			if query != "" {
				spinner.FinalMSG = expectedFinalMessage(doggoerrors.ErrNotFound)
				return nil
			}
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Vault is empty " +
				ui.Muted.Sprintf("version %d", doc.Version) + "\n" +
				ui.Info.Sprint("→") + " Add a secret with " + ui.Code.Sprint("doggo add")
			return nil
		}

		var out strings.Builder
		out.WriteString(ui.Success.Sprint("✓") + " " + countSecrets(len(entries)) + " " +
			ui.Muted.Sprintf("version %d", doc.Version) + "\n")
		for _, entry := range entries {
			out.WriteString("    " + ui.Highlight.Sprint(entry.JoinedTags()) + "  " + entry.Secret + "\n")
		}
		spinner.FinalMSG = out.String()
		return nil
	},
}

// countSecrets renders "1 secret" / "n secrets".
func countSecrets(n int) string {
	if n == 1 {
		return "1 secret"
	}
	return fmt.Sprintf("%d secrets", n)
}
