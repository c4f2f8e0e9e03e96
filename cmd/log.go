package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/WilliamSWoodruff/doggo-cli/internal/audit"
	"github.com/WilliamSWoodruff/doggo-cli/internal/configs"
	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
	"github.com/WilliamSWoodruff/doggo-cli/internal/search"
	"github.com/WilliamSWoodruff/doggo-cli/internal/ui"
)

var logCmd = &cobra.Command{
	Use:   "log [search]",
	Short: "Show the audit trail of vault operations",
	Long: `Prints the audit trail: which operation ran, when, and on which vault.
With a search argument, only operations whose tags approximately match are
shown. Secret values are never recorded, only tags and counts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")
		spinner, cleanup := startSpinner("Reading audit log...", verbose)
		defer cleanup()

		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		if err := configs.InitUserSettings(); err != nil {
			return Logger.ErrorfAndReturn("failed to init user settings: %v", err)
		}

		entries, err := audit.ReadEntries()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read audit log: %v", err)
		}
		entries = filterAuditEntries(entries, query)
		if len(entries) == 0 {
			if query != "" {
				spinner.FinalMSG = expectedFinalMessage(doggoerrors.ErrNotFound)
				return nil
			}
			spinner.FinalMSG = ui.Success.Sprint("✓") + " No operations recorded yet"
			return nil
		}

		var out strings.Builder
		out.WriteString(ui.Success.Sprint("✓") + " Audit trail:\n")
		for _, entry := range entries {
			line := "    " + ui.Muted.Sprint(entry.Timestamp) + "  " + entry.Operation
			if entry.Tags != "" {
				line += "  " + ui.Highlight.Sprint(entry.Tags)
			}
			if entry.Vault != "" {
				line += "  " + ui.Path.Sprint(entry.Vault)
			}
			out.WriteString(line + "\n")
		}
		spinner.FinalMSG = out.String()
		return nil
	},
}

// filterAuditEntries narrows the trail to operations whose recorded tags
// match the query, keeping chronological order. An empty query keeps
// everything; records without tags (init, keygen, merge) only show up
// unfiltered.
func filterAuditEntries(entries []audit.Entry, query string) []audit.Entry {
	if query == "" {
		return entries
	}

	values := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Tags != "" {
			values = append(values, entry.Tags)
		}
	}
	matched := make(map[string]bool)
	for _, v := range search.Strings(values, query) {
		matched[v] = true
	}

	var out []audit.Entry
	for _, entry := range entries {
		if matched[entry.Tags] {
			out = append(out, entry)
		}
	}
	return out
}
