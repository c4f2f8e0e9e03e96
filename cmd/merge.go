package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/WilliamSWoodruff/doggo-cli/internal/audit"
	doggoerrors "github.com/WilliamSWoodruff/doggo-cli/internal/errors"
	"github.com/WilliamSWoodruff/doggo-cli/internal/ui"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <replica>...",
	Short: "Merge replica vaults into this one",
	Long: `Merges one or more replicas of the same vault into the local vault file.
Arguments are file paths or glob patterns (** is supported). All replicas
must descend from the same doggo init; merging is symmetric, so the result
does not depend on the order replicas are given in.

A secret edited on one device and deleted on another survives if the edit
is newer; concurrent edits of the same secret resolve the same way on
every device.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting merge command")
		spinner, cleanup := startSpinner("Merging replicas...", verbose)
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

		replicas, err := resolveReplicas(args, path)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve replicas: %v", err)
		}
		if len(replicas) == 0 {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " No replica files matched"
			return nil
		}
		Logger.Debugf("Merging %d replicas into %s", len(replicas), path)

		merged, err := manager.Load(path, keyID)
		if err != nil {
			if doggoerrors.Expected(err) {
				spinner.FinalMSG = expectedFinalMessage(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to load vault: %v", err)
		}

		for _, replica := range replicas {
			remote, err := manager.Load(replica, keyID)
			if err != nil {
				if doggoerrors.Expected(err) {
					spinner.FinalMSG = expectedFinalMessage(err)
					return nil
				}
				return Logger.ErrorfAndReturn("failed to load replica %s: %v", replica, err)
			}
			merged, err = manager.Merge(merged, remote)
			if err != nil {
				if doggoerrors.Expected(err) {
					spinner.FinalMSG = expectedFinalMessage(err) + " " + ui.Muted.Sprint(replica)
					return nil
				}
				return Logger.ErrorfAndReturn("failed to merge replica %s: %v", replica, err)
			}
			Logger.Infof("Merged replica %s", replica)
		}

		if err := manager.Persist(merged, path, keyID); err != nil {
			return Logger.ErrorfAndReturn("failed to save vault: %v", err)
		}

		audit.Log(audit.Entry{
			Actor:     config.Device.UUID,
			Operation: "merge",
			Vault:     path,
			Replicas:  replicas,
			Count:     len(merged.Secrets),
		})

		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Merged %d replica(s) into ", len(replicas)) +
			ui.Path.Sprint(path) + " " +
			ui.Muted.Sprintf("version %d, %s", merged.Version, countSecrets(len(merged.Secrets)))
		return nil
	},
}

// resolveReplicas expands path and glob arguments into replica files,
// skipping directories and the local vault itself.
func resolveReplicas(patterns []string, vaultPath string) ([]string, error) {
	vaultAbs, err := filepath.Abs(vaultPath)
	if err != nil {
		return nil, err
	}

	var replicas []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			abs, err := filepath.Abs(match)
			if err != nil {
				return nil, err
			}
			if abs == vaultAbs || seen[abs] {
				continue
			}
			seen[abs] = true
			replicas = append(replicas, match)
		}
	}
	return replicas, nil
}
