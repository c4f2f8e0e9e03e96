package cmd

import (
	"os"

	logger "github.com/WilliamSWoodruff/doggo-cli/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	vaultFlag string
	keyFlag   string
	verbose   bool
	debug     bool
	Logger    logger.Logger

	RootCmd = &cobra.Command{
		Use:   "doggo",
		Short: "Manage tagged, encrypted secrets in a mergeable vault",
		Long: `Doggo keeps your credentials in an encrypted vault file: each secret is
tagged with free-text labels and found back by fuzzy search over its tags.

Replicas of a vault can be edited independently on several devices and
reconciled later with doggo merge - no server involved.

Run 'doggo help <command>' for details on a specific command.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing doggo command with verbose=%t, debug=%t", verbose, debug)
			cmd.Flags().VisitAll(func(flag *pflag.Flag) {
				if flag.Changed {
					Logger.Debugf("Flag %s=%s", flag.Name, flag.Value.String())
				}
			})
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "", "path to the vault file (overrides the configured default)")
	RootCmd.PersistentFlags().StringVar(&keyFlag, "key", "", "encryption key identifier (overrides the configured default)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(updateCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(mergeCmd)
	RootCmd.AddCommand(diffCmd)
	RootCmd.AddCommand(logCmd)
}

// Execute runs the root command and exits non-zero on system errors.
// Expected domain outcomes (not-found, cancellation, validation) are
// reported by the commands themselves and exit zero.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Helper functions for testing

// ResetGlobalState resets all global flag variables to their defaults for testing.
func ResetGlobalState() {
	vaultFlag = ""
	keyFlag = ""
	verbose = false
	debug = false
	resetKeygenCommandState()
	resetListCommandState()
}
