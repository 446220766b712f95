package cli

import (
	"github.com/spf13/cobra"
)

// SyncCmd returns the explicit sync subcommand. It is equivalent to running
// seanstash with no arguments; the persistent flags apply.
func SyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync recent shell history to SeanStash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return err
			}
			return runRecentSync(cmd.Context(), limit, force, dryRun)
		},
	}
}
