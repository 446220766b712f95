// Package cli builds the seanstash command tree.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// shellMetaChars mark a positional argument as a command string to send
// directly rather than a subcommand name.
const shellMetaChars = "|&><;()[]{}$`\"'"

// RootCmd returns the root command. The single positional argument is
// dispatched on shape: a leading "!" means a history line spec, a string
// with spaces or shell metacharacters is sent directly, and anything else is
// an unknown subcommand.
func RootCmd(version string) *cobra.Command {
	var (
		limit  int
		force  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:     "seanstash [command | !N | !N-M | \"command string\"]",
		Short:   "Send terminal command history to SeanStash",
		Version: version,
		Long: `SeanStash CLI - Terminal History Integration.
Extracts commands from your shell history, filters out noise and sensitive
entries, and sends new ones to a SeanStash server for snippeting.`,
		Example: `  seanstash                                      # sync recent commands
  seanstash "kubectl get pods --all-namespaces"  # send command directly
  seanstash '!2031'                              # sync history line 2031
  seanstash '!2031-2033'                         # sync history lines 2031-2033
  seanstash '!2031' --dry-run                    # preview what would be sent
  seanstash sync --limit 20                      # sync last 20 commands
  seanstash config                               # configure settings
  seanstash status                               # check status`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runRecentSync(cmd.Context(), limit, force, dryRun)
			}

			arg := args[0]
			switch {
			case strings.HasPrefix(arg, "!"):
				return runRangeSync(cmd.Context(), arg, force, dryRun)
			case strings.Contains(arg, " ") || strings.ContainsAny(arg, shellMetaChars):
				return runDirectSync(cmd.Context(), arg, force, dryRun)
			default:
				return fmt.Errorf("unknown command: %s\n"+
					"Use 'seanstash --help' for usage information.\n\n"+
					"Tip: to send a command directly, use quotes:\n"+
					"  seanstash 'kubectl get pods --all-namespaces'\n"+
					"  seanstash 'docker ps -a'", arg)
			}
		},
	}

	cmd.PersistentFlags().IntVar(&limit, "limit", 50, "number of recent commands to process")
	cmd.PersistentFlags().BoolVar(&force, "force", false, "send all commands, ignoring sent history")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "show what would be sent without sending")

	cmd.AddCommand(SyncCmd())
	cmd.AddCommand(ConfigCmd())
	cmd.AddCommand(StatusCmd())

	return cmd
}

func runRecentSync(ctx context.Context, limit int, force, dryRun bool) error {
	a, err := newApp(force, dryRun)
	if err != nil {
		return err
	}
	defer a.close()
	return a.newSyncer(stdout()).SyncRecent(ctx, limit)
}

func runRangeSync(ctx context.Context, spec string, force, dryRun bool) error {
	a, err := newApp(force, dryRun)
	if err != nil {
		return err
	}
	defer a.close()
	return a.newSyncer(stdout()).SyncRange(ctx, spec)
}

func runDirectSync(ctx context.Context, command string, force, dryRun bool) error {
	a, err := newApp(force, dryRun)
	if err != nil {
		return err
	}
	defer a.close()
	return a.newSyncer(stdout()).SyncCommand(ctx, command)
}
