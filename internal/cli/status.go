package cli

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seanstash/seanstash-cli/internal/archive"
	"github.com/seanstash/seanstash-cli/internal/core"
	"github.com/seanstash/seanstash-cli/internal/ledger"
	"github.com/seanstash/seanstash-cli/internal/transport"
)

// StatusCmd returns the status command: configuration summary, connectivity
// probe, and recent sync activity.
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, connectivity, and sync activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false, false)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "SeanStash CLI Status")
			fmt.Fprintln(out, strings.Repeat("=", 20))
			fmt.Fprintf(out, "Config file: %s\n", core.ConfigFile())
			fmt.Fprintf(out, "History file: %s\n", core.LedgerFile())
			fmt.Fprintf(out, "Target URL: %s\n", a.cfg.API.BaseURL)
			fmt.Fprintf(out, "Auto-send: %t\n", a.cfg.Behavior.AutoSend)
			fmt.Fprintf(out, "Dry run: %t\n", a.cfg.Behavior.DryRun)

			client := transport.NewClient(a.cfg.API, a.logger)
			status, err := client.Ping(cmd.Context())
			switch {
			case err != nil:
				fmt.Fprintf(out, "%s Connection to SeanStash: Failed (%v)\n", color.RedString("✗"), err)
			case status == http.StatusOK:
				fmt.Fprintf(out, "%s Connection to SeanStash: OK\n", color.GreenString("✓"))
			default:
				fmt.Fprintf(out, "%s Connection to SeanStash: HTTP %d (server reachable)\n", color.YellowString("⚠"), status)
			}

			led := ledger.NewStore(core.LedgerFile(), a.logger).Load()
			fmt.Fprintf(out, "Commands sent: %d\n", led.Size())
			if !led.LastUpdated().IsZero() {
				fmt.Fprintf(out, "Last sync: %s\n", humanize.Time(led.LastUpdated()))
			}

			printRecentActivity(out, a.logger)
			return nil
		},
	}
}

func printRecentActivity(out io.Writer, logger *zap.Logger) {
	arc, err := archive.Open(core.ArchiveDB())
	if err != nil {
		logger.Warn("could not open sync archive", zap.Error(err))
		return
	}
	entries, err := arc.RecentEntries(5)
	if err != nil || len(entries) == 0 {
		return
	}
	fmt.Fprintln(out, "\nRecently synced:")
	for _, entry := range entries {
		fmt.Fprintf(out, "  %s (%s)\n", entry.Command, humanize.Time(entry.CreatedAt))
	}
}
