package cli

import (
	"github.com/spf13/cobra"

	"github.com/seanstash/seanstash-cli/internal/config"
	"github.com/seanstash/seanstash-cli/internal/core"
)

// ConfigCmd returns the interactive configuration command.
func ConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Configure the SeanStash server and filter settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(core.ConfigFile())
			if err != nil {
				return err
			}
			_, err = config.RunWizard(core.ConfigFile(), cfg)
			return err
		},
	}
}
