package cmd

import (
	"github.com/spf13/cobra"

	"github.com/samiconductor/ghradl/config"
	"github.com/samiconductor/ghradl/tui"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [USER [REPO]]",
		Short: "Browse releases and download assets interactively",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			var user, repo string
			if len(args) > 0 {
				user = args[0]
			}
			if len(args) > 1 {
				repo = args[1]
			}

			return tui.Run(tui.Params{
				User:   user,
				Repo:   repo,
				Token:  config.Token(),
				Source: newSource(),
			})
		},
	}
}
