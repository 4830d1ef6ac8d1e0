package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/samiconductor/ghradl/internal/options"
)

func newTagsCmd() *cobra.Command {
	var token options.OnceString

	cmd := &cobra.Command{
		Use:   "tags USER REPO",
		Short: "List tags of a remote GitHub repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			cmd.SilenceUsage = true

			tags, err := newSource().ListTags(ctx, args[0], args[1], token.Value())
			if err != nil {
				return err
			}

			for _, t := range tags {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}

	cmd.Flags().VarP(&token, "token", "t", "GitHub token (accepted for symmetry; git ls-remote runs unauthenticated)")

	return cmd
}
