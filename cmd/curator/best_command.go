package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/curation"
)

func newBestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "best",
		Short: "Print the winning video URLs of the last run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			urls, err := curation.NewBestVideoList(cfg.BestVideosPath()).Read()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(urls) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No winning videos recorded")
				return nil
			}
			for _, url := range urls {
				fmt.Fprintln(out, url)
			}
			return nil
		},
	}
}
