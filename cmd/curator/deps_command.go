package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check the external tools a run needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries(deps.Requirements(cfg.Captions.YTDLPBinary, cfg.WhisperX.Enabled))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				location := status.Path
				if !status.Available {
					location = status.Detail
				}
				rows = append(rows, []string{status.Name, yesNo(status.Available), yesNo(!status.Optional), location, status.Description})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Tool", "Found", "Required", "Location", "Used for"}, rows, nil))
			return deps.Missing(statuses)
		},
	}
}
