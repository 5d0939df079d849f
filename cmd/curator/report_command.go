package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"curator/internal/curation"
	"curator/internal/textutil"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the analysis report of the last run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			report, err := curation.LoadSessionReport(cfg.SessionReportPath())
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("no report at %s; start one with `curator run <topic>`", cfg.SessionReportPath())
			}
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Konu: %s\n", report.Topic)
			fmt.Fprintf(out, "Analiz tarihi: %s\n", report.AnalysisTimestamp)
			if len(report.Subtopics) == 0 {
				fmt.Fprintln(out, "No sub-topic produced a scored video")
				return nil
			}
			fmt.Fprintln(out, renderTable(out, []string{"Sub-topic", "Video", "Score", "Best", "Comment"},
				reportRows(report), []columnAlignment{alignLeft, alignLeft, alignRight}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}

func reportRows(report curation.SessionReport) [][]string {
	var rows [][]string
	for _, sub := range report.Subtopics {
		best, _ := sub.Best()
		for i, analysis := range sub.VideoAnalyses {
			name := ""
			if i == 0 {
				name = sub.Subtopic
			}
			rows = append(rows, []string{
				name,
				analysis.VideoURL,
				fmt.Sprintf("%d", analysis.Score),
				yesNo(analysis.VideoID == best.VideoID),
				textutil.Truncate(analysis.Yorum, 60),
			})
		}
	}
	return rows
}
