package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"curator/internal/curation"
	"curator/internal/deps"
	"curator/internal/staging"
	"curator/internal/textutil"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var skipDepCheck bool

	cmd := &cobra.Command{
		Use:   "run <topic>",
		Short: "Find the best video for every sub-topic of a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.TrimSpace(strings.Join(args, " "))
			a, err := ctx.app()
			if err != nil {
				return err
			}
			if !skipDepCheck {
				statuses := deps.CheckBinaries(deps.Requirements(a.cfg.Captions.YTDLPBinary, a.cfg.WhisperX.Enabled))
				if err := deps.Missing(statuses); err != nil {
					return err
				}
			}
			staging.CleanStale(cmd.Context(), a.cfg.Paths.TempDir, staging.DefaultMaxAge, a.logger)
			pipeline, err := a.pipeline(cmd.Context())
			if err != nil {
				return err
			}

			summary, err := pipeline.Run(cmd.Context(), topic)
			if curation.IsLocked(err) {
				return fmt.Errorf("%w; wait for the other run to finish", err)
			}
			if summary.RunID != "" {
				printRunSummary(cmd, summary, a.cfg.Captions.PrimaryLanguage)
				fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\n", a.cfg.SessionReportPath())
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&skipDepCheck, "skip-dependency-check", false, "Run without checking for yt-dlp, ffmpeg and uvx")
	return cmd
}

func printRunSummary(cmd *cobra.Command, summary curation.RunSummary, lang string) {
	winners := make(map[string]curation.Winner, len(summary.Winners))
	for _, w := range summary.Winners {
		winners[w.Subtopic] = w
	}
	rows := make([][]string, 0, len(summary.Subtopics))
	for i, subtopic := range summary.Subtopics {
		video, title := "-", ""
		if w, ok := winners[subtopic]; ok {
			video = w.Video.URL
			title = w.Video.Title
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			textutil.TitleCase(subtopic, lang),
			video,
			title,
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: %d of %d sub-topics have a recommended video\n",
		summary.RunID, len(summary.Winners), len(summary.Subtopics))
	fmt.Fprintln(out, renderTable(out, []string{"#", "Sub-topic", "Video", "Title"}, rows, []columnAlignment{alignRight}))
}
