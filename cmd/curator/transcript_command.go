package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/textutil"
	"curator/internal/transcript"
)

const transcriptPreviewChars = 600

func newTranscriptCommand(ctx *commandContext) *cobra.Command {
	var (
		full       bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "transcript <url>",
		Short: "Acquire and store the transcript of one video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := transcript.ParseVideoRef(args[0])
			if err != nil {
				return err
			}
			a, err := ctx.app()
			if err != nil {
				return err
			}
			rec, err := a.resolver.Resolve(cmd.Context(), ref)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, rec)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Video:      %s\n", rec.SourceURL)
			fmt.Fprintf(out, "Tier:       %s\n", rec.Tier)
			fmt.Fprintf(out, "Language:   %s\n", valueOrDash(rec.DetectedLanguage))
			fmt.Fprintf(out, "Characters: %d\n", len([]rune(rec.Text)))
			fmt.Fprintf(out, "Stored:     %s\n\n", a.store.Path(transcript.VideoKey(rec.SourceURL)))
			text := rec.Text
			if !full {
				text = textutil.Truncate(text, transcriptPreviewChars)
			}
			fmt.Fprintln(out, text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "Print the whole transcript")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the stored record as JSON")
	return cmd
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
