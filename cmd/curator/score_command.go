package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"curator/internal/scoring"
	"curator/internal/transcript"
)

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var (
		topic      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "score <url>",
		Short: "Score one video's transcript against a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic = strings.TrimSpace(topic)
			if topic == "" {
				return errors.New("--topic is required")
			}
			ref, err := transcript.ParseVideoRef(args[0])
			if err != nil {
				return err
			}
			a, err := ctx.app()
			if err != nil {
				return err
			}
			judge, err := a.judge(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := a.resolver.Resolve(cmd.Context(), ref)
			if err != nil {
				return err
			}
			score := a.scorer(judge).Score(cmd.Context(), rec.Text, topic)
			score.VideoID = ref.ID
			if jsonOutput {
				return writeJSON(cmd, score)
			}
			printScore(cmd, ref, score)
			return nil
		},
	}
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Topic to judge the transcript against")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the score record as JSON")
	return cmd
}

func printScore(cmd *cobra.Command, ref transcript.VideoRef, score scoring.Record) {
	rows := [][]string{
		{"Kapsam uyumu", fmt.Sprintf("%d", score.KapsamUyumu)},
		{"Bilgi derinliği", fmt.Sprintf("%d", score.BilgiDerinligi)},
		{"Anlatım tarzı", fmt.Sprintf("%d", score.AnlatimTarzi)},
		{"Hedef kitle", fmt.Sprintf("%d", score.HedefKitle)},
		{"Yapısal tutarlılık", fmt.Sprintf("%d", score.YapisalTutarlilik)},
		{"Genel puan", fmt.Sprintf("%d", score.GenelPuan)},
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Video: %s\n", ref.URL)
	fmt.Fprintln(out, renderTable(out, []string{"Axis", "Score"}, rows, []columnAlignment{alignLeft, alignRight}))
	fmt.Fprintf(out, "Yorum: %s\n", score.Yorum)
	if score.Degraded {
		fmt.Fprintln(out, "The judge response could not be parsed; the neutral record is shown.")
	}
}
