package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/mood-journal/internal/api/dto"
)

func newDashboardCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your mood and health overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := rt.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			dash, err := rt.container.Dashboard.Build(sess)
			if err != nil {
				return err
			}
			if rt.jsonOut {
				return printJSON(cmd.OutOrStdout(), dash)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, dash.Greeting)
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Moods logged:   %d\n", dash.Moods.Total)
			fmt.Fprintf(w, "Last mood:      %s\n", dash.Moods.LastMood)
			fmt.Fprintf(w, "Health entries: %d\n", dash.Entries.Total)
			if dash.Entries.Total > 0 {
				avg := dash.Entries.Averages
				fmt.Fprintf(w, "Averages:       sleep %.1fh, stress %.1f, symptoms %.1f, mood %.1f, engagement %.1f\n",
					avg.Sleep, avg.Stress, avg.Symptoms, avg.Mood, avg.Engagement)
			}
			if len(dash.Moods.Recent) > 0 {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "Recent moods:")
				if err := printMoods(w, dash.Moods.Recent); err != nil {
					return err
				}
			}
			if need := rt.container.Trends.MinMoods(); dash.Moods.Total < need {
				fmt.Fprintf(w, "\nLog %d more mood(s) to unlock trend analysis.\n", need-dash.Moods.Total)
			}
			return nil
		},
	}
}

func newAnalyzeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Summarize your mood trends with AI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := rt.signedIn(ctx)
			if err != nil {
				return err
			}
			summary, err := rt.container.Trends.Analyze(ctx, sess)
			if err != nil {
				return err
			}
			if rt.jsonOut {
				return printJSON(cmd.OutOrStdout(), dto.AnalysisResponse{TrendSummary: summary})
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}
