package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/mood-journal/internal/api/dto"
	"github.com/spec-kit/mood-journal/internal/domain"
)

func newMoodCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Log and manage moods",
	}
	cmd.AddCommand(
		newMoodLogCmd(rt),
		newMoodListCmd(rt),
		newMoodShowCmd(rt),
		newMoodEditCmd(rt),
		newMoodDeleteCmd(rt),
	)
	return cmd
}

func newMoodLogCmd(rt *runtime) *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:       "log <mood>",
		Short:     "Log how you feel right now",
		Long:      "Log how you feel right now. Moods: happy, sad, angry, stressed, excited.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: moodNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.MoodRequest{Mood: domain.MoodValue(args[0]), Note: note}
			if err := req.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			sess, err := rt.signedIn(ctx)
			if err != nil {
				return err
			}
			mood, err := rt.container.Moods.Add(ctx, sess, req.ToDomain())
			if err != nil {
				return err
			}
			if rt.jsonOut {
				return printJSON(cmd.OutOrStdout(), dto.ToMoodResponse(mood))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%s).\n", mood.Mood, mood.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&note, "note", "n", "", "optional note (max 500 characters)")
	return cmd
}

func newMoodListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List moods, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := rt.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			moods := rt.container.Moods.List(sess)
			if rt.jsonOut {
				return printJSON(cmd.OutOrStdout(), dto.ToMoodResponses(moods))
			}
			return printMoods(cmd.OutOrStdout(), moods)
		},
	}
}

func newMoodShowCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one mood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := rt.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			mood, ok := rt.container.Moods.Get(sess, args[0])
			if !ok {
				return fmt.Errorf("mood %s not found", args[0])
			}
			if rt.jsonOut {
				return printJSON(cmd.OutOrStdout(), dto.ToMoodResponse(mood))
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ID:      %s\n", mood.ID)
			fmt.Fprintf(w, "Mood:    %s\n", mood.Mood)
			fmt.Fprintf(w, "Logged:  %s\n", formatInstant(mood.Timestamp))
			if mood.Note != "" {
				fmt.Fprintf(w, "Note:    %s\n", mood.Note)
			}
			return nil
		},
	}
}

func newMoodEditCmd(rt *runtime) *cobra.Command {
	var mood, note string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the mood or note of a logged mood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := rt.signedIn(ctx)
			if err != nil {
				return err
			}
			existing, ok := rt.container.Moods.Get(sess, args[0])
			if !ok {
				return fmt.Errorf("mood %s not found", args[0])
			}

			req := dto.MoodRequest{Mood: existing.Mood, Note: existing.Note}
			if cmd.Flags().Changed("mood") {
				req.Mood = domain.MoodValue(mood)
			}
			if cmd.Flags().Changed("note") {
				req.Note = note
			}
			if err := req.Validate(); err != nil {
				return err
			}

			updated := *existing
			updated.Mood = req.Mood
			updated.Note = req.Note
			if err := rt.container.Moods.Update(ctx, sess, &updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.\n", updated.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&mood, "mood", "m", "", "new mood")
	cmd.Flags().StringVarP(&note, "note", "n", "", "new note")
	return cmd
}

func newMoodDeleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a logged mood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := rt.signedIn(ctx)
			if err != nil {
				return err
			}
			if err := rt.container.Moods.Delete(ctx, sess, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
			return nil
		},
	}
}

func moodNames() []string {
	names := make([]string, 0, len(domain.MoodValues))
	for _, m := range domain.MoodValues {
		names = append(names, string(m))
	}
	return names
}
