package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spec-kit/mood-journal/internal/api/dto"
	"github.com/spec-kit/mood-journal/internal/domain"
)

type entryFlags struct {
	req dto.EntryRequest
}

func (f *entryFlags) bind(flags *pflag.FlagSet) {
	flags.StringVar(&f.req.Date, "date", "", "entry date, YYYY-MM-DD (default today)")
	flags.Float64Var(&f.req.Sleep, "sleep", 0, "hours slept, 0-24 in steps of 0.5")
	flags.IntVar(&f.req.Stress, "stress", 0, "stress level 1-10")
	flags.IntVar(&f.req.Symptoms, "symptoms", 0, "symptom severity 1-10")
	flags.IntVar(&f.req.Mood, "mood", 0, "overall mood 1-10")
	flags.IntVar(&f.req.Engagement, "engagement", 0, "engagement 1-10")
	flags.StringVar(&f.req.DrugNames, "drugs", "", "medication taken")
	flags.StringVar(&f.req.Notes, "notes", "", "notes (max 1000 characters)")
}

// overlay copies only the flags the user set onto base.
func (f *entryFlags) overlay(flags *pflag.FlagSet, base dto.EntryRequest) dto.EntryRequest {
	out := base
	flags.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "date":
			out.Date = f.req.Date
		case "sleep":
			out.Sleep = f.req.Sleep
		case "stress":
			out.Stress = f.req.Stress
		case "symptoms":
			out.Symptoms = f.req.Symptoms
		case "mood":
			out.Mood = f.req.Mood
		case "engagement":
			out.Engagement = f.req.Engagement
		case "drugs":
			out.DrugNames = f.req.DrugNames
		case "notes":
			out.Notes = f.req.Notes
		}
	})
	return out
}

func newEntryCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Record and manage daily health entries",
	}
	cmd.AddCommand(
		newEntryAddCmd(rt),
		newEntryListCmd(rt),
		newEntryShowCmd(rt),
		newEntryEditCmd(rt),
		newEntryDeleteCmd(rt),
	)
	return cmd
}

func newEntryAddCmd(rt *runtime) *cobra.Command {
	flags := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a daily health entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			req := flags.req
			if req.Date == "" {
				req.Date = now.Format("2006-01-02")
			}
			date, err := req.Validate(now)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			sess, err := rt.signedIn(ctx)
			if err != nil {
				return err
			}
			entry, err := rt.container.Entries.Add(ctx, sess, req.ToDomain(date))
			if err != nil {
				return err
			}
			if rt.jsonOut {
				return printJSON(cmd.OutOrStdout(), entry)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded entry for %s (%s).\n", formatDate(entry.Date), entry.ID)
			return nil
		},
	}
	flags.bind(cmd.Flags())
	return cmd
}

func newEntryListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List health entries, most recent date first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := rt.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			entries := rt.container.Entries.List(sess)
			if rt.jsonOut {
				if entries == nil {
					entries = []*domain.HealthEntry{}
				}
				return printJSON(cmd.OutOrStdout(), entries)
			}
			return printEntries(cmd.OutOrStdout(), entries)
		},
	}
}

func newEntryShowCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one health entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := rt.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			entry, ok := rt.container.Entries.Get(sess, args[0])
			if !ok {
				return fmt.Errorf("entry %s not found", args[0])
			}
			if rt.jsonOut {
				return printJSON(cmd.OutOrStdout(), entry)
			}
			printEntry(cmd.OutOrStdout(), entry)
			return nil
		},
	}
}

func newEntryEditCmd(rt *runtime) *cobra.Command {
	flags := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a health entry",
		Long:  "Change fields of a health entry. Only the flags you pass are changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := rt.signedIn(ctx)
			if err != nil {
				return err
			}
			existing, ok := rt.container.Entries.Get(sess, args[0])
			if !ok {
				return fmt.Errorf("entry %s not found", args[0])
			}

			req := flags.overlay(cmd.Flags(), dto.EntryRequest{
				Date:       formatDate(existing.Date),
				Sleep:      existing.Sleep,
				Stress:     existing.Stress,
				Symptoms:   existing.Symptoms,
				Mood:       existing.Mood,
				Engagement: existing.Engagement,
				DrugNames:  existing.DrugNames,
				Notes:      existing.Notes,
			})
			date, err := req.Validate(time.Now())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("date") {
				date = existing.Date
			}

			updated := req.ToDomain(date)
			updated.ID = existing.ID
			if err := rt.container.Entries.Update(ctx, sess, updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.\n", updated.ID)
			return nil
		},
	}
	flags.bind(cmd.Flags())
	return cmd
}

func newEntryDeleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a health entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := rt.signedIn(ctx)
			if err != nil {
				return err
			}
			if err := rt.container.Entries.Delete(ctx, sess, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
			return nil
		},
	}
}
