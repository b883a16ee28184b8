package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spec-kit/mood-journal/internal/domain"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(domain.TimestampLayout)
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func printMoods(w io.Writer, moods []*domain.MoodRecord) error {
	if len(moods) == 0 {
		_, err := fmt.Fprintln(w, "No moods logged yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMOOD\tLOGGED\tNOTE")
	for _, m := range moods {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Mood, formatInstant(m.Timestamp), m.Note)
	}
	return tw.Flush()
}

func printEntries(w io.Writer, entries []*domain.HealthEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No health entries yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSLEEP\tSTRESS\tSYMPTOMS\tMOOD\tENGAGEMENT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%d\t%d\t%d\t%d\n",
			e.ID, formatDate(e.Date), e.Sleep, e.Stress, e.Symptoms, e.Mood, e.Engagement)
	}
	return tw.Flush()
}

func printEntry(w io.Writer, e *domain.HealthEntry) {
	fmt.Fprintf(w, "ID:          %s\n", e.ID)
	fmt.Fprintf(w, "Date:        %s\n", formatDate(e.Date))
	fmt.Fprintf(w, "Sleep:       %.1f h\n", e.Sleep)
	fmt.Fprintf(w, "Stress:      %d/10\n", e.Stress)
	fmt.Fprintf(w, "Symptoms:    %d/10\n", e.Symptoms)
	fmt.Fprintf(w, "Mood:        %d/10\n", e.Mood)
	fmt.Fprintf(w, "Engagement:  %d/10\n", e.Engagement)
	if e.DrugNames != "" {
		fmt.Fprintf(w, "Medication:  %s\n", e.DrugNames)
	}
	if e.Notes != "" {
		fmt.Fprintf(w, "Notes:       %s\n", e.Notes)
	}
}
