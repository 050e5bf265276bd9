package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/trainlog/internal/model"
)

// filterFlags selects the listing that record numbers refer to.
type filterFlags struct {
	from     string
	to       string
	exercise string
}

// register adds --from, --to and an exercise filter named exerciseFlag.
func (f *filterFlags) register(cmd *cobra.Command, exerciseFlag string) {
	cmd.Flags().StringVar(&f.from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&f.exercise, exerciseFlag, "", "exercise name filter (case-insensitive)")
}

func (f filterFlags) filter() model.ListFilter {
	return model.ListFilter{From: f.from, To: f.to, Exercise: f.exercise}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <exercise> <weight> <reps>",
		Short: "Log a set with the current time",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.journal.Add(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s x %s at %s\n", rec.Exercise, rec.Weight, rec.Repetitions, rec.Date)
			return err
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, optionally filtered by date range and exercise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := a.journal.List(cmd.Context(), filters.filter())
			if err != nil {
				return err
			}
			return renderRecords(cmd.OutOrStdout(), records)
		},
	}
	filters.register(cmd, "exercise")
	return cmd
}

func renderRecords(w io.Writer, records model.Collection) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{strconv.Itoa(i + 1), r.Date, r.Exercise, r.Weight, r.Repetitions}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Date", "Exercise", "Weight", "Reps").
		Rows(rows...).
		StyleFunc(func(_, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 || col == 3 || col == 4 {
				return style.Align(lipgloss.Right)
			}
			return style
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newEditCmd(a *app) *cobra.Command {
	var (
		filters  filterFlags
		date     string
		exercise string
		weight   string
		reps     string
	)
	cmd := &cobra.Command{
		Use:   "edit <n>",
		Short: "Change fields of record #n from `list` (same filters)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.pick(cmd.Context(), args[0], filters.filter())
			if err != nil {
				return err
			}
			var fields model.Fields
			for _, f := range []struct {
				flag   string
				value  string
				target **string
			}{
				{"date", date, &fields.Date},
				{"exercise", exercise, &fields.Exercise},
				{"weight", weight, &fields.Weight},
				{"reps", reps, &fields.Repetitions},
			} {
				if !cmd.Flags().Changed(f.flag) {
					continue
				}
				value := strings.TrimSpace(f.value)
				if value == "" {
					return fmt.Errorf("--%s: %w", f.flag, model.ErrEmptyField)
				}
				*f.target = &value
			}
			if fields.Empty() {
				return fmt.Errorf("nothing to change: set --date, --exercise, --weight or --reps")
			}
			updated, err := a.journal.Edit(cmd.Context(), rec.Key(), fields)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s %s %s x %s\n", updated.Date, updated.Exercise, updated.Weight, updated.Repetitions)
			return err
		},
	}
	filters.register(cmd, "match")
	cmd.Flags().StringVar(&date, "date", "", "new timestamp (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().StringVar(&exercise, "exercise", "", "new exercise name")
	cmd.Flags().StringVar(&weight, "weight", "", "new weight")
	cmd.Flags().StringVar(&reps, "reps", "", "new repetitions")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var (
		filters filterFlags
		yes     bool
	)
	cmd := &cobra.Command{
		Use:   "delete <n>",
		Short: "Delete record #n from `list` (same filters)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.pick(cmd.Context(), args[0], filters.filter())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes {
				ok, err := confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete %s %s x %s from %s?", rec.Exercise, rec.Weight, rec.Repetitions, rec.Date))
				if err != nil {
					return err
				}
				if !ok {
					_, err := fmt.Fprintln(out, "Cancelled.")
					return err
				}
			}
			removed, err := a.journal.Delete(cmd.Context(), rec.Key())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Deleted %d record(s).\n", removed)
			return err
		},
	}
	filters.register(cmd, "match")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

// pick resolves a 1-based record number against the filtered listing.
func (a *app) pick(ctx context.Context, arg string, filter model.ListFilter) (model.Record, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil {
		return model.Record{}, fmt.Errorf("invalid record number %q", arg)
	}
	records, err := a.journal.List(ctx, filter)
	if err != nil {
		return model.Record{}, err
	}
	if n < 1 || n > len(records) {
		return model.Record{}, fmt.Errorf("%w: #%d (listing has %d records)", model.ErrNoSelection, n, len(records))
	}
	return records[n-1], nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", prompt); err != nil {
		return false, err
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
