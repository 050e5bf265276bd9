package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/trainlog/internal/model"
	"github.com/verte-zerg/trainlog/internal/stats"
	"github.com/verte-zerg/trainlog/internal/statsui"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		filters filterFlags
		window  int
		useTUI  bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show totals per exercise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyIntConfig(cmd, "window", &window, &a.cfg.CurveWindow)
			if window < 1 {
				return fmt.Errorf("--window must be >= 1")
			}
			cfg := model.StatsConfig{
				From:        filters.from,
				To:          filters.to,
				Exercise:    filters.exercise,
				CurveWindow: window,
			}
			if useTUI {
				program := tea.NewProgram(statsui.NewModel(a.store, cfg, a.cfg.ChartHeight), tea.WithAltScreen())
				if _, err := program.Run(); err != nil {
					return fmt.Errorf("failed to run stats TUI: %w", err)
				}
				return nil
			}

			report, err := stats.BuildReport(cmd.Context(), a.store, cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := stats.RenderSummary(out, report); err != nil {
				return err
			}
			if len(report.Records) == 0 {
				return nil
			}
			if _, err := fmt.Fprintln(out, "Weight by exercise"); err != nil {
				return err
			}
			if err := stats.RenderTotals(out, report.Totals); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(out, ""); err != nil {
				return err
			}
			return stats.RenderBests(out, stats.PersonalBests(report.Records))
		},
	}
	filters.register(cmd, "exercise")
	cmd.Flags().IntVar(&window, "window", defaultCurveWindow, "moving average window for charts")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "open the interactive stats screen")
	return cmd
}

func newProgressCmd(a *app) *cobra.Command {
	var (
		window int
		height int
		width  int
	)
	cmd := &cobra.Command{
		Use:   "progress <exercise>",
		Short: "Chart weight and repetitions over time for one exercise (exact name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyIntConfig(cmd, "window", &window, &a.cfg.CurveWindow)
			applyIntConfig(cmd, "height", &height, &a.cfg.ChartHeight)
			if window < 1 {
				return fmt.Errorf("--window must be >= 1")
			}
			if height < 1 {
				return fmt.Errorf("--height must be >= 1")
			}
			points, err := a.journal.Series(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return stats.RenderProgressWithSize(cmd.OutOrStdout(), args[0], points, window, width, height, false)
		},
	}
	cmd.Flags().IntVar(&window, "window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&height, "height", defaultChartHeight, "chart height in rows")
	cmd.Flags().IntVar(&width, "width", 0, "total chart width (default: terminal width)")
	return cmd
}

func newExercisesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exercises",
		Short: "List distinct exercise names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := a.journal.Exercises(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			return nil
		},
	}
}
