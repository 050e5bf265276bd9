package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/trainlog/internal/catalog"
	"github.com/verte-zerg/trainlog/internal/config"
	"github.com/verte-zerg/trainlog/internal/generator"
	"github.com/verte-zerg/trainlog/internal/query"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultSeedSessions = 12

func newSeedCmd(a *app) *cobra.Command {
	var (
		sessions    int
		catalogPath string
		seed        int64
		start       string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Append generated sample sessions to the log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sessions < 1 {
				return fmt.Errorf("--sessions must be >= 1")
			}
			exercises := catalog.Default
			if catalogPath != "" {
				loaded, err := catalog.Load(config.ExpandHome(catalogPath))
				if err != nil {
					return fmt.Errorf("failed to load catalog: %w", err)
				}
				exercises = loaded
			}
			exercises = catalog.Dedupe(exercises)
			if len(exercises) == 0 {
				return fmt.Errorf("catalog has no usable exercises")
			}

			first := a.journal.Now().AddDate(0, 0, -3*sessions).Truncate(24 * time.Hour)
			if start != "" {
				day, err := query.ParseDay(start)
				if err != nil {
					return err
				}
				first = day
			}

			records := generator.NewWithSeed(seed).Generate(exercises, sessions, first)
			n, err := a.journal.AddAll(cmd.Context(), records)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d record(s) over %d session(s)\n", n, sessions)
			return err
		},
	}
	cmd.Flags().IntVar(&sessions, "sessions", defaultSeedSessions, "number of training days to generate")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "exercise catalog file (name or name|start|step per line)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = random)")
	cmd.Flags().StringVar(&start, "start", "", "first session day (YYYY-MM-DD)")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "config",
		Short:       "Create/open config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationBare: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			return openConfig(a.configPath)
		},
	}
}

func openConfig(path string) error {
	if err := config.EnsureFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationBare: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "trainlog %s (commit %s, built %s)\n", version, commit, date)
			return err
		},
	}
}
