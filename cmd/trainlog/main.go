// Package main provides the CLI entrypoint for trainlog.
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/verte-zerg/trainlog/internal/config"
	"github.com/verte-zerg/trainlog/internal/journal"
	"github.com/verte-zerg/trainlog/internal/logging"
	"github.com/verte-zerg/trainlog/internal/model"
	"github.com/verte-zerg/trainlog/internal/store"
	"github.com/verte-zerg/trainlog/internal/tui"
)

const (
	defaultBackend     = store.BackendJSON
	defaultLogLevel    = "info"
	defaultChartHeight = 10
	defaultCurveWindow = 1
)

// annotationBare marks commands that run without config, logging or store.
const annotationBare = "bare"

// app carries the resolved settings and open resources for one invocation.
type app struct {
	configPath string
	storePath  string
	backend    string
	logLevel   string

	file    config.FileConfig
	cfg     model.Config
	store   store.Store
	journal *journal.Journal
	logs    io.Closer

	journalOpts []journal.Option
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(opts ...journal.Option) *cobra.Command {
	a := &app{journalOpts: opts}
	rootCmd := &cobra.Command{
		Use:   "trainlog",
		Short: "Workout log with CSV import/export, stats and progress charts",
		Long: "trainlog records sets (exercise, weight, repetitions) with a timestamp.\n" +
			"Run without a subcommand to browse and edit records in the terminal UI.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
		RunE: a.runBrowser,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultConfigPath(), "config file path")
	flags.StringVar(&a.storePath, "store", "", "record store path (default: data dir)")
	flags.StringVar(&a.backend, "backend", defaultBackend, "storage backend (json|sqlite)")
	flags.StringVar(&a.logLevel, "log-level", defaultLogLevel, "log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newStatsCmd(a),
		newProgressCmd(a),
		newExercisesCmd(a),
		newSeedCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[annotationBare] == "true" {
		return nil
	}
	fileCfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.file = fileCfg
	a.cfg = a.resolveConfig(cmd)
	if err := validateConfig(a.cfg); err != nil {
		return err
	}

	logs, err := logging.Setup(logging.SetupParams{
		LogFileName:   a.cfg.LogFile,
		LogLevel:      a.cfg.LogLevel,
		LogFormatJSON: a.cfg.LogJSON,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	a.logs = logs

	st, err := store.Open(a.cfg.Backend, a.cfg.StorePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	a.store = st
	a.journal = journal.New(st, a.journalOpts...)
	logrus.WithFields(logrus.Fields{
		"command": cmd.CommandPath(),
		"backend": a.cfg.Backend,
		"store":   a.cfg.StorePath,
	}).Debug("store opened")
	return nil
}

func (a *app) close() error {
	var err error
	if a.store != nil {
		err = multierr.Append(err, a.store.Close())
		a.store = nil
	}
	if a.logs != nil {
		err = multierr.Append(err, a.logs.Close())
		a.logs = nil
	}
	return err
}

func (a *app) resolveConfig(cmd *cobra.Command) model.Config {
	backend := a.backend
	applyStringConfig(cmd, "backend", &backend, a.file.Storage.Backend)
	storePath := a.storePath
	applyStringConfig(cmd, "store", &storePath, a.file.Storage.Path)
	if storePath == "" {
		storePath = config.DefaultStorePath(backend)
	}
	logLevel := a.logLevel
	applyStringConfig(cmd, "log-level", &logLevel, a.file.Log.Level)

	cfg := model.Config{
		Backend:     backend,
		StorePath:   config.ExpandHome(storePath),
		LogLevel:    logLevel,
		LogFile:     config.DefaultLogPath(),
		ChartHeight: defaultChartHeight,
		CurveWindow: defaultCurveWindow,
		ImportMode:  model.ImportAppend,
	}
	if v := a.file.Log.File; v != nil && *v != "" {
		cfg.LogFile = config.ExpandHome(*v)
	}
	if v := a.file.Log.JSON; v != nil {
		cfg.LogJSON = *v
	}
	if v := a.file.Chart.Height; v != nil {
		cfg.ChartHeight = *v
	}
	if v := a.file.Chart.Window; v != nil {
		cfg.CurveWindow = *v
	}
	if v := a.file.Import.Mode; v != nil {
		cfg.ImportMode = model.ImportMode(*v)
	}
	return cfg
}

func validateConfig(cfg model.Config) error {
	switch cfg.Backend {
	case store.BackendJSON, store.BackendSQLite:
	default:
		return fmt.Errorf("--backend must be %s or %s, got %q", store.BackendJSON, store.BackendSQLite, cfg.Backend)
	}
	if cfg.ChartHeight <= 0 {
		return fmt.Errorf("chart.height must be > 0")
	}
	if cfg.CurveWindow < 1 {
		return fmt.Errorf("chart.window must be >= 1")
	}
	switch cfg.ImportMode {
	case model.ImportAppend, model.ImportReplace:
	default:
		return fmt.Errorf("import.mode must be %s or %s, got %q", model.ImportAppend, model.ImportReplace, cfg.ImportMode)
	}
	return nil
}

func (a *app) runBrowser(_ *cobra.Command, _ []string) error {
	program := tea.NewProgram(tui.NewModel(a.journal, model.ListFilter{}), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
