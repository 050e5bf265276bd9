package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/trainlog/internal/model"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Write all records to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.journal.ExportCSV(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s\n", n, args[0])
			return err
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Add records from a CSV file (date,exercise,weight,repetitions)",
		Long: "Reads a CSV file with a date,exercise,weight,repetitions header and appends\n" +
			"its rows to the log. With --replace (or import.mode = \"replace\") the\n" +
			"existing records are discarded. Nothing is saved if any row is malformed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := a.cfg.ImportMode
			if cmd.Flags().Changed("replace") {
				mode = model.ImportAppend
				if replace {
					mode = model.ImportReplace
				}
			}
			n, err := a.journal.ImportCSV(cmd.Context(), args[0], mode)
			if err != nil {
				return err
			}
			verb := "Imported"
			if mode == model.ImportReplace {
				verb = "Replaced log with"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %d record(s) from %s\n", verb, n, args[0])
			return err
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "replace existing records instead of appending")
	return cmd
}
