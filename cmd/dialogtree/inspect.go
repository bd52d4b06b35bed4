package main

import (
	"log/slog"
	"os"

	"github.com/myrjola/dialogtree/internal/errors"
	"github.com/myrjola/dialogtree/internal/inspect"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [document]",
	Short: "Parse a generated document and print its node counts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Out
		if len(args) == 1 {
			path = args[0]
		}
		file, err := os.Open(path)
		if err != nil {
			return errors.Wrap(err, "open document", slog.String("path", path))
		}
		defer func() {
			_ = file.Close()
		}()

		report, err := inspect.Document(file)
		if err != nil {
			return errors.Wrap(err, "inspect document", slog.String("path", path))
		}
		return report.WriteText(cmd.OutOrStdout())
	},
}
