package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/myrjola/dialogtree/internal/errors"
	"github.com/myrjola/dialogtree/internal/loader"
	"github.com/myrjola/dialogtree/internal/stats"
	"github.com/spf13/cobra"
)

func init() {
	statsCmd.Flags().String("format", "text", "output format: text, csv or json")
	statsCmd.Flags().String("out", "", "write to file instead of stdout")
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Load the exports and print dataset statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loader.Load(loaderConfig(), logger, nil)
		if err != nil {
			return errors.Wrap(err, "load dataset")
		}
		summary := stats.Summarize(ds)

		var w io.Writer = cmd.OutOrStdout()
		if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
			file, err := os.Create(outPath)
			if err != nil {
				return errors.Wrap(err, "create output file", slog.String("path", outPath))
			}
			defer func() {
				_ = file.Close()
			}()
			w = file
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "csv":
			return summary.WriteCSV(w)
		case "json":
			return summary.WriteJSON(w)
		case "text":
			return summary.WriteText(w)
		default:
			return errors.New("unknown format", slog.String("format", format))
		}
	},
}
