package main

import (
	"log/slog"
	"os"
	"sync"

	"github.com/myrjola/dialogtree/internal/errors"
	"github.com/myrjola/dialogtree/internal/loader"
	"github.com/myrjola/dialogtree/internal/progress"
	"github.com/myrjola/dialogtree/internal/render"
	"github.com/spf13/cobra"
)

func init() {
	buildCmd.Flags().String("out", "", "output document path, overrides DIALOGTREE_OUT")
	buildCmd.Flags().Bool("minify", false, "minify the output document")
	buildCmd.Flags().String("title", "", "document title, overrides DIALOGTREE_TITLE")
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Load the exports and write the HTML document",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cfg.Out
		if flagOut, _ := cmd.Flags().GetString("out"); flagOut != "" {
			out = flagOut
		}
		title := cfg.Title
		if flagTitle, _ := cmd.Flags().GetString("title"); flagTitle != "" {
			title = flagTitle
		}
		minify := cfg.Minify
		if cmd.Flags().Changed("minify") {
			minify, _ = cmd.Flags().GetBool("minify")
		}

		bus := progress.NewBus()
		go bus.Start()
		events := bus.Subscribe(64)
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for event := range events {
				logger.Info(event.Message,
					slog.String("stage", string(event.Stage)),
					slog.Int("count", event.N))
			}
		}()

		ds, err := loader.Load(loaderConfig(), logger, bus)
		if err != nil {
			bus.Stop()
			wg.Wait()
			return errors.Wrap(err, "load dataset")
		}
		for _, warning := range ds.Report.Warnings {
			logger.Warn(warning)
		}

		doc, err := render.HTML(ds, render.Options{Title: title, Minify: minify}, bus)
		bus.Stop()
		wg.Wait()
		if err != nil {
			return errors.Wrap(err, "render document")
		}

		if err := os.WriteFile(out, doc, 0o644); err != nil {
			return errors.Wrap(err, "write document", slog.String("path", out))
		}
		logger.Info("document written", slog.String("path", out), slog.Int("bytes", len(doc)))
		return nil
	},
}
