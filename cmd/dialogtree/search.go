package main

import (
	"fmt"

	"github.com/myrjola/dialogtree/internal/dialog"
	"github.com/myrjola/dialogtree/internal/errors"
	"github.com/myrjola/dialogtree/internal/loader"
	"github.com/myrjola/dialogtree/internal/search"
	"github.com/spf13/cobra"
)

func init() {
	searchCmd.Flags().String("type", "text", "search type: text, npc-name, npc-id, message-id or reply-id")
	searchCmd.Flags().Bool("exact", false, "match whole words only")
	searchCmd.Flags().Bool("keep-diacritics", false, "do not fold accents before matching")
	searchCmd.Flags().Bool("wildcards", false, "expand * to any non-whitespace run")
	searchCmd.Flags().Bool("null-only", false, "select cards with at least one missing text")
	searchCmd.Flags().StringSlice("lang", nil, "restrict scanned languages, e.g. --lang fr,en")
}

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Load the exports and print the NPC cards matching a query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loader.Load(loaderConfig(), logger, nil)
		if err != nil {
			return errors.Wrap(err, "load dataset")
		}

		opts := search.Options{Type: search.TypeText}
		if len(args) == 1 {
			opts.Term = args[0]
		}
		searchType, _ := cmd.Flags().GetString("type")
		opts.Type = search.Type(searchType)
		opts.ExactMatch, _ = cmd.Flags().GetBool("exact")
		keepDiacritics, _ := cmd.Flags().GetBool("keep-diacritics")
		opts.IgnoreDiacritics = !keepDiacritics
		opts.UseWildcards, _ = cmd.Flags().GetBool("wildcards")
		opts.NullOnly, _ = cmd.Flags().GetBool("null-only")
		langs, _ := cmd.Flags().GetStringSlice("lang")
		for _, lang := range langs {
			opts.Languages = append(opts.Languages, dialog.Language(lang))
		}

		ids, err := search.Evaluate(ds, opts)
		if err != nil {
			return errors.Wrap(err, "evaluate search")
		}
		for _, id := range ids {
			name, _ := ds.NPCs[id].Names.Get(dialog.French)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", id, name)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d matching cards\n", len(ids))
		return nil
	},
}
