package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/dialogtree/internal/envstruct"
	"github.com/myrjola/dialogtree/internal/errors"
	"github.com/myrjola/dialogtree/internal/loader"
	"github.com/myrjola/dialogtree/internal/logging"
	"github.com/spf13/cobra"
)

// config holds the environment-driven defaults. Flags override these.
type config struct {
	Out    string `env:"DIALOGTREE_OUT" envDefault:"dialogues.html"`
	Title  string `env:"DIALOGTREE_TITLE" envDefault:"Dialogues PNJ"`
	Minify bool   `env:"DIALOGTREE_MINIFY" envDefault:"false"`
	Addr   string `env:"DIALOGTREE_ADDR" envDefault:"localhost:4000"`
}

var (
	cfg     config
	logger  *slog.Logger
	verbose bool

	// input flags shared by every command that loads a dataset
	inputMode    string
	npcsPath     string
	messagesPath string
	repliesPath  string
	dialogsPath  string
	metadataPath string
	xliffPaths   []string
)

var rootCmd = &cobra.Command{
	Use:           "dialogtree",
	Long:          `Reconciles NPC dialog exports into a single browsable HTML document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env file is fine, commands run on flags and defaults.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "load .env")
		}
		if err := envstruct.Populate(&cfg, os.LookupEnv); err != nil {
			return errors.Wrap(err, "populate config from environment")
		}
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		handler := logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		logger = slog.New(handler)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	for _, cmd := range []*cobra.Command{buildCmd, statsCmd, searchCmd} {
		cmd.Flags().StringVar(&inputMode, "mode", "json", "input mode: json or xliff")
		cmd.Flags().StringVar(&npcsPath, "npcs", "npcs.json", "NPC export")
		cmd.Flags().StringVar(&messagesPath, "messages", "messages.json", "message export")
		cmd.Flags().StringVar(&repliesPath, "replies", "replies.json", "reply export")
		cmd.Flags().StringVar(&dialogsPath, "dialogs", "dialogs.json", "dialog export")
		cmd.Flags().StringVar(&metadataPath, "metadata", "", "character metadata export")
		cmd.Flags().StringSliceVar(&xliffPaths, "xliff", nil, "XLIFF translation files (xliff mode)")
	}

	rootCmd.AddCommand(buildCmd, statsCmd, searchCmd, inspectCmd, serveCmd)
}

func loaderConfig() loader.Config {
	return loader.Config{
		Mode:         loader.Mode(inputMode),
		NPCsPath:     npcsPath,
		MessagesPath: messagesPath,
		RepliesPath:  repliesPath,
		DialogsPath:  dialogsPath,
		MetadataPath: metadataPath,
		XLIFFPaths:   xliffPaths,
	}
}
