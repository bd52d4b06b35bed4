// Package loader reads the source exports and reconciles them into a
// dialog.Dataset. Two input modes exist and are never mixed within one run:
// plain JSON exports for every entity type, or XLIFF translation files
// combined with structure-only JSON exports.
//
// Tolerance policy: a malformed record is skipped and counted, never fatal.
// Only structurally required files (dialogs in both modes, replies in
// translation-file mode) fail the whole load when missing or unparseable.
package loader

import (
	"github.com/myrjola/dialogtree/internal/dialog"
	"github.com/myrjola/dialogtree/internal/errors"
	"github.com/myrjola/dialogtree/internal/progress"
	"log/slog"
)

var (
	ErrMissingFile = errors.NewSentinel("missing file")
	ErrParse       = errors.NewSentinel("parse error")
	ErrBadConfig   = errors.NewSentinel("bad loader config")
)

// Mode selects the input shape.
type Mode string

const (
	// ModeJSON loads all five entity exports as JSON.
	ModeJSON Mode = "json"
	// ModeXLIFF loads texts from XLIFF translation files and relationships
	// from the dialogs and replies JSON exports.
	ModeXLIFF Mode = "xliff"
)

// Config names the input files for one load.
type Config struct {
	Mode         Mode
	NPCsPath     string
	MessagesPath string
	RepliesPath  string
	DialogsPath  string
	MetadataPath string
	XLIFFPaths   []string
}

type loader struct {
	ds     *dialog.Dataset
	logger *slog.Logger
	bus    *progress.Bus
}

// Load runs the whole reconciliation pipeline: read, merge (translation-file
// mode), link, and metadata matching. The returned dataset is fully linked
// and ready to render. bus may be nil.
func Load(cfg Config, logger *slog.Logger, bus *progress.Bus) (*dialog.Dataset, error) {
	l := &loader{
		ds:     dialog.NewDataset(),
		logger: logger,
		bus:    bus,
	}

	switch cfg.Mode {
	case ModeJSON:
		l.loadNPCs(cfg.NPCsPath)
		l.loadMessages(cfg.MessagesPath)
		l.loadReplies(cfg.RepliesPath)
		if err := l.loadDialogs(cfg.DialogsPath); err != nil {
			return nil, err
		}

	case ModeXLIFF:
		table := l.loadTranslations(cfg.XLIFFPaths)
		structure, err := l.loadReplyStructure(cfg.RepliesPath)
		if err != nil {
			return nil, err
		}
		if err = l.loadDialogs(cfg.DialogsPath); err != nil {
			return nil, err
		}
		l.mergeTranslations(table, structure)

	default:
		return nil, errors.Wrap(ErrBadConfig, "unknown mode", slog.String("mode", string(cfg.Mode)))
	}

	l.loadMetadata(cfg.MetadataPath)

	l.ds.Link()
	bus.Publish(progress.Event{Stage: progress.StageLink, Message: "relationships linked",
		N: len(l.ds.Dialogs)})

	l.ds.MatchMetadata()
	bus.Publish(progress.Event{Stage: progress.StageMetadata, Message: "metadata matched",
		N: len(l.ds.Metadata)})

	return l.ds, nil
}
