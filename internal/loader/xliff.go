package loader

import (
	"encoding/xml"
	"fmt"
	"github.com/myrjola/dialogtree/internal/dialog"
	"github.com/myrjola/dialogtree/internal/errors"
	"github.com/myrjola/dialogtree/internal/progress"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// XLIFF 1.2, one bilingual file per target language. French is always the
// source language of these exports.
const xliffNamespace = "urn:oasis:names:tc:xliff:document:1.2"

type xliffDocument struct {
	XMLName xml.Name    `xml:"xliff"`
	Files   []xliffFile `xml:"file"`
}

type xliffFile struct {
	SourceLanguage string      `xml:"source-language,attr"`
	TargetLanguage string      `xml:"target-language,attr"`
	Units          []transUnit `xml:"body>trans-unit"`
}

type transUnit struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source"`
	Target string `xml:"target"`
}

// entryKind is the middle segment of a trans-unit id (npc.<id>.<kind>).
type entryKind string

const (
	entryName    entryKind = "name"
	entryMessage entryKind = "message"
	entryReply   entryKind = "reply"
)

type translationKey struct {
	ID   int64
	Kind entryKind
}

// translationTable accumulates texts per entity across all translation files.
// The French value is recorded once from whichever file's source is seen
// first; each file contributes its own target language.
type translationTable map[translationKey]dialog.Strings

// Translation sources prefix annotation segments like "[npc]" onto the text.
var annotationPrefix = regexp.MustCompile(`^\s*(?:\[[^\[\]]*\]\s*)+`)

// stripAnnotations removes leading bracketed annotation segments from a source
// text before it is treated as the French value.
func stripAnnotations(text string) string {
	return annotationPrefix.ReplaceAllString(text, "")
}

// primarySubtag reduces a language code like "en-US" to "en".
func primarySubtag(code string) dialog.Language {
	subtag, _, _ := strings.Cut(code, "-")
	return dialog.Language(strings.ToLower(strings.TrimSpace(subtag)))
}

func displayLanguage(lang dialog.Language) bool {
	for _, known := range dialog.DisplayLanguages {
		if lang == known {
			return true
		}
	}
	return false
}

// parseUnitID splits a trans-unit id of the shape npc.<entityId>.<entryType>.
func parseUnitID(id string) (translationKey, bool) {
	parts := strings.Split(id, ".")
	if len(parts) != 3 || parts[0] != "npc" {
		return translationKey{}, false
	}
	entityID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return translationKey{}, false
	}
	kind := entryKind(parts[2])
	switch kind {
	case entryName, entryMessage, entryReply:
		return translationKey{ID: entityID, Kind: kind}, true
	default:
		return translationKey{}, false
	}
}

// loadTranslations parses every translation file into one accumulated table.
// A missing file only costs its language; a file targeting an unknown language
// is skipped with a warning.
func (l *loader) loadTranslations(paths []string) translationTable {
	table := translationTable{}
	units := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			l.logger.Warn("translation file unavailable, its language will be absent",
				slog.String("path", path), errors.SlogError(err))
			l.ds.Report.Warn(fmt.Sprintf("translation file unavailable: %s", path))
			continue
		}
		var doc xliffDocument
		if err = xml.Unmarshal(data, &doc); err != nil {
			l.logger.Warn("translation file unparseable, its language will be absent",
				slog.String("path", path), errors.SlogError(err))
			l.ds.Report.Warn(fmt.Sprintf("translation file unparseable: %s", path))
			continue
		}
		if doc.XMLName.Space != xliffNamespace {
			l.logger.Warn("unexpected xliff namespace",
				slog.String("path", path), slog.String("namespace", doc.XMLName.Space))
		}
		for _, file := range doc.Files {
			target := primarySubtag(file.TargetLanguage)
			if !displayLanguage(target) || target == dialog.French {
				l.logger.Warn("translation file targets an unknown language, skipping",
					slog.String("path", path), slog.String("targetLanguage", file.TargetLanguage))
				l.ds.Report.Warn(fmt.Sprintf("unknown target language %q: %s", file.TargetLanguage, path))
				continue
			}
			for _, unit := range file.Units {
				key, ok := parseUnitID(unit.ID)
				if !ok {
					l.ds.Report.Skipped["translations"]++
					continue
				}
				texts, ok := table[key]
				if !ok {
					texts = dialog.Strings{}
					table[key] = texts
				}
				if _, ok = texts[dialog.French]; !ok {
					texts[dialog.French] = stripAnnotations(unit.Source)
				}
				texts[target] = unit.Target
				units++
			}
		}
	}
	l.bus.Publish(progress.Event{Stage: progress.StageRead, Message: "translation units loaded", N: units})
	return table
}
