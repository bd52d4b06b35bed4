// Package stats summarizes a reconciled dataset: entity counts, load tolerance
// counters and per-language text quality tallies.
package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/myrjola/dialogtree/internal/dialog"
	"github.com/myrjola/dialogtree/internal/errors"
)

// bareAnnotation matches a text that consists only of bracketed annotations,
// e.g. "[PLACEHOLDER]" or "[npc] [wip]".
var bareAnnotation = regexp.MustCompile(`^\s*(?:\[[^\[\]]*\]\s*)*$`)

// LanguageTally splits the texts of one language into valid content,
// placeholders and nulls. A placeholder is non-null but carries no real
// content: empty after trimming, a bare bracketed annotation, or one of the
// conventional filler strings.
type LanguageTally struct {
	Valid       int `json:"valid"`
	Placeholder int `json:"placeholder"`
	Null        int `json:"null"`
}

// Summary is the aggregate view printed by the stats command.
type Summary struct {
	NPCs     int `json:"npcs"`
	Dialogs  int `json:"dialogs"`
	Messages int `json:"messages"`
	Replies  int `json:"replies"`
	Metadata int `json:"metadata"`

	Skipped    map[string]int `json:"skipped,omitempty"`
	Duplicates map[string]int `json:"duplicates,omitempty"`

	DanglingDialogs int `json:"dangling_dialogs"`
	DanglingReplies int `json:"dangling_replies"`

	MatchedNPCs    int     `json:"matched_npcs"`
	MatchedPercent float64 `json:"matched_percent"`

	Languages map[dialog.Language]*LanguageTally `json:"languages"`
}

func isPlaceholder(text string) bool {
	trimmed := strings.TrimSpace(text)
	switch trimmed {
	case "", "...", "-", "???":
		return true
	}
	return bareAnnotation.MatchString(text)
}

func (t *LanguageTally) count(texts dialog.Strings, lang dialog.Language) {
	text, ok := texts.Get(lang)
	switch {
	case !ok:
		t.Null++
	case isPlaceholder(text):
		t.Placeholder++
	default:
		t.Valid++
	}
}

// Summarize computes the summary of a loaded dataset. Language tallies cover
// NPC names, message texts and reply texts in the display languages.
func Summarize(ds *dialog.Dataset) Summary {
	s := Summary{
		NPCs:       len(ds.NPCs),
		Dialogs:    len(ds.Dialogs),
		Messages:   len(ds.Messages),
		Replies:    len(ds.Replies),
		Metadata:   len(ds.Metadata),
		Skipped:    ds.Report.Skipped,
		Duplicates: ds.Report.Duplicates,

		DanglingDialogs: ds.Report.DanglingDialogs,
		DanglingReplies: ds.Report.DanglingReplies,

		Languages: map[dialog.Language]*LanguageTally{},
	}
	for _, lang := range dialog.DisplayLanguages {
		s.Languages[lang] = &LanguageTally{}
	}

	for _, npc := range ds.NPCs {
		if len(npc.Genders) > 0 || len(npc.Images) > 0 {
			s.MatchedNPCs++
		}
		for _, lang := range dialog.DisplayLanguages {
			s.Languages[lang].count(npc.Names, lang)
		}
	}
	if s.NPCs > 0 {
		s.MatchedPercent = 100 * float64(s.MatchedNPCs) / float64(s.NPCs)
	}

	for _, msg := range ds.Messages {
		for _, lang := range dialog.DisplayLanguages {
			s.Languages[lang].count(msg.Texts, lang)
		}
	}
	for _, reply := range ds.Replies {
		for _, lang := range dialog.DisplayLanguages {
			s.Languages[lang].count(reply.Texts, lang)
		}
	}
	return s
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteText prints the human-readable summary.
func (s Summary) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "npcs\t%d\n", s.NPCs)
	fmt.Fprintf(&b, "dialogs\t%d\n", s.Dialogs)
	fmt.Fprintf(&b, "messages\t%d\n", s.Messages)
	fmt.Fprintf(&b, "replies\t%d\n", s.Replies)
	fmt.Fprintf(&b, "metadata\t%d\n", s.Metadata)
	for _, kind := range sortedKeys(s.Skipped) {
		fmt.Fprintf(&b, "skipped %s\t%d\n", kind, s.Skipped[kind])
	}
	for _, kind := range sortedKeys(s.Duplicates) {
		fmt.Fprintf(&b, "duplicate %s\t%d\n", kind, s.Duplicates[kind])
	}
	fmt.Fprintf(&b, "dangling dialogs\t%d\n", s.DanglingDialogs)
	fmt.Fprintf(&b, "dangling replies\t%d\n", s.DanglingReplies)
	fmt.Fprintf(&b, "matched npcs\t%d (%.1f%%)\n", s.MatchedNPCs, s.MatchedPercent)
	for _, lang := range dialog.DisplayLanguages {
		t := s.Languages[lang]
		fmt.Fprintf(&b, "%s\tvalid %d\tplaceholder %d\tnull %d\n", lang, t.Valid, t.Placeholder, t.Null)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "write text summary")
	}
	return nil
}

// WriteCSV exports the per-language tallies plus the scalar counters as rows of
// metric,language,value.
func (s Summary) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"metric", "language", "value"},
		{"npcs", "", strconv.Itoa(s.NPCs)},
		{"dialogs", "", strconv.Itoa(s.Dialogs)},
		{"messages", "", strconv.Itoa(s.Messages)},
		{"replies", "", strconv.Itoa(s.Replies)},
		{"metadata", "", strconv.Itoa(s.Metadata)},
		{"dangling_dialogs", "", strconv.Itoa(s.DanglingDialogs)},
		{"dangling_replies", "", strconv.Itoa(s.DanglingReplies)},
		{"matched_npcs", "", strconv.Itoa(s.MatchedNPCs)},
		{"matched_percent", "", strconv.FormatFloat(s.MatchedPercent, 'f', 1, 64)},
	}
	for _, kind := range sortedKeys(s.Skipped) {
		rows = append(rows, []string{"skipped_" + kind, "", strconv.Itoa(s.Skipped[kind])})
	}
	for _, kind := range sortedKeys(s.Duplicates) {
		rows = append(rows, []string{"duplicate_" + kind, "", strconv.Itoa(s.Duplicates[kind])})
	}
	for _, lang := range dialog.DisplayLanguages {
		t := s.Languages[lang]
		rows = append(rows,
			[]string{"valid", string(lang), strconv.Itoa(t.Valid)},
			[]string{"placeholder", string(lang), strconv.Itoa(t.Placeholder)},
			[]string{"null", string(lang), strconv.Itoa(t.Null)},
		)
	}
	if err := cw.WriteAll(rows); err != nil {
		return errors.Wrap(err, "write csv summary")
	}
	return nil
}

// WriteJSON exports the summary as indented JSON.
func (s Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "write json summary")
	}
	return nil
}
