package stats_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/myrjola/dialogtree/internal/dialog"
	"github.com/myrjola/dialogtree/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureDataset() *dialog.Dataset {
	ds := dialog.NewDataset()
	ds.NPCs[1] = &dialog.NPC{
		ID:      1,
		Names:   dialog.Strings{dialog.French: "Garde", dialog.English: "Guard"},
		Genders: []dialog.Gender{dialog.GenderMale},
	}
	ds.NPCs[2] = &dialog.NPC{
		ID:    2,
		Names: dialog.Strings{dialog.French: "Boulangère"},
	}
	ds.Messages[10] = &dialog.Message{ID: 10, Texts: dialog.Strings{
		dialog.French:  "Halte!",
		dialog.English: "...",
		dialog.Spanish: "[WIP]",
	}}
	ds.Messages[11] = &dialog.Message{ID: 11, Texts: dialog.Strings{
		dialog.French:  "Bonjour",
		dialog.English: "   ",
	}}
	ds.Replies[20] = &dialog.Reply{ID: 20, Texts: dialog.Strings{
		dialog.French:  "Qui êtes-vous?",
		dialog.English: "Who are you?",
	}}
	ds.Dialogs = []*dialog.Dialog{
		{ID: 1, NPCID: 1, MessageID: 10},
		{ID: 2, NPCID: 2, MessageID: 11},
	}
	ds.Report.Skipped["npc"] = 3
	ds.Report.Duplicates["message"] = 1
	ds.Report.DanglingReplies = 2
	return ds
}

func TestSummarize(t *testing.T) {
	s := stats.Summarize(fixtureDataset())

	assert.Equal(t, 2, s.NPCs)
	assert.Equal(t, 2, s.Dialogs)
	assert.Equal(t, 2, s.Messages)
	assert.Equal(t, 1, s.Replies)
	assert.Equal(t, 3, s.Skipped["npc"])
	assert.Equal(t, 1, s.Duplicates["message"])
	assert.Equal(t, 2, s.DanglingReplies)

	assert.Equal(t, 1, s.MatchedNPCs, "only the NPC with metadata counts as matched")
	assert.InDelta(t, 50.0, s.MatchedPercent, 0.01)

	// 2 names + 2 messages + 1 reply per language.
	fr := s.Languages[dialog.French]
	assert.Equal(t, &stats.LanguageTally{Valid: 5}, fr)

	// English: name "Guard" and reply valid, name of NPC 2 null, "..." and a
	// blank message are placeholders.
	en := s.Languages[dialog.English]
	assert.Equal(t, &stats.LanguageTally{Valid: 2, Placeholder: 2, Null: 1}, en)

	// Spanish: the bare bracketed annotation is a placeholder, the rest null.
	es := s.Languages[dialog.Spanish]
	assert.Equal(t, &stats.LanguageTally{Placeholder: 1, Null: 4}, es)

	pt := s.Languages[dialog.Portuguese]
	assert.Equal(t, &stats.LanguageTally{Null: 5}, pt)
}

func TestSummarizeEmptyDataset(t *testing.T) {
	s := stats.Summarize(dialog.NewDataset())

	assert.Zero(t, s.NPCs)
	assert.Zero(t, s.MatchedPercent, "no NPCs must not divide by zero")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, stats.Summarize(fixtureDataset()).WriteCSV(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"metric", "language", "value"}, rows[0])
	assert.Contains(t, rows, []string{"npcs", "", "2"})
	assert.Contains(t, rows, []string{"skipped_npc", "", "3"})
	assert.Contains(t, rows, []string{"valid", "fr", "5"})
	assert.Contains(t, rows, []string{"placeholder", "en", "2"})
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, stats.Summarize(fixtureDataset()).WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(2), decoded["npcs"])
	languages, ok := decoded["languages"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, languages, "fr")
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, stats.Summarize(fixtureDataset()).WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "npcs\t2")
	assert.Contains(t, out, "matched npcs\t1 (50.0%)")
	assert.Contains(t, out, "fr\tvalid 5\tplaceholder 0\tnull 0")
}
