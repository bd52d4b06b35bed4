// Package dialog holds the in-memory model of the NPC dialog graph: NPCs own
// dialog entry points, dialogs point at messages, replies point back at their
// parent message and optionally forward at a continuation message. The graph is
// not a tree; reply chains may revisit earlier messages.
package dialog

import (
	"sort"
	"strings"
)

// Language is a lowercase ISO 639-1 code.
type Language string

const (
	French     Language = "fr"
	English    Language = "en"
	Spanish    Language = "es"
	Portuguese Language = "pt"
	German     Language = "de"
)

// DisplayLanguages are the languages rendered into the output document and
// scannable by search. French is the canonical language of the source data.
var DisplayLanguages = []Language{French, English, Spanish, Portuguese}

// MetadataLanguages are the localized name fields carried by metadata records.
var MetadataLanguages = []Language{French, English, Spanish, Portuguese, German}

// Strings maps a language to its text. An absent key is a null text, which is
// distinct from an empty string.
type Strings map[Language]string

// Get returns the text for lang and whether it is present.
func (s Strings) Get(lang Language) (string, bool) {
	v, ok := s[lang]
	return v, ok
}

// Gender enumerates the gender values carried by metadata records.
type Gender int

const (
	GenderMale      Gender = 0
	GenderFemale    Gender = 1
	GenderUndefined Gender = 2
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "undefined"
	}
}

// GenderFromSource maps a raw source value to a Gender. Anything outside the
// known values collapses to GenderUndefined.
func GenderFromSource(v int64) Gender {
	switch v {
	case 0:
		return GenderMale
	case 1:
		return GenderFemale
	default:
		return GenderUndefined
	}
}

// NPC is the root entity owning a set of dialog entry points. Genders and
// Images are filled by metadata matching and stay empty when nothing matches.
type NPC struct {
	ID      int64
	Names   Strings
	Context string
	Dialogs []*Dialog
	Genders []Gender
	Images  []string
}

// Message is an NPC-spoken line. French text is required by the source
// contract; other languages may be null. Replies holds the replies whose
// parent is this message, sorted ascending by reply id.
type Message struct {
	ID      int64
	Texts   Strings
	Context string
	Replies []*Reply
}

// Reply is a player-selectable response to its parent message. LeadsTo points
// at a continuation message, or is nil when the branch ends. A reply built
// from translations with no structural record keeps ParentMessageID -1 and is
// never attached.
type Reply struct {
	ID              int64
	Texts           Strings
	Context         string
	ParentMessageID int64
	LeadsTo         *int64
}

// Dialog is one entry point into an NPC's conversation. CheckOrder determines
// evaluation and display order among the NPC's dialogs, ascending.
type Dialog struct {
	ID         int64
	NPCID      int64
	MessageID  int64
	CheckOrder int64
}

// Metadata is an auxiliary per-character record matched onto NPCs by
// normalized French name. It is a lookup source only and is never mutated.
type Metadata struct {
	IndexID    int64
	MetadataID int64
	Gender     Gender
	Look       string
	ImageURL   string
	Names      Strings
}

// LoadReport accumulates per-entity tolerance counters so that skipped records
// and unlinked references stay visible without ever aborting a load.
type LoadReport struct {
	Loaded          map[string]int
	Skipped         map[string]int
	Duplicates      map[string]int
	DanglingDialogs int
	DanglingReplies int
	Warnings        []string
}

func NewLoadReport() LoadReport {
	return LoadReport{
		Loaded:     map[string]int{},
		Skipped:    map[string]int{},
		Duplicates: map[string]int{},
	}
}

// Warn records a non-fatal load warning.
func (r *LoadReport) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Dataset is the reconciled dialog graph built once per run and discarded
// after rendering. There is no persistence layer.
type Dataset struct {
	NPCs     map[int64]*NPC
	Messages map[int64]*Message
	Replies  map[int64]*Reply
	Dialogs  []*Dialog
	Metadata []*Metadata
	Report   LoadReport
}

func NewDataset() *Dataset {
	return &Dataset{
		NPCs:     map[int64]*NPC{},
		Messages: map[int64]*Message{},
		Replies:  map[int64]*Reply{},
		Report:   NewLoadReport(),
	}
}

// SortedNPCs returns the NPCs in ascending id order for deterministic output.
func (d *Dataset) SortedNPCs() []*NPC {
	npcs := make([]*NPC, 0, len(d.NPCs))
	for _, npc := range d.NPCs {
		npcs = append(npcs, npc)
	}
	sort.Slice(npcs, func(i, j int) bool { return npcs[i].ID < npcs[j].ID })
	return npcs
}

// NormalizeName is the matching key for metadata: whitespace trimmed and
// lowercased, exact equality otherwise.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
