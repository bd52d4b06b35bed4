// Package search implements the filtering contract of the rendered document on
// the engine side. The embedded script in internal/render/assets/search.js
// implements the same semantics for the browser; the two must stay in sync.
package search

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/myrjola/dialogtree/internal/dialog"
	"github.com/myrjola/dialogtree/internal/errors"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Type selects what the term is compared against.
type Type string

const (
	// TypeText scans every text field of a card: NPC names, message texts,
	// and reply texts.
	TypeText Type = "text"
	// TypeNPCName scans only NPC names.
	TypeNPCName Type = "npc-name"
	// TypeNPCID, TypeMessageID, and TypeReplyID compare the literal term
	// against node ids. Wildcards, diacritics, and language scoping do not
	// apply to id searches.
	TypeNPCID     Type = "npc-id"
	TypeMessageID Type = "message-id"
	TypeReplyID   Type = "reply-id"
)

var ErrBadOptions = errors.NewSentinel("bad search options")

// Options are the inputs of one search evaluation.
type Options struct {
	Term             string
	Type             Type
	ExactMatch       bool
	IgnoreDiacritics bool
	UseWildcards     bool
	// Languages restricts which language fields are scanned. Empty means all
	// display languages.
	Languages []dialog.Language
	// NullOnly overrides term matching entirely and selects cards containing
	// at least one missing text value.
	NullOnly bool
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics removes combining marks so that "gelé" and "gèle" both fold
// onto "gele".
func FoldDiacritics(s string) string {
	folded, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return folded
}

// matcher reports whether a candidate text matches the prepared term.
type matcher func(text string) bool

func compileMatcher(opts Options) (matcher, error) {
	term := opts.Term
	if term == "" {
		// An empty term matches everything.
		return func(string) bool { return true }, nil
	}
	if opts.IgnoreDiacritics {
		term = FoldDiacritics(term)
	}
	term = strings.ToLower(term)

	useRegexp := opts.ExactMatch || (opts.UseWildcards && strings.Contains(term, "*"))
	if !useRegexp {
		return func(text string) bool {
			return strings.Contains(prepare(text, opts), term)
		}, nil
	}

	pattern := regexp.QuoteMeta(term)
	if opts.UseWildcards {
		// A wildcard expands to zero or more non-whitespace characters.
		pattern = strings.ReplaceAll(pattern, `\*`, `\S*`)
	}
	if opts.ExactMatch {
		pattern = `\b` + pattern + `\b`
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(ErrBadOptions, err.Error())
	}
	return func(text string) bool {
		return re.MatchString(prepare(text, opts))
	}, nil
}

func prepare(text string, opts Options) string {
	if opts.IgnoreDiacritics {
		text = FoldDiacritics(text)
	}
	return strings.ToLower(text)
}

func (opts Options) languages() []dialog.Language {
	if len(opts.Languages) == 0 {
		return dialog.DisplayLanguages
	}
	return opts.Languages
}

// Evaluate returns the ids of NPC cards that match, ascending. Only NPCs with
// at least one dialog are considered since only those render into the
// document.
func Evaluate(ds *dialog.Dataset, opts Options) ([]int64, error) {
	var match matcher
	if !opts.NullOnly && !idSearch(opts.Type) {
		var err error
		if match, err = compileMatcher(opts); err != nil {
			return nil, err
		}
	}

	var ids []int64
	for _, npc := range ds.SortedNPCs() {
		if len(npc.Dialogs) == 0 {
			continue
		}
		messages, replies := reachable(ds, npc)
		if cardMatches(npc, messages, replies, opts, match) {
			ids = append(ids, npc.ID)
		}
	}
	return ids, nil
}

func idSearch(t Type) bool {
	return t == TypeNPCID || t == TypeMessageID || t == TypeReplyID
}

func cardMatches(
	npc *dialog.NPC,
	messages []*dialog.Message,
	replies []*dialog.Reply,
	opts Options,
	match matcher,
) bool {
	if opts.NullOnly {
		return cardHasNull(npc, messages, replies, opts.languages())
	}

	switch opts.Type {
	case TypeNPCID:
		return strconv.FormatInt(npc.ID, 10) == opts.Term
	case TypeMessageID:
		for _, msg := range messages {
			if strconv.FormatInt(msg.ID, 10) == opts.Term {
				return true
			}
		}
		return false
	case TypeReplyID:
		for _, reply := range replies {
			if strconv.FormatInt(reply.ID, 10) == opts.Term {
				return true
			}
		}
		return false
	case TypeNPCName:
		return anyLanguageMatches(npc.Names, opts.languages(), match)
	default:
		if anyLanguageMatches(npc.Names, opts.languages(), match) {
			return true
		}
		for _, msg := range messages {
			if anyLanguageMatches(msg.Texts, opts.languages(), match) {
				return true
			}
		}
		for _, reply := range replies {
			if anyLanguageMatches(reply.Texts, opts.languages(), match) {
				return true
			}
		}
		return false
	}
}

func anyLanguageMatches(texts dialog.Strings, languages []dialog.Language, match matcher) bool {
	for _, lang := range languages {
		if text, ok := texts.Get(lang); ok && match(text) {
			return true
		}
	}
	return false
}

func cardHasNull(
	npc *dialog.NPC,
	messages []*dialog.Message,
	replies []*dialog.Reply,
	languages []dialog.Language,
) bool {
	hasNull := func(texts dialog.Strings) bool {
		for _, lang := range languages {
			if _, ok := texts.Get(lang); !ok {
				return true
			}
		}
		return false
	}
	if hasNull(npc.Names) {
		return true
	}
	for _, msg := range messages {
		if hasNull(msg.Texts) {
			return true
		}
	}
	for _, reply := range replies {
		if hasNull(reply.Texts) {
			return true
		}
	}
	return false
}

// reachable collects the messages and replies belonging to an NPC's card: the
// nodes reachable from its dialog entry points. Membership only needs a global
// visited set; per-path cycle handling belongs to rendering.
func reachable(ds *dialog.Dataset, npc *dialog.NPC) ([]*dialog.Message, []*dialog.Reply) {
	var (
		messages []*dialog.Message
		replies  []*dialog.Reply
		visited  = map[int64]bool{}
		queue    []int64
	)
	for _, dlg := range npc.Dialogs {
		queue = append(queue, dlg.MessageID)
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		msg, ok := ds.Messages[id]
		if !ok {
			continue
		}
		messages = append(messages, msg)
		for _, reply := range msg.Replies {
			replies = append(replies, reply)
			if reply.LeadsTo != nil {
				queue = append(queue, *reply.LeadsTo)
			}
		}
	}
	return messages, replies
}
