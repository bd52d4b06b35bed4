package render

import (
	"strconv"
	"strings"

	"github.com/myrjola/dialogtree/internal/dialog"
)

// maxIndentLevel caps visual indentation. Node levels keep counting past the
// cap for the depth badge; nodes deeper than the cap stop adding indentation
// so that deep or cyclic-adjacent trees stay on screen.
const maxIndentLevel = 15

// TextRow is one language line of a node, precomputed for the template. A null
// text renders a distinguishable marker, not a blank, so the null-only filter
// has something to find.
type TextRow struct {
	Lang  string
	Label string
	Value string
	Null  bool
}

// MessageNode is a rendered message. When Reference is true the node marks a
// revisit of a message already on the current path and carries no content of
// its own; the id is the join key for jumping to the full rendering.
type MessageNode struct {
	ID        int64
	Level     int
	Context   string
	Texts     []TextRow
	Replies   []*ReplyNode
	Reference bool
}

// Odd reports whether the node sits at an odd depth, for alternating accents.
func (n *MessageNode) Odd() bool { return n.Level%2 == 1 }

// Capped reports whether the node is past the indentation cap.
func (n *MessageNode) Capped() bool { return n.Level > maxIndentLevel }

// ReplyNode is a rendered reply. Next is the continuation message subtree, nil
// when the branch ends or the continuation is dangling. LeadsTo holds the
// continuation message id as the attribute value, empty when the branch ends.
type ReplyNode struct {
	ID      int64
	Level   int
	Context string
	Texts   []TextRow
	LeadsTo string
	Next    *MessageNode
}

func (n *ReplyNode) Odd() bool { return n.Level%2 == 1 }

func (n *ReplyNode) Capped() bool { return n.Level > maxIndentLevel }

// DialogBlock is one entry point of a card, in check order.
type DialogBlock struct {
	DialogID   int64
	CheckOrder int64
	Root       *MessageNode
}

// Card is one NPC with its metadata and dialog trees.
type Card struct {
	ID      int64
	Names   []TextRow
	Context string
	Genders []string
	Images  []string
	Dialogs []*DialogBlock
}

// BuildCards walks every NPC's dialog entry points into render trees. Cards
// come out in ascending NPC id; NPCs without a resolvable dialog are omitted.
func BuildCards(ds *dialog.Dataset) []*Card {
	var cards []*Card
	for _, npc := range ds.SortedNPCs() {
		if len(npc.Dialogs) == 0 {
			continue
		}
		card := &Card{
			ID:      npc.ID,
			Names:   textRows(npc.Names),
			Context: npc.Context,
		}
		for _, g := range npc.Genders {
			card.Genders = append(card.Genders, g.String())
		}
		card.Images = npc.Images
		for _, dlg := range npc.Dialogs {
			if _, ok := ds.Messages[dlg.MessageID]; !ok {
				// Dangling entry point, skip the dialog.
				continue
			}
			root := buildMessage(ds, dlg.MessageID, 0, map[int64]bool{})
			card.Dialogs = append(card.Dialogs, &DialogBlock{
				DialogID:   dlg.ID,
				CheckOrder: dlg.CheckOrder,
				Root:       root,
			})
		}
		if len(card.Dialogs) == 0 {
			continue
		}
		cards = append(cards, card)
	}
	return cards
}

// buildMessage renders the message subtree rooted at id. visited holds the
// message ids on the current path from the entry point; a revisit renders a
// terminal reference marker instead of recursing, which guarantees termination
// on cyclic reply chains. The set is copied when branching into a reply's
// continuation so sibling branches never see each other as cycles.
func buildMessage(ds *dialog.Dataset, id int64, level int, visited map[int64]bool) *MessageNode {
	if visited[id] {
		return &MessageNode{
			ID:        id,
			Level:     level,
			Reference: true,
		}
	}
	msg := ds.Messages[id]
	node := &MessageNode{
		ID:      id,
		Level:   level,
		Context: msg.Context,
		Texts:   textRows(msg.Texts),
	}
	visited[id] = true
	for _, reply := range msg.Replies {
		replyNode := &ReplyNode{
			ID:      reply.ID,
			Level:   level + 1,
			Context: reply.Context,
			Texts:   textRows(reply.Texts),
		}
		if reply.LeadsTo != nil {
			replyNode.LeadsTo = strconv.FormatInt(*reply.LeadsTo, 10)
			if _, ok := ds.Messages[*reply.LeadsTo]; ok {
				branch := make(map[int64]bool, len(visited))
				for k, v := range visited {
					branch[k] = v
				}
				replyNode.Next = buildMessage(ds, *reply.LeadsTo, level+2, branch)
			}
		}
		node.Replies = append(node.Replies, replyNode)
	}
	return node
}

func textRows(texts dialog.Strings) []TextRow {
	rows := make([]TextRow, 0, len(dialog.DisplayLanguages))
	for _, lang := range dialog.DisplayLanguages {
		value, ok := texts.Get(lang)
		rows = append(rows, TextRow{
			Lang:  string(lang),
			Label: strings.ToUpper(string(lang)),
			Value: value,
			Null:  !ok,
		})
	}
	return rows
}
