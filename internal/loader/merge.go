package loader

import (
	"github.com/myrjola/dialogtree/internal/dialog"
	"github.com/myrjola/dialogtree/internal/progress"
)

// replyStructure is the structural half of a reply in translation-file mode:
// the replies export contributes ids and links only, never text.
type replyStructure struct {
	parentMessageID int64
	leadsTo         *int64
	context         string
}

// loadReplyStructure reads the replies export for its links. The file is
// structurally required in translation-file mode since the translations alone
// carry no relationships.
func (l *loader) loadReplyStructure(path string) (map[int64]replyStructure, error) {
	records, err := l.requiredRecords(path, "replies")
	if err != nil {
		return nil, err
	}
	structure := make(map[int64]replyStructure, len(records))
	for _, r := range records {
		id, ok := r.integer("reply_id")
		if !ok {
			l.ds.Report.Skipped["replies"]++
			continue
		}
		parent, ok := r.integer("reply_parent_id")
		if !ok {
			l.ds.Report.Skipped["replies"]++
			continue
		}
		s := replyStructure{parentMessageID: parent}
		if leadsTo, present := r.integer("reply_message_id"); present {
			s.leadsTo = &leadsTo
		}
		if context, present := r.text("reply_criteria", "reply_i18n_context"); present {
			s.context = context
		}
		structure[id] = s
	}
	return structure, nil
}

// mergeTranslations constructs NPC, message, and reply entities from the
// accumulated translation table and enriches replies with their structural
// links. The translations are the primary entity set: an entity with no
// translation entry does not exist even if structure references it. Replies
// with a translation but no structural record keep parent -1 and never attach.
func (l *loader) mergeTranslations(table translationTable, structure map[int64]replyStructure) {
	for key, texts := range table {
		switch key.Kind {
		case entryName:
			l.ds.NPCs[key.ID] = &dialog.NPC{ID: key.ID, Names: texts}
		case entryMessage:
			l.ds.Messages[key.ID] = &dialog.Message{ID: key.ID, Texts: texts}
		case entryReply:
			reply := &dialog.Reply{ID: key.ID, Texts: texts, ParentMessageID: -1}
			if s, ok := structure[key.ID]; ok {
				reply.ParentMessageID = s.parentMessageID
				reply.LeadsTo = s.leadsTo
				reply.Context = s.context
			}
			l.ds.Replies[key.ID] = reply
		}
	}
	l.ds.Report.Loaded["npcs"] = len(l.ds.NPCs)
	l.ds.Report.Loaded["messages"] = len(l.ds.Messages)
	l.ds.Report.Loaded["replies"] = len(l.ds.Replies)
	l.bus.Publish(progress.Event{Stage: progress.StageMerge, Message: "translations merged with structure",
		N: len(l.ds.NPCs) + len(l.ds.Messages) + len(l.ds.Replies)})
}
