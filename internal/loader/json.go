package loader

import (
	"fmt"
	"github.com/myrjola/dialogtree/internal/dialog"
	"github.com/myrjola/dialogtree/internal/errors"
	"github.com/myrjola/dialogtree/internal/progress"
	"log/slog"
)

// optionalRecords reads an export whose absence or unparseability degrades to
// an empty result with a warning. Per-record skips stay counted either way.
func (l *loader) optionalRecords(path, kind string) []record {
	records, skipped, err := readRecords(path)
	if err != nil {
		l.logger.Warn("export unavailable, continuing with empty set",
			slog.String("kind", kind), slog.String("path", path), errors.SlogError(err))
		l.ds.Report.Warn(fmt.Sprintf("%s export unavailable: %s", kind, path))
		return nil
	}
	l.ds.Report.Skipped[kind] += skipped
	return records
}

// requiredRecords reads a structurally required export. Missing or malformed
// files fail the whole load.
func (l *loader) requiredRecords(path, kind string) ([]record, error) {
	records, skipped, err := readRecords(path)
	if err != nil {
		return nil, errors.Wrap(err, "load required export", slog.String("kind", kind))
	}
	l.ds.Report.Skipped[kind] += skipped
	return records, nil
}

func (l *loader) loadNPCs(path string) {
	for _, r := range l.optionalRecords(path, "npcs") {
		id, ok := r.integer("npc_id")
		if !ok {
			l.ds.Report.Skipped["npcs"]++
			continue
		}
		npc := &dialog.NPC{ID: id, Names: dialog.Strings{}}
		for _, lang := range dialog.DisplayLanguages {
			if name, present := r.text("npc_name_" + string(lang)); present {
				npc.Names[lang] = name
			}
		}
		if context, present := r.text("npc_i18n_context", "npc_context"); present {
			npc.Context = context
		}
		if _, duplicate := l.ds.NPCs[id]; duplicate {
			// Last write wins, deterministically.
			l.ds.Report.Duplicates["npcs"]++
		}
		l.ds.NPCs[id] = npc
	}
	l.ds.Report.Loaded["npcs"] = len(l.ds.NPCs)
	l.bus.Publish(progress.Event{Stage: progress.StageRead, Message: "npcs loaded", N: len(l.ds.NPCs)})
}

func (l *loader) loadMessages(path string) {
	for _, r := range l.optionalRecords(path, "messages") {
		id, ok := r.integer("message_id")
		if !ok {
			l.ds.Report.Skipped["messages"]++
			continue
		}
		// French text is required by the source contract.
		fr, ok := r.text("message_fr", "message_text_fr")
		if !ok {
			l.ds.Report.Skipped["messages"]++
			continue
		}
		msg := &dialog.Message{ID: id, Texts: dialog.Strings{dialog.French: fr}}
		for _, lang := range []dialog.Language{dialog.English, dialog.Spanish, dialog.Portuguese} {
			if text, present := r.text("message_"+string(lang), "message_text_"+string(lang)); present {
				msg.Texts[lang] = text
			}
		}
		if context, present := r.text("message_i18n_context", "message_criteria"); present {
			msg.Context = context
		}
		if _, duplicate := l.ds.Messages[id]; duplicate {
			l.ds.Report.Duplicates["messages"]++
		}
		l.ds.Messages[id] = msg
	}
	l.ds.Report.Loaded["messages"] = len(l.ds.Messages)
	l.bus.Publish(progress.Event{Stage: progress.StageRead, Message: "messages loaded", N: len(l.ds.Messages)})
}

func (l *loader) loadReplies(path string) {
	for _, r := range l.optionalRecords(path, "replies") {
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
		reply := &dialog.Reply{ID: id, Texts: dialog.Strings{}, ParentMessageID: parent}
		if leadsTo, present := r.integer("reply_message_id"); present {
			reply.LeadsTo = &leadsTo
		}
		for _, lang := range dialog.DisplayLanguages {
			if text, present := r.text("reply_"+string(lang), "reply_text_"+string(lang)); present {
				reply.Texts[lang] = text
			}
		}
		if context, present := r.text("reply_criteria", "reply_i18n_context"); present {
			reply.Context = context
		}
		if _, duplicate := l.ds.Replies[id]; duplicate {
			l.ds.Report.Duplicates["replies"]++
		}
		l.ds.Replies[id] = reply
	}
	l.ds.Report.Loaded["replies"] = len(l.ds.Replies)
	l.bus.Publish(progress.Event{Stage: progress.StageRead, Message: "replies loaded", N: len(l.ds.Replies)})
}

func (l *loader) loadDialogs(path string) error {
	records, err := l.requiredRecords(path, "dialogs")
	if err != nil {
		return err
	}
	seen := map[int64]int{}
	for _, r := range records {
		id, ok := r.integer("dialog_id")
		if !ok {
			l.ds.Report.Skipped["dialogs"]++
			continue
		}
		npcID, ok := r.integer("dialog_npc_id")
		if !ok {
			l.ds.Report.Skipped["dialogs"]++
			continue
		}
		messageID, ok := r.integer("dialog_message_id")
		if !ok {
			l.ds.Report.Skipped["dialogs"]++
			continue
		}
		checkOrder, _ := r.integer("dialog_message_check_order")
		dlg := &dialog.Dialog{ID: id, NPCID: npcID, MessageID: messageID, CheckOrder: checkOrder}
		if idx, duplicate := seen[id]; duplicate {
			l.ds.Report.Duplicates["dialogs"]++
			l.ds.Dialogs[idx] = dlg
			continue
		}
		seen[id] = len(l.ds.Dialogs)
		l.ds.Dialogs = append(l.ds.Dialogs, dlg)
	}
	l.ds.Report.Loaded["dialogs"] = len(l.ds.Dialogs)
	l.bus.Publish(progress.Event{Stage: progress.StageRead, Message: "dialogs loaded", N: len(l.ds.Dialogs)})
	return nil
}

func (l *loader) loadMetadata(path string) {
	seen := map[int64]int{}
	for _, r := range l.optionalRecords(path, "metadata") {
		id, ok := r.integer("metadata_id", "id")
		if !ok {
			l.ds.Report.Skipped["metadata"]++
			continue
		}
		meta := &dialog.Metadata{MetadataID: id, Names: dialog.Strings{}}
		if indexID, present := r.integer("index_id", "indexID"); present {
			meta.IndexID = indexID
		}
		if gender, present := r.integer("gender"); present {
			meta.Gender = dialog.GenderFromSource(gender)
		} else {
			meta.Gender = dialog.GenderUndefined
		}
		if look, present := r.text("look"); present {
			meta.Look = look
		}
		if img, present := r.text("img_url", "img"); present {
			meta.ImageURL = img
		}
		for _, lang := range dialog.MetadataLanguages {
			if name, present := r.text("name_" + string(lang)); present {
				meta.Names[lang] = name
			}
		}
		if idx, duplicate := seen[id]; duplicate {
			l.ds.Report.Duplicates["metadata"]++
			l.ds.Metadata[idx] = meta
			continue
		}
		seen[id] = len(l.ds.Metadata)
		l.ds.Metadata = append(l.ds.Metadata, meta)
	}
	l.ds.Report.Loaded["metadata"] = len(l.ds.Metadata)
	l.bus.Publish(progress.Event{Stage: progress.StageRead, Message: "metadata loaded", N: len(l.ds.Metadata)})
}
