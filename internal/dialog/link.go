package dialog

import "sort"

// Link runs the two linking passes over a fully loaded dataset. Dialogs attach
// to their NPC and replies attach to their parent message; references with no
// target are dropped silently and only counted in the report.
//
// Replies under a message are sorted ascending by reply id rather than kept in
// source order. Source order differs between the historical export variants,
// so sorting is what keeps rendering a pure function of the dataset.
func (d *Dataset) Link() {
	for _, dlg := range d.Dialogs {
		npc, ok := d.NPCs[dlg.NPCID]
		if !ok {
			d.Report.DanglingDialogs++
			continue
		}
		npc.Dialogs = append(npc.Dialogs, dlg)
	}
	for _, npc := range d.NPCs {
		sort.Slice(npc.Dialogs, func(i, j int) bool {
			a, b := npc.Dialogs[i], npc.Dialogs[j]
			if a.CheckOrder != b.CheckOrder {
				return a.CheckOrder < b.CheckOrder
			}
			return a.ID < b.ID
		})
	}

	for _, reply := range d.Replies {
		msg, ok := d.Messages[reply.ParentMessageID]
		if !ok {
			d.Report.DanglingReplies++
			continue
		}
		msg.Replies = append(msg.Replies, reply)
	}
	for _, msg := range d.Messages {
		sort.Slice(msg.Replies, func(i, j int) bool { return msg.Replies[i].ID < msg.Replies[j].ID })
	}
}
