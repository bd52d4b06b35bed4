package dialog_test

import (
	"github.com/myrjola/dialogtree/internal/dialog"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestLink(t *testing.T) {
	t.Run("dialogs attach in check order", func(t *testing.T) {
		ds := dialog.NewDataset()
		ds.NPCs[7] = &dialog.NPC{ID: 7, Names: dialog.Strings{dialog.French: "Garde"}}
		ds.Dialogs = []*dialog.Dialog{
			{ID: 3, NPCID: 7, MessageID: 102, CheckOrder: 2},
			{ID: 1, NPCID: 7, MessageID: 100, CheckOrder: 0},
			{ID: 2, NPCID: 7, MessageID: 101, CheckOrder: 1},
		}

		ds.Link()

		npc := ds.NPCs[7]
		require.Len(t, npc.Dialogs, 3)
		require.Equal(t, int64(0), npc.Dialogs[0].CheckOrder)
		require.Equal(t, int64(1), npc.Dialogs[1].CheckOrder)
		require.Equal(t, int64(2), npc.Dialogs[2].CheckOrder)
	})

	t.Run("equal check order breaks ties by dialog id", func(t *testing.T) {
		ds := dialog.NewDataset()
		ds.NPCs[7] = &dialog.NPC{ID: 7}
		ds.Dialogs = []*dialog.Dialog{
			{ID: 9, NPCID: 7, MessageID: 100, CheckOrder: 0},
			{ID: 4, NPCID: 7, MessageID: 101, CheckOrder: 0},
		}

		ds.Link()

		require.Equal(t, int64(4), ds.NPCs[7].Dialogs[0].ID)
		require.Equal(t, int64(9), ds.NPCs[7].Dialogs[1].ID)
	})

	t.Run("replies attach sorted by reply id", func(t *testing.T) {
		ds := dialog.NewDataset()
		ds.Messages[100] = &dialog.Message{ID: 100, Texts: dialog.Strings{dialog.French: "Halte!"}}
		ds.Replies[202] = &dialog.Reply{ID: 202, ParentMessageID: 100}
		ds.Replies[200] = &dialog.Reply{ID: 200, ParentMessageID: 100}
		ds.Replies[201] = &dialog.Reply{ID: 201, ParentMessageID: 100}

		ds.Link()

		msg := ds.Messages[100]
		require.Len(t, msg.Replies, 3)
		require.Equal(t, int64(200), msg.Replies[0].ID)
		require.Equal(t, int64(201), msg.Replies[1].ID)
		require.Equal(t, int64(202), msg.Replies[2].ID)
	})

	t.Run("dangling references drop silently and count", func(t *testing.T) {
		ds := dialog.NewDataset()
		ds.NPCs[7] = &dialog.NPC{ID: 7}
		ds.Messages[100] = &dialog.Message{ID: 100}
		ds.Dialogs = []*dialog.Dialog{
			{ID: 1, NPCID: 7, MessageID: 100},
			{ID: 2, NPCID: 999, MessageID: 100},
		}
		ds.Replies[200] = &dialog.Reply{ID: 200, ParentMessageID: 100}
		ds.Replies[201] = &dialog.Reply{ID: 201, ParentMessageID: 999}
		// Replies enriched from no structural record keep parent -1.
		ds.Replies[202] = &dialog.Reply{ID: 202, ParentMessageID: -1}

		ds.Link()

		require.Len(t, ds.NPCs[7].Dialogs, 1)
		require.Len(t, ds.Messages[100].Replies, 1)
		require.Equal(t, 1, ds.Report.DanglingDialogs)
		require.Equal(t, 2, ds.Report.DanglingReplies)
	})
}
