package dialog_test

import (
	"github.com/myrjola/dialogtree/internal/dialog"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestMatchMetadata(t *testing.T) {
	tests := []struct {
		name        string
		npcName     string
		metadata    []*dialog.Metadata
		wantGenders []dialog.Gender
		wantImages  []string
	}{
		{
			name:    "single match copies gender and image",
			npcName: "Garde",
			metadata: []*dialog.Metadata{
				{
					MetadataID: 1,
					Gender:     dialog.GenderMale,
					ImageURL:   "https://example.com/garde.png",
					Names:      dialog.Strings{dialog.French: "Garde"},
				},
			},
			wantGenders: []dialog.Gender{dialog.GenderMale},
			wantImages:  []string{"https://example.com/garde.png"},
		},
		{
			name:        "zero matches leaves both sets empty",
			npcName:     "Garde",
			metadata:    []*dialog.Metadata{{MetadataID: 1, Names: dialog.Strings{dialog.French: "Marchand"}}},
			wantGenders: nil,
			wantImages:  nil,
		},
		{
			name:    "matching is case and whitespace insensitive",
			npcName: "  GARDE ",
			metadata: []*dialog.Metadata{
				{
					MetadataID: 1,
					Gender:     dialog.GenderFemale,
					Names:      dialog.Strings{dialog.French: "garde"},
				},
			},
			wantGenders: []dialog.Gender{dialog.GenderFemale},
			wantImages:  nil,
		},
		{
			name:    "two records with different genders union both exactly once",
			npcName: "Garde",
			metadata: []*dialog.Metadata{
				{MetadataID: 1, Gender: dialog.GenderFemale, Names: dialog.Strings{dialog.French: "Garde"}},
				{MetadataID: 2, Gender: dialog.GenderMale, Names: dialog.Strings{dialog.French: "garde "}},
				{MetadataID: 3, Gender: dialog.GenderMale, Names: dialog.Strings{dialog.French: "Garde"}},
			},
			wantGenders: []dialog.Gender{dialog.GenderMale, dialog.GenderFemale},
			wantImages:  nil,
		},
		{
			name:    "duplicate image urls deduplicate",
			npcName: "Garde",
			metadata: []*dialog.Metadata{
				{MetadataID: 1, Gender: dialog.GenderMale, ImageURL: "a.png", Names: dialog.Strings{dialog.French: "Garde"}},
				{MetadataID: 2, Gender: dialog.GenderMale, ImageURL: "a.png", Names: dialog.Strings{dialog.French: "Garde"}},
			},
			wantGenders: []dialog.Gender{dialog.GenderMale},
			wantImages:  []string{"a.png"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dialog.NewDataset()
			ds.NPCs[7] = &dialog.NPC{ID: 7, Names: dialog.Strings{dialog.French: tt.npcName}}
			ds.Metadata = tt.metadata

			ds.MatchMetadata()

			npc := ds.NPCs[7]
			require.Equal(t, tt.wantGenders, npc.Genders)
			require.Equal(t, tt.wantImages, npc.Images)
		})
	}
}

func TestMatchMetadataNPCWithoutFrenchName(t *testing.T) {
	ds := dialog.NewDataset()
	ds.NPCs[7] = &dialog.NPC{ID: 7, Names: dialog.Strings{dialog.English: "Guard"}}
	ds.Metadata = []*dialog.Metadata{
		{MetadataID: 1, Gender: dialog.GenderMale, Names: dialog.Strings{dialog.French: "Guard"}},
	}

	ds.MatchMetadata()

	require.Empty(t, ds.NPCs[7].Genders)
}
