package dialog

import "sort"

// MatchMetadata associates metadata records with NPCs by exact equality of
// their normalized French names. One NPC may match zero, one, or many records;
// gender and image values from all matches union into deduplicated sets on the
// NPC. Metadata records themselves are never mutated.
func (d *Dataset) MatchMetadata() {
	index := make(map[string][]*Metadata, len(d.Metadata))
	for _, m := range d.Metadata {
		name, ok := m.Names.Get(French)
		if !ok {
			continue
		}
		key := NormalizeName(name)
		if key == "" {
			continue
		}
		index[key] = append(index[key], m)
	}

	for _, npc := range d.NPCs {
		name, ok := npc.Names.Get(French)
		if !ok {
			continue
		}
		for _, m := range index[NormalizeName(name)] {
			npc.Genders = appendGender(npc.Genders, m.Gender)
			if m.ImageURL != "" {
				npc.Images = appendImage(npc.Images, m.ImageURL)
			}
		}
		sort.Slice(npc.Genders, func(i, j int) bool { return npc.Genders[i] < npc.Genders[j] })
		sort.Strings(npc.Images)
	}
}

func appendGender(genders []Gender, g Gender) []Gender {
	for _, existing := range genders {
		if existing == g {
			return genders
		}
	}
	return append(genders, g)
}

func appendImage(images []string, url string) []string {
	for _, existing := range images {
		if existing == url {
			return images
		}
	}
	return append(images, url)
}
