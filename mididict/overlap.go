package mididict

import "sort"

type noteKey struct {
	channel uint8
	pitch   uint8
}

// ResolveOverlaps trims overlaps between notes with the same pitch and
// channel, in place. A pair [a, b+x], [b-y, c] becomes [a, b-y], [b-y, c]:
// only the earlier note's end moves, never the later note's start or any
// velocity. Safe to call on data with no overlaps, and idempotent.
func (d *Document) ResolveOverlaps() *Document {
	// Index the note sequence by channel and pitch so edits go through
	// the Document's own slice.
	groups := make(map[noteKey][]int)
	for i, msg := range d.NoteMsgs {
		k := noteKey{channel: msg.Channel, pitch: msg.Data.Pitch}
		groups[k] = append(groups[k], i)
	}

	for _, idxs := range groups {
		sort.SliceStable(idxs, func(a, b int) bool {
			na, nb := d.NoteMsgs[idxs[a]].Data, d.NoteMsgs[idxs[b]].Data
			if na.Start != nb.Start {
				return na.Start < nb.Start
			}
			return na.End < nb.End
		})

		prevEnd := -1
		for pos, idx := range idxs {
			onTick := d.NoteMsgs[idx].Data.Start
			offTick := d.NoteMsgs[idx].Data.End
			if prevEnd > onTick {
				d.NoteMsgs[idxs[pos-1]].Data.End = onTick
			}
			prevEnd = offTick
		}
	}

	return d
}
