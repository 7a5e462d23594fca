package mididict

import (
	"log"
	"sort"

	"github.com/lcrosetto/midicanon/model"
)

// pedalInterval is a half-open tick range [Start, End) during which the
// sustain pedal is logically down on one channel.
type pedalInterval struct {
	Start int
	End   int
}

// buildPedalIntervals derives per-channel sustain intervals from the pedal
// messages. Repeated presses and spurious releases are no-ops here; full
// dedup is RemoveRedundantPedals' job. A pedal still down after the last
// message closes at the greatest note end across every channel.
func (d *Document) buildPedalIntervals() map[uint8][]pedalInterval {
	sort.SliceStable(d.PedalMsgs, func(i, j int) bool {
		return d.PedalMsgs[i].Tick < d.PedalMsgs[j].Tick
	})

	intervals := make(map[uint8][]pedalInterval)
	downSince := make(map[uint8]int)

	for _, msg := range d.PedalMsgs {
		start, down := downSince[msg.Channel]
		switch {
		case msg.Data == model.PedalDown && !down:
			downSince[msg.Channel] = msg.Tick
		case msg.Data == model.PedalUp && down:
			intervals[msg.Channel] = append(intervals[msg.Channel], pedalInterval{
				Start: start,
				End:   msg.Tick,
			})
			delete(downSince, msg.Channel)
		}
	}

	// Close unreleased pedals at the last note end over all channels, not
	// merely the last-processed note. A document with pedals but no notes
	// closes them at the final pedal tick instead.
	finalTick := 0
	if len(d.NoteMsgs) == 0 {
		if n := len(d.PedalMsgs); n > 0 {
			finalTick = d.PedalMsgs[n-1].Tick
		}
	}
	for _, msg := range d.NoteMsgs {
		if msg.Data.End > finalTick {
			finalTick = msg.Data.End
		}
	}
	for channel, start := range downSince {
		intervals[channel] = append(intervals[channel], pedalInterval{Start: start, End: finalTick})
	}

	return intervals
}

// ResolvePedal extends note ends into the sustain intervals active on their
// channel, then resolves any overlaps the extension created. A note whose
// end falls strictly inside an interval is held until the pedal lifts.
//
// Calling this twice is not guarded: the PedalResolved flag only triggers a
// warning and the extension re-executes, which can over-extend notes that
// were already extended.
func (d *Document) ResolvePedal() *Document {
	if d.PedalResolved {
		log.Printf("pedal has already been resolved")
	}

	intervals := d.buildPedalIntervals()
	for i := range d.NoteMsgs {
		noteEnd := d.NoteMsgs[i].Data.End
		for _, iv := range intervals[d.NoteMsgs[i].Channel] {
			if iv.Start < noteEnd && noteEnd < iv.End {
				d.NoteMsgs[i].Data.End = iv.End
				break
			}
		}
	}

	d.ResolveOverlaps()
	d.PedalResolved = true

	return d
}

// isPedalUseful reports whether a pedal held over [pedalStart, pedalEnd]
// extends any of the given notes, i.e. some note end falls inside the
// interval. notes must be sorted ascending by start tick; the scan stops
// as soon as a note starts past the pedal release.
func isPedalUseful(pedalStart, pedalEnd int, notes []model.NoteMessage) bool {
	for _, msg := range notes {
		if msg.Data.Start > pedalEnd {
			break
		}
		if pedalStart <= msg.Data.End && msg.Data.End <= pedalEnd {
			return true
		}
	}
	return false
}

// RemoveRedundantPedals deletes, in place, every pedal on/off pair that
// doesn't extend any note, along with spurious releases, repeated presses,
// and a trailing press that is never released. Channels with no notes lose
// all of their pedal messages.
func (d *Document) RemoveRedundantPedals() *Document {
	channels := make(map[uint8]bool)
	for _, msg := range d.PedalMsgs {
		channels[msg.Channel] = true
	}

	remove := make(map[int]bool)
	for channel := range channels {
		d.markChannelPedals(channel, remove)
	}

	if len(remove) == 0 {
		return d
	}
	kept := d.PedalMsgs[:0]
	for i, msg := range d.PedalMsgs {
		if !remove[i] {
			kept = append(kept, msg)
		}
	}
	d.PedalMsgs = kept

	return d
}

// markChannelPedals records into remove the indexes of this channel's
// redundant pedal messages.
func (d *Document) markChannelPedals(channel uint8, remove map[int]bool) {
	var notes []model.NoteMessage
	for _, msg := range d.NoteMsgs {
		if msg.Channel == channel {
			notes = append(notes, msg)
		}
	}

	if len(notes) == 0 {
		// No notes on this channel, so no pedal here can matter.
		for i, msg := range d.PedalMsgs {
			if msg.Channel == channel {
				remove[i] = true
			}
		}
		return
	}

	pedalDown := false
	pedalDownTick := 0
	pedalDownIdx := 0

	for i, msg := range d.PedalMsgs {
		if msg.Channel != channel {
			continue
		}

		if !pedalDown {
			if msg.Data == model.PedalDown {
				pedalDown = true
				pedalDownTick = msg.Tick
				pedalDownIdx = i
			} else {
				// Spurious release while the pedal is already up.
				remove[i] = true
			}
			continue
		}

		if msg.Data == model.PedalDown {
			// Spurious re-press while the pedal is already down.
			remove[i] = true
			continue
		}

		if !isPedalUseful(pedalDownTick, msg.Tick, notes) {
			remove[pedalDownIdx] = true
			remove[i] = true
		}
		pedalDown = false
	}

	if pedalDown {
		// Pedal pressed but never released.
		remove[pedalDownIdx] = true
	}
}
