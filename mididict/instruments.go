package mididict

import "github.com/lcrosetto/midicanon/constants"

// RemoveInstruments deletes, in place, every channel-bearing message on
// channels whose current program belongs to an instrument group flagged
// true in removeGroups (keys are group names like "strings" or "sfx").
// Channel 9 is never removed, it is reserved for percussion. Meta and
// tempo messages carry no channel and are always kept.
func (d *Document) RemoveInstruments(removeGroups map[string]bool) *Document {
	programsToRemove := make(map[uint8]bool)
	for p := 0; p <= 127; p++ {
		if removeGroups[constants.ProgramToInstrument(uint8(p))] {
			programsToRemove[uint8(p)] = true
		}
	}

	channelsToRemove := make(map[uint8]bool)
	for _, msg := range d.InstrumentMsgs {
		if programsToRemove[msg.Data] && msg.Channel != constants.DrumChannel {
			channelsToRemove[msg.Channel] = true
		}
	}

	pedals := d.PedalMsgs[:0]
	for _, msg := range d.PedalMsgs {
		if !channelsToRemove[msg.Channel] {
			pedals = append(pedals, msg)
		}
	}
	d.PedalMsgs = pedals

	instruments := d.InstrumentMsgs[:0]
	for _, msg := range d.InstrumentMsgs {
		if !channelsToRemove[msg.Channel] {
			instruments = append(instruments, msg)
		}
	}
	d.InstrumentMsgs = instruments

	notes := d.NoteMsgs[:0]
	for _, msg := range d.NoteMsgs {
		if !channelsToRemove[msg.Channel] {
			notes = append(notes, msg)
		}
	}
	d.NoteMsgs = notes

	return d
}

// Programs returns the set of programs present in the instrument messages.
func (d *Document) Programs() map[uint8]bool {
	programs := make(map[uint8]bool)
	for _, msg := range d.InstrumentMsgs {
		programs[msg.Data] = true
	}
	return programs
}

// Instruments returns the set of instrument group names present in the
// instrument messages.
func (d *Document) Instruments() map[string]bool {
	instruments := make(map[string]bool)
	for _, msg := range d.InstrumentMsgs {
		instruments[constants.ProgramToInstrument(msg.Data)] = true
	}
	return instruments
}
