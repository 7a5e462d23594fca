// Package assemble flattens a canonical Document back into a single
// ordered MIDI track.
package assemble

import (
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/lcrosetto/midicanon/constants"
	"github.com/lcrosetto/midicanon/mididict"
)

// orderSentinel sorts events without a velocity after every velocity-
// bearing event on the same tick, so note-offs (velocity 0) come first
// and note-ons come before tempo/pedal/program events.
const orderSentinel = 1000

// rawEvent is an absolute-tick event awaiting ordering.
type rawEvent struct {
	tick  int
	order int
	msg   smf.Message
}

type offKey struct {
	channel uint8
	pitch   uint8
}

type noteSpan struct {
	start int
	end   int
}

// ToSMF re-linearizes the Document into a single-track MIDI file. Events
// are sorted by (tick, velocity-or-sentinel), converted from absolute to
// delta ticks and closed with an end-of-track marker. Note-offs are
// emitted as note-ons with velocity zero, and a note-off that would
// prematurely end an enclosing still-sounding note of the same pitch and
// channel is suppressed.
func ToSMF(d *mididict.Document) (*smf.SMF, error) {
	if d.TicksPerBeat <= 0 || d.TicksPerBeat > 0x7fff {
		return nil, fmt.Errorf("ticks per beat %v out of range", d.TicksPerBeat)
	}

	var events []rawEvent

	for _, msg := range d.TempoMsgs {
		events = append(events, rawEvent{
			tick:  msg.Tick,
			order: orderSentinel,
			msg:   smf.MetaTempo(60000000 / float64(msg.Data)),
		})
	}

	for _, msg := range d.PedalMsgs {
		// Stored as 0 or 1, scaled back to a raw control value.
		events = append(events, rawEvent{
			tick:  msg.Tick,
			order: orderSentinel,
			msg:   smf.Message(midi.ControlChange(msg.Channel, constants.SustainPedal, uint8(msg.Data*127))),
		})
	}

	for _, msg := range d.InstrumentMsgs {
		events = append(events, rawEvent{
			tick:  msg.Tick,
			order: orderSentinel,
			msg:   smf.Message(midi.ProgramChange(msg.Channel, msg.Data)),
		})
	}

	offCandidates := make(map[offKey][]noteSpan)
	var offKeys []offKey
	for _, msg := range d.NoteMsgs {
		events = append(events, rawEvent{
			tick:  msg.Data.Start,
			order: int(msg.Data.Velocity),
			msg:   smf.Message(midi.NoteOn(msg.Channel, msg.Data.Pitch, msg.Data.Velocity)),
		})
		k := offKey{channel: msg.Channel, pitch: msg.Data.Pitch}
		if _, ok := offCandidates[k]; !ok {
			offKeys = append(offKeys, k)
		}
		offCandidates[k] = append(offCandidates[k], noteSpan{start: msg.Data.Start, end: msg.Data.End})
	}

	// Walk keys in first-seen order so equal-tick offs land in a
	// reproducible order.
	for _, k := range offKeys {
		spans := offCandidates[k]
		for _, span := range spans {
			if suppressOff(span, spans) {
				continue
			}
			events = append(events, rawEvent{
				tick:  span.end,
				order: 0,
				msg:   smf.Message(midi.NoteOn(k.channel, k.pitch, 0)),
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].order < events[j].order
	})

	var track smf.Track
	tick := 0
	for _, ev := range events {
		track.Add(uint32(ev.tick-tick), ev.msg)
		tick = ev.tick
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(d.TicksPerBeat)
	s.Add(track)

	return s, nil
}

// suppressOff reports whether the note-off closing span would cut short
// another interval of the same pitch and channel that starts inside span
// and is still sounding when span ends.
func suppressOff(span noteSpan, spans []noteSpan) bool {
	for _, other := range spans {
		if span.start < other.start && other.start < span.end && span.end < other.end {
			return true
		}
	}
	return false
}
