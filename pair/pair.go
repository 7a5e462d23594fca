// Package pair converts raw per-track MIDI events into the canonical
// message sequences, pairing note-on/note-off events into discrete notes.
package pair

import (
	"errors"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/lcrosetto/midicanon/constants"
	"github.com/lcrosetto/midicanon/mididict"
	"github.com/lcrosetto/midicanon/model"
)

type noteKey struct {
	pitch   uint8
	channel uint8
}

// openNote is a note-on waiting for its release.
type openNote struct {
	startTick int
	velocity  uint8
}

// FromSMF builds a canonical Document from a parsed MIDI file. Events from
// every track are classified and paired, then each sequence is
// stable-sorted by tick so same-tick events keep their emission order.
func FromSMF(s *smf.SMF) (*mididict.Document, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.New("only metric time format is supported")
	}

	data := model.DocumentData{
		TicksPerBeat: int(mt.Resolution()),
		Metadata:     make(map[string]string),
	}

	for _, track := range s.Tracks {
		extractTrack(track, &data)
	}

	sort.SliceStable(data.TempoMsgs, func(i, j int) bool {
		return data.TempoMsgs[i].Tick < data.TempoMsgs[j].Tick
	})
	sort.SliceStable(data.PedalMsgs, func(i, j int) bool {
		return data.PedalMsgs[i].Tick < data.PedalMsgs[j].Tick
	})
	sort.SliceStable(data.InstrumentMsgs, func(i, j int) bool {
		return data.InstrumentMsgs[i].Tick < data.InstrumentMsgs[j].Tick
	})
	sort.SliceStable(data.NoteMsgs, func(i, j int) bool {
		return data.NoteMsgs[i].Tick < data.NoteMsgs[j].Tick
	})

	return mididict.New(data), nil
}

// extractTrack walks one track, converting deltas to absolute ticks and
// appending classified messages to data. Open note-ons are kept per
// (pitch, channel) as a queue, not a single slot: retriggering the same
// pitch before release is legal.
func extractTrack(track smf.Track, data *model.DocumentData) {
	lastNoteOn := make(map[noteKey][]openNote)

	var absTick int
	for _, ev := range track {
		absTick += int(ev.Delta)
		msg := ev.Message

		var channel, key, velocity, control, value, program uint8
		var text string
		var bpm float64

		switch {
		case msg.GetMetaCopyright(&text):
			data.MetaMsgs = append(data.MetaMsgs, model.MetaMessage{Type: "copyright", Data: text})
		case msg.GetMetaText(&text):
			data.MetaMsgs = append(data.MetaMsgs, model.MetaMessage{Type: "text", Data: text})
		case msg.GetMetaTempo(&bpm):
			data.TempoMsgs = append(data.TempoMsgs, model.TempoMessage{
				Data: int(math.Round(60000000 / bpm)),
				Tick: absTick,
			})
		case msg.GetProgramChange(&channel, &program):
			data.InstrumentMsgs = append(data.InstrumentMsgs, model.InstrumentMessage{
				Data:    program,
				Tick:    absTick,
				Channel: channel,
			})
		case msg.GetControlChange(&channel, &control, &value):
			if control != constants.SustainPedal {
				break
			}
			// Consistent with pretty_midi and ableton-live behavior.
			state := model.PedalUp
			if value >= 64 {
				state = model.PedalDown
			}
			data.PedalMsgs = append(data.PedalMsgs, model.PedalMessage{
				Data:    state,
				Tick:    absTick,
				Channel: channel,
			})
		case msg.GetNoteStart(&channel, &key, &velocity):
			k := noteKey{pitch: key, channel: channel}
			lastNoteOn[k] = append(lastNoteOn[k], openNote{startTick: absTick, velocity: velocity})
		case msg.GetNoteEnd(&channel, &key):
			k := noteKey{pitch: key, channel: channel}
			openNotes, ok := lastNoteOn[k]
			if !ok {
				// Dangling release, drop it silently.
				break
			}
			closeNotes(k, openNotes, absTick, lastNoteOn, data)
		}
	}
}

// closeNotes emits a note for every open entry not started on this very
// tick. A zero-length note just retriggered at the release tick stays
// open; otherwise the key is cleared.
func closeNotes(k noteKey, openNotes []openNote, endTick int, lastNoteOn map[noteKey][]openNote, data *model.DocumentData) {
	var retained []openNote
	for _, on := range openNotes {
		if on.startTick == endTick {
			retained = append(retained, on)
			continue
		}
		data.NoteMsgs = append(data.NoteMsgs, model.NoteMessage{
			Data: model.NoteData{
				Pitch:    k.pitch,
				Start:    on.startTick,
				End:      endTick,
				Velocity: on.velocity,
			},
			Tick:    on.startTick,
			Channel: k.channel,
		})
	}

	if len(retained) > 0 {
		lastNoteOn[k] = retained
	} else {
		delete(lastNoteOn, k)
	}
}
