package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/lcrosetto/midicanon/mididict"
	"github.com/lcrosetto/midicanon/model"
	"github.com/lcrosetto/midicanon/pair"
)

func note(channel, pitch uint8, start, end int, velocity uint8) model.NoteMessage {
	return model.NoteMessage{
		Data:    model.NoteData{Pitch: pitch, Start: start, End: end, Velocity: velocity},
		Tick:    start,
		Channel: channel,
	}
}

func TestRoundTripWithoutOverlaps(t *testing.T) {
	d := mididict.New(model.DocumentData{
		TempoMsgs: []model.TempoMessage{{Data: 500000, Tick: 0}},
		NoteMsgs: []model.NoteMessage{
			note(0, 60, 0, 100, 100),
			note(0, 60, 100, 200, 90),
			note(1, 72, 50, 400, 80),
		},
		InstrumentMsgs: []model.InstrumentMessage{{Data: 0, Tick: 0, Channel: 0}},
		TicksPerBeat:   480,
	})

	s, err := ToSMF(d)
	assert.NoError(t, err)

	d2, err := pair.FromSMF(s)
	assert.NoError(t, err)
	assert.Equal(t, d.NoteMsgs, d2.NoteMsgs)
	assert.Equal(t, d.TempoMsgs, d2.TempoMsgs)
	assert.Equal(t, d.InstrumentMsgs, d2.InstrumentMsgs)
	assert.Equal(t, d.TicksPerBeat, d2.TicksPerBeat)
}

func TestRoundTripWithPedal(t *testing.T) {
	d := mididict.New(model.DocumentData{
		NoteMsgs: []model.NoteMessage{note(0, 60, 0, 100, 100)},
		PedalMsgs: []model.PedalMessage{
			{Data: model.PedalDown, Tick: 10, Channel: 0},
			{Data: model.PedalUp, Tick: 90, Channel: 0},
		},
		TicksPerBeat: 480,
	})

	s, err := ToSMF(d)
	assert.NoError(t, err)

	d2, err := pair.FromSMF(s)
	assert.NoError(t, err)
	assert.Equal(t, d.PedalMsgs, d2.PedalMsgs)
	assert.Equal(t, d.NoteMsgs, d2.NoteMsgs)
}

func TestOffBeforeOnAtSameTick(t *testing.T) {
	// Adjacent same-pitch notes share tick 100: the note-off must come
	// first or the second note would be cut instantly.
	d := mididict.New(model.DocumentData{
		NoteMsgs: []model.NoteMessage{
			note(0, 60, 0, 100, 100),
			note(0, 60, 100, 200, 90),
		},
		TicksPerBeat: 480,
	})

	s, err := ToSMF(d)
	assert.NoError(t, err)

	var saw []string
	var absTick int
	for _, ev := range s.Tracks[0] {
		absTick += int(ev.Delta)
		if absTick != 100 {
			continue
		}
		var ch, key, vel uint8
		if ev.Message.GetNoteOn(&ch, &key, &vel) {
			if vel == 0 {
				saw = append(saw, "off")
			} else {
				saw = append(saw, "on")
			}
		}
	}
	assert.Equal(t, []string{"off", "on"}, saw)
}

func TestSuppressesOffInsideEnclosingNote(t *testing.T) {
	// (0,100) and (50,150): the off at 100 would end the (50,150) note
	// that is still sounding, so it is suppressed.
	d := mididict.New(model.DocumentData{
		NoteMsgs: []model.NoteMessage{
			note(0, 60, 0, 100, 100),
			note(0, 60, 50, 150, 90),
		},
		TicksPerBeat: 480,
	})

	s, err := ToSMF(d)
	assert.NoError(t, err)

	offs := 0
	for _, ev := range s.Tracks[0] {
		var ch, key, vel uint8
		if ev.Message.GetNoteOn(&ch, &key, &vel) && vel == 0 {
			offs += 1
		}
	}
	assert.Equal(t, 1, offs)
}

func TestPedalScaledToRawControlValue(t *testing.T) {
	d := mididict.New(model.DocumentData{
		PedalMsgs: []model.PedalMessage{
			{Data: model.PedalDown, Tick: 0, Channel: 0},
			{Data: model.PedalUp, Tick: 10, Channel: 0},
		},
		TicksPerBeat: 480,
	})

	s, err := ToSMF(d)
	assert.NoError(t, err)

	var values []uint8
	for _, ev := range s.Tracks[0] {
		var ch, cc, val uint8
		if ev.Message.GetControlChange(&ch, &cc, &val) {
			assert.Equal(t, uint8(64), cc)
			values = append(values, val)
		}
	}
	assert.Equal(t, []uint8{127, 0}, values)
}

func TestEndsWithEndOfTrack(t *testing.T) {
	d := mididict.New(model.DocumentData{TicksPerBeat: 480})

	s, err := ToSMF(d)
	assert.NoError(t, err)
	assert.Len(t, s.Tracks, 1)

	track := s.Tracks[0]
	last := track[len(track)-1]
	assert.True(t, last.Message.Is(smf.MetaEndOfTrackMsg))
}

func TestRejectsBadResolution(t *testing.T) {
	d := mididict.New(model.DocumentData{TicksPerBeat: 0})

	_, err := ToSMF(d)
	assert.Error(t, err)
}
