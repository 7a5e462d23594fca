package mididict

import (
	"sort"

	"github.com/lcrosetto/midicanon/constants"
	"github.com/lcrosetto/midicanon/model"
	"github.com/lcrosetto/midicanon/tempomap"
)

// Document is the canonical form of one MIDI file: five ordered message
// sequences plus the file's time resolution and free-form metadata. The
// Document exclusively owns its sequences; every transformation mutates
// them in place and returns the same Document so calls can be chained.
type Document struct {
	MetaMsgs       []model.MetaMessage
	TempoMsgs      []model.TempoMessage
	PedalMsgs      []model.PedalMessage
	InstrumentMsgs []model.InstrumentMessage
	NoteMsgs       []model.NoteMessage
	TicksPerBeat   int
	Metadata       map[string]string

	// PedalResolved tracks whether ResolvePedal has run. Advisory only:
	// it does not stop a second call from re-extending notes.
	PedalResolved bool
}

// New builds a Document from interchange data, applying construction-time
// normalization: notes are stable-sorted by tick, and a default tempo
// (120 BPM) and instrument (piano on channel 0) are synthesized when the
// file carries none.
func New(data model.DocumentData) *Document {
	d := &Document{
		MetaMsgs:       data.MetaMsgs,
		TempoMsgs:      data.TempoMsgs,
		PedalMsgs:      data.PedalMsgs,
		InstrumentMsgs: data.InstrumentMsgs,
		NoteMsgs:       data.NoteMsgs,
		TicksPerBeat:   data.TicksPerBeat,
		Metadata:       data.Metadata,
	}

	sort.SliceStable(d.NoteMsgs, func(i, j int) bool {
		return d.NoteMsgs[i].Tick < d.NoteMsgs[j].Tick
	})

	if len(d.TempoMsgs) == 0 {
		d.TempoMsgs = []model.TempoMessage{{Data: constants.DefaultTempo, Tick: 0}}
	}
	if len(d.InstrumentMsgs) == 0 {
		d.InstrumentMsgs = []model.InstrumentMessage{{Data: constants.DefaultProgram, Tick: 0, Channel: 0}}
	}

	// Keep every sequence non-nil so serialization and hashing never
	// depend on how the Document was built.
	if d.MetaMsgs == nil {
		d.MetaMsgs = []model.MetaMessage{}
	}
	if d.PedalMsgs == nil {
		d.PedalMsgs = []model.PedalMessage{}
	}
	if d.NoteMsgs == nil {
		d.NoteMsgs = []model.NoteMessage{}
	}
	if d.Metadata == nil {
		d.Metadata = make(map[string]string)
	}

	return d
}

// Data returns the Document in interchange form. The returned slices alias
// the Document's own sequences.
func (d *Document) Data() model.DocumentData {
	return model.DocumentData{
		MetaMsgs:       d.MetaMsgs,
		TempoMsgs:      d.TempoMsgs,
		PedalMsgs:      d.PedalMsgs,
		InstrumentMsgs: d.InstrumentMsgs,
		NoteMsgs:       d.NoteMsgs,
		TicksPerBeat:   d.TicksPerBeat,
		Metadata:       d.Metadata,
	}
}

// TickToMs calculates the time in milliseconds at a MIDI tick.
func (d *Document) TickToMs(tick int) int {
	return tempomap.DurationMs(0, tick, d.TempoMsgs, d.TicksPerBeat)
}
