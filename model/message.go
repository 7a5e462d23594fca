package model

// MetaMessage holds a text or copyright MIDI meta message. Meta messages
// carry no tick because we only use them for metadata matching.
type MetaMessage struct {
	Type string `json:"type"` // "text" or "copyright"
	Data string `json:"data"`
}

// TempoMessage corresponds to a set_tempo MIDI message.
type TempoMessage struct {
	Data int `json:"data"` // microseconds per quarter note
	Tick int `json:"tick"`
}

// Pedal states as stored in PedalMessage.Data.
const (
	PedalUp   = 0
	PedalDown = 1
)

// PedalMessage corresponds to a control_change 64 (sustain pedal) message.
type PedalMessage struct {
	Data    int   `json:"data"` // PedalDown or PedalUp
	Tick    int   `json:"tick"`
	Channel uint8 `json:"channel"`
}

// InstrumentMessage corresponds to a program_change MIDI message.
type InstrumentMessage struct {
	Data    uint8 `json:"data"` // MIDI program 0..127
	Tick    int   `json:"tick"`
	Channel uint8 `json:"channel"`
}

type NoteData struct {
	Pitch    uint8 `json:"pitch"`
	Start    int   `json:"start"`
	End      int   `json:"end"`
	Velocity uint8 `json:"velocity"`
}

// NoteMessage is a paired note-on/note-off. Tick always equals Data.Start.
type NoteMessage struct {
	Data    NoteData `json:"data"`
	Tick    int      `json:"tick"`
	Channel uint8    `json:"channel"`
}
