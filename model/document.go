package model

// DocumentData is the canonical interchange form of a Document. Its JSON
// representation has exactly these seven keys; anything else is rejected
// on deserialization.
type DocumentData struct {
	MetaMsgs       []MetaMessage       `json:"meta_msgs"`
	TempoMsgs      []TempoMessage      `json:"tempo_msgs"`
	PedalMsgs      []PedalMessage      `json:"pedal_msgs"`
	InstrumentMsgs []InstrumentMessage `json:"instrument_msgs"`
	NoteMsgs       []NoteMessage       `json:"note_msgs"`
	TicksPerBeat   int                 `json:"ticks_per_beat"`
	Metadata       map[string]string   `json:"metadata"`
}

// DocumentKeys is the exact key set of the interchange format.
var DocumentKeys = []string{
	"meta_msgs",
	"tempo_msgs",
	"pedal_msgs",
	"instrument_msgs",
	"note_msgs",
	"ticks_per_beat",
	"metadata",
}
