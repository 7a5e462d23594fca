package mididict

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"

	"github.com/lcrosetto/midicanon/model"
)

// hashData holds the non-cosmetic sequences in sorted key order so the
// encoding is deterministic. Meta messages, ticks_per_beat and metadata
// are excluded on purpose: text edits or relabeling must not change a
// file's identity.
type hashData struct {
	InstrumentMsgs []model.InstrumentMessage `json:"instrument_msgs"`
	NoteMsgs       []model.NoteMessage       `json:"note_msgs"`
	PedalMsgs      []model.PedalMessage      `json:"pedal_msgs"`
	TempoMsgs      []model.TempoMessage      `json:"tempo_msgs"`
}

// Hash returns a stable content hash of the Document. Two Documents with
// the same tempo, pedal, instrument and note sequences hash identically
// regardless of meta messages, resolution label or metadata.
func (d *Document) Hash() (string, error) {
	encoded, err := json.Marshal(hashData{
		InstrumentMsgs: d.InstrumentMsgs,
		NoteMsgs:       d.NoteMsgs,
		PedalMsgs:      d.PedalMsgs,
		TempoMsgs:      d.TempoMsgs,
	})
	if err != nil {
		return "", err
	}

	sum := md5.Sum(encoded)
	return hex.EncodeToString(sum[:]), nil
}
