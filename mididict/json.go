package mididict

import (
	"encoding/json"
	"fmt"

	"github.com/lcrosetto/midicanon/model"
)

// FromJSON deserializes interchange JSON into a Document. The top-level
// key set must match the canonical format exactly; anything missing or
// extra is rejected before construction.
func FromJSON(data []byte) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	if len(raw) != len(model.DocumentKeys) {
		return nil, fmt.Errorf("document has %v top-level keys, want %v", len(raw), len(model.DocumentKeys))
	}
	for _, key := range model.DocumentKeys {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("document is missing key %q", key)
		}
	}

	var docData model.DocumentData
	if err := json.Unmarshal(data, &docData); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	return New(docData), nil
}

// ToJSON serializes the Document into interchange JSON.
func (d *Document) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d.Data(), "", "  ")
}
