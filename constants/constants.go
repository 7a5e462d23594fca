package constants

import "os"

func GetConfigPath() string {
	path := os.Getenv("MIDICANON_CONFIG")
	if path != "" {
		return path
	}
	return "./config.json"
}

// DefaultTempo is the microseconds-per-quarter value synthesized when a
// file carries no set_tempo message (120 BPM).
const DefaultTempo = 500000

// DefaultProgram is the program synthesized when a file carries no
// program_change message (acoustic grand piano).
const DefaultProgram = 0

// SustainPedal is the control-change number for the sustain pedal.
const SustainPedal = 64

// DrumChannel is reserved for percussion and exempt from instrument removal.
const DrumChannel = 9

type programRange struct {
	lo, hi     uint8
	instrument string
}

// General MIDI program groups.
var programRanges = []programRange{
	{0, 7, "piano"},
	{8, 15, "chromatic"},
	{16, 23, "organ"},
	{24, 31, "guitar"},
	{32, 39, "bass"},
	{40, 47, "strings"},
	{48, 55, "ensemble"},
	{56, 63, "brass"},
	{64, 71, "reed"},
	{72, 79, "pipe"},
	{80, 87, "synth_lead"},
	{88, 95, "synth_pad"},
	{96, 103, "synth_effect"},
	{104, 111, "ethnic"},
	{112, 119, "percussive"},
	{120, 127, "sfx"},
}

// ProgramToInstrument maps a MIDI program 0..127 to its instrument
// group name.
func ProgramToInstrument(program uint8) string {
	for _, r := range programRanges {
		if program >= r.lo && program <= r.hi {
			return r.instrument
		}
	}
	return "sfx"
}

// InstrumentNames lists every instrument group name once, in program order.
func InstrumentNames() []string {
	names := make([]string, 0, len(programRanges))
	for _, r := range programRanges {
		names = append(names, r.instrument)
	}
	return names
}
