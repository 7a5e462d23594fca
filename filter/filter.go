// Package filter implements the named accept/reject tests callers use to
// screen Documents. Like metadata functions, the legal set is fixed and
// dispatch goes through a closed registry.
package filter

import (
	"fmt"

	"github.com/lcrosetto/midicanon/config"
	"github.com/lcrosetto/midicanon/mididict"
	"github.com/lcrosetto/midicanon/tempomap"
)

// Result is a test verdict plus the value that was measured to reach it.
// Tests always produce a verdict: degenerate inputs (no notes, zero total
// duration) fail with a measured value of 0 rather than erroring.
type Result struct {
	Pass  bool
	Value float64
}

// Func screens one Document against policy arguments.
type Func func(d *mididict.Document, args config.FilterArgs) Result

var registry = map[string]Func{
	"max_programs":                  MaxPrograms,
	"max_instruments":               MaxInstruments,
	"total_note_frequency":          NoteFrequency,
	"note_frequency_per_instrument": NoteFrequencyPerInstrument,
	"min_length":                    MinLength,
}

// Get looks up a filter test by name.
func Get(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("error finding filter test for %v", name)
	}
	return fn, nil
}

// totalDurationMs measures the span from the first note start to the last
// note end. Returns 0 when the Document has no notes.
func totalDurationMs(d *mididict.Document) int {
	if len(d.NoteMsgs) == 0 {
		return 0
	}
	return tempomap.DurationMs(
		d.NoteMsgs[0].Data.Start,
		d.NoteMsgs[len(d.NoteMsgs)-1].Data.End,
		d.TempoMsgs,
		d.TicksPerBeat,
	)
}

// MaxPrograms fails Documents using more than args.Max distinct programs.
func MaxPrograms(d *mididict.Document, args config.FilterArgs) Result {
	n := len(d.Programs())
	return Result{Pass: n <= args.Max, Value: float64(n)}
}

// MaxInstruments fails Documents using more than args.Max distinct
// instrument groups.
func MaxInstruments(d *mididict.Document, args config.FilterArgs) Result {
	n := len(d.Instruments())
	return Result{Pass: n <= args.Max, Value: float64(n)}
}

// NoteFrequency fails Documents whose overall notes-per-second falls
// outside [args.MinPerSecond, args.MaxPerSecond].
func NoteFrequency(d *mididict.Document, args config.FilterArgs) Result {
	totalMs := totalDurationMs(d)
	if totalMs == 0 {
		return Result{Pass: false, Value: 0}
	}

	notesPerSecond := float64(len(d.NoteMsgs)) * 1e3 / float64(totalMs)
	pass := notesPerSecond >= args.MinPerSecond && notesPerSecond <= args.MaxPerSecond
	return Result{Pass: pass, Value: notesPerSecond}
}

// NoteFrequencyPerInstrument is NoteFrequency normalized by the number of
// distinct instrument groups.
func NoteFrequencyPerInstrument(d *mididict.Document, args config.FilterArgs) Result {
	numInstruments := len(d.Instruments())

	totalMs := totalDurationMs(d)
	if totalMs == 0 || numInstruments == 0 {
		return Result{Pass: false, Value: 0}
	}

	notesPerSecond := float64(len(d.NoteMsgs)) * 1e3 / float64(totalMs)
	perInstrument := notesPerSecond / float64(numInstruments)
	pass := perInstrument >= args.MinPerSecond && perInstrument <= args.MaxPerSecond
	return Result{Pass: pass, Value: perInstrument}
}

// MinLength fails Documents shorter than args.MinSeconds.
func MinLength(d *mididict.Document, args config.FilterArgs) Result {
	totalMs := totalDurationMs(d)
	if len(d.NoteMsgs) == 0 {
		return Result{Pass: false, Value: 0}
	}

	seconds := float64(totalMs) / 1e3
	return Result{Pass: seconds >= args.MinSeconds, Value: seconds}
}
