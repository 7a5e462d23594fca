package tempomap

import (
	"math"

	"github.com/lcrosetto/midicanon/model"
)

// tickToSecond converts a tick count to seconds at a fixed tempo
// (microseconds per quarter note).
func tickToSecond(ticks int, tempo int, ticksPerBeat int) float64 {
	return float64(ticks) * (float64(tempo) / 1e6) / float64(ticksPerBeat)
}

// activeSegment returns the greatest index i with tempoMsgs[i].Tick <= tick,
// or 0 if tick precedes the first entry. tempoMsgs must be sorted ascending.
func activeSegment(tick int, tempoMsgs []model.TempoMessage) int {
	idx := 0
	for i, msg := range tempoMsgs {
		if msg.Tick > tick {
			break
		}
		idx = i
	}
	return idx
}

// DurationMs calculates the elapsed wall-clock time in milliseconds between
// startTick and endTick, accumulating across every tempo segment boundary
// strictly between them. The sum is kept in floating point and rounded to
// the nearest millisecond exactly once, so per-segment rounding error
// cannot compound. tempoMsgs must be non-empty and sorted ascending by tick;
// the last tempo extends past the final change.
func DurationMs(startTick, endTick int, tempoMsgs []model.TempoMessage, ticksPerBeat int) int {
	idx := activeSegment(startTick, tempoMsgs)

	duration := 0.0
	currTick := startTick
	currTempo := tempoMsgs[idx].Data

	for _, next := range tempoMsgs[idx+1:] {
		if next.Tick >= endTick {
			break
		}
		duration += tickToSecond(next.Tick-currTick, currTempo, ticksPerBeat)
		currTick = next.Tick
		currTempo = next.Data
	}
	duration += tickToSecond(endTick-currTick, currTempo, ticksPerBeat)

	return int(math.Round(duration * 1e3))
}
