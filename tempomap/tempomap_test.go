package tempomap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lcrosetto/midicanon/model"
)

func TestSingleTempoQuarterNote(t *testing.T) {
	tempos := []model.TempoMessage{{Data: 500000, Tick: 0}}

	assert := assert.New(t)
	// 500000 us per quarter at 480 ppq: one quarter is 500 ms.
	assert.Equal(500, DurationMs(0, 480, tempos, 480))
	assert.Equal(1000, DurationMs(0, 960, tempos, 480))
	assert.Equal(0, DurationMs(480, 480, tempos, 480))
}

func TestCrossesTempoChange(t *testing.T) {
	// 480 ticks at 500000 us/q then 480 ticks at 250000 us/q.
	tempos := []model.TempoMessage{
		{Data: 500000, Tick: 0},
		{Data: 250000, Tick: 480},
	}

	assert := assert.New(t)
	assert.Equal(750, DurationMs(0, 960, tempos, 480))
	assert.Equal(250, DurationMs(480, 960, tempos, 480))
	// Last tempo extends past the final change.
	assert.Equal(1250, DurationMs(0, 1920, tempos, 480))
}

func TestStartBeforeFirstEntry(t *testing.T) {
	// First tempo entry applies even to ticks before it.
	tempos := []model.TempoMessage{{Data: 500000, Tick: 100}}

	assert.Equal(t, 500, DurationMs(0, 480, tempos, 480))
}

func TestStartAfterLastEntry(t *testing.T) {
	tempos := []model.TempoMessage{
		{Data: 500000, Tick: 0},
		{Data: 250000, Tick: 480},
	}

	assert.Equal(t, 250, DurationMs(960, 1440, tempos, 480))
}

func TestRoundsOnceAtTheEnd(t *testing.T) {
	// 7 ticks per segment at 333333 us/q over 1000 ppq would lose up to
	// half a ms per segment if rounded per segment.
	tempos := []model.TempoMessage{
		{Data: 333333, Tick: 0},
		{Data: 333333, Tick: 7},
		{Data: 333333, Tick: 14},
		{Data: 333333, Tick: 21},
	}

	// 28 ticks * 333333/1e6/1000 s = 9.333 ms -> 9.
	assert.Equal(t, 9, DurationMs(0, 28, tempos, 1000))
}

func TestAdditivityWithinOneMs(t *testing.T) {
	tempos := []model.TempoMessage{
		{Data: 500000, Tick: 0},
		{Data: 300000, Tick: 333},
		{Data: 700000, Tick: 1000},
	}

	ticks := []int{0, 100, 333, 500, 999, 1000, 1500}
	for _, a := range ticks {
		for _, b := range ticks {
			for _, c := range ticks {
				if a > b || b > c {
					continue
				}
				whole := DurationMs(a, c, tempos, 480)
				split := DurationMs(a, b, tempos, 480) + DurationMs(b, c, tempos, 480)
				diff := whole - split
				if diff < 0 {
					diff = -diff
				}
				assert.LessOrEqual(t, diff, 1, "split at %v over [%v,%v]", b, a, c)
			}
		}
	}
}
