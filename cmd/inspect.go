package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lcrosetto/midicanon/midi"
	"github.com/lcrosetto/midicanon/pair"
	"github.com/lcrosetto/midicanon/util"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long:  `Inspects a MIDI file: message counts, duration, programs and content hash.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inspect(args[0])
	},
}

func inspect(path string) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		panic("Could not read midi file: " + err.Error())
	}
	d, err := pair.FromSMF(s)
	if err != nil {
		panic("Could not build document: " + err.Error())
	}

	fmt.Printf("ticks_per_beat: %v\n", d.TicksPerBeat)
	fmt.Printf("meta_msgs: %v\n", len(d.MetaMsgs))
	fmt.Printf("tempo_msgs: %v\n", len(d.TempoMsgs))
	fmt.Printf("pedal_msgs: %v\n", len(d.PedalMsgs))
	fmt.Printf("instrument_msgs: %v\n", len(d.InstrumentMsgs))
	fmt.Printf("note_msgs: %v\n", len(d.NoteMsgs))

	if len(d.NoteMsgs) > 0 {
		finalTick := 0
		for _, msg := range d.NoteMsgs {
			if msg.Data.End > finalTick {
				finalTick = msg.Data.End
			}
		}
		fmt.Printf("duration_ms: %v\n", d.TickToMs(finalTick))
	}

	fmt.Printf("programs: %v\n", util.SortedKeys(d.Programs()))

	hash, err := d.Hash()
	if err != nil {
		panic("Could not hash document: " + err.Error())
	}
	fmt.Printf("hash: %v\n", hash)
}
