package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lcrosetto/midicanon/assemble"
	"github.com/lcrosetto/midicanon/midi"
	"github.com/lcrosetto/midicanon/pair"
)

var (
	cleanResolvePedal     bool
	cleanRemoveRedundant  bool
	cleanRemoveInstrument bool
)

func init() {
	cleanCmd.Flags().BoolVar(&cleanResolvePedal, "resolve-pedal", false, "extend note ends into sustain intervals")
	cleanCmd.Flags().BoolVar(&cleanRemoveRedundant, "remove-redundant-pedals", false, "delete pedal pairs with no audible effect")
	cleanCmd.Flags().BoolVar(&cleanRemoveInstrument, "remove-instruments", false, "delete channels playing groups flagged in config")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean <in.mid> <out.mid>",
	Short: "Normalizes a MIDI file",
	Long:  `Normalizes a MIDI file through the canonical document form, applying the selected cleanup passes.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		clean(args[0], args[1])
	},
}

func clean(inPath, outPath string) {
	cfg := loadConfig()

	s, err := midi.ReadMidiFile(inPath)
	if err != nil {
		panic("Could not read midi file: " + err.Error())
	}
	d, err := pair.FromSMF(s)
	if err != nil {
		panic("Could not build document: " + err.Error())
	}

	if cleanRemoveInstrument {
		d.RemoveInstruments(cfg.Data.Preprocessing.RemoveInstruments)
	}
	if cleanResolvePedal {
		d.ResolvePedal()
	}
	if cleanRemoveRedundant {
		d.RemoveRedundantPedals()
	}
	// Even with no pedal pass requested, re-flatten any same-pitch
	// overlaps so the output always round-trips.
	d.ResolveOverlaps()

	out, err := assemble.ToSMF(d)
	if err != nil {
		panic("Could not assemble midi: " + err.Error())
	}
	if err := midi.WriteMidiFile(outPath, out); err != nil {
		panic("Could not write midi file: " + err.Error())
	}
}
