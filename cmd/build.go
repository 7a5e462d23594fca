package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lcrosetto/midicanon/assemble"
	"github.com/lcrosetto/midicanon/midi"
	"github.com/lcrosetto/midicanon/mididict"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build <in.json> <out.mid>",
	Short: "Builds a MIDI file from canonical JSON",
	Long:  `Builds a MIDI file from canonical JSON.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		build(args[0], args[1])
	},
}

func build(inPath, outPath string) {
	dat, err := os.ReadFile(inPath)
	if err != nil {
		panic("Could not read document: " + err.Error())
	}
	d, err := mididict.FromJSON(dat)
	if err != nil {
		panic("Could not parse document: " + err.Error())
	}

	s, err := assemble.ToSMF(d)
	if err != nil {
		panic("Could not assemble midi: " + err.Error())
	}
	if err := midi.WriteMidiFile(outPath, s); err != nil {
		panic("Could not write midi file: " + err.Error())
	}
}
