package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lcrosetto/midicanon/metadata"
	"github.com/lcrosetto/midicanon/midi"
	"github.com/lcrosetto/midicanon/pair"
)

func init() {
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <in.mid> <out.json>",
	Short: "Converts a MIDI file to canonical JSON",
	Long:  `Converts a MIDI file to canonical JSON, running the metadata functions enabled in config.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		convert(args[0], args[1])
	},
}

func convert(inPath, outPath string) {
	cfg := loadConfig()

	s, err := midi.ReadMidiFile(inPath)
	if err != nil {
		panic("Could not read midi file: " + err.Error())
	}
	d, err := pair.FromSMF(s)
	if err != nil {
		panic("Could not build document: " + err.Error())
	}

	src := metadata.Source{Path: inPath}
	if err := metadata.Apply(cfg.Data.Metadata, src, d); err != nil {
		panic("Could not collect metadata: " + err.Error())
	}

	dat, err := d.ToJSON()
	if err != nil {
		panic("Could not encode document: " + err.Error())
	}
	if err := os.WriteFile(outPath, dat, 0644); err != nil {
		panic("Could not write document: " + err.Error())
	}
}
