package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lcrosetto/midicanon/config"
	"github.com/lcrosetto/midicanon/constants"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "midicanon",
	Short: "Canonical MIDI document tooling",
	Long:  `Normalizes Standard MIDI Files into a canonical, analyzable document form and back.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config.json")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// loadConfig reads the configured config file. Falls back to defaults
// when no flag is given and no file exists at the default path.
func loadConfig() *config.Config {
	path := cfgPath
	if path == "" {
		path = constants.GetConfigPath()
		cfg, err := config.Load(path)
		if err != nil {
			return config.Default()
		}
		return cfg
	}

	cfg, err := config.Load(path)
	if err != nil {
		panic("Could not load config: " + err.Error())
	}
	return cfg
}
