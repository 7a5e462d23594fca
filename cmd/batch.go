package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lcrosetto/midicanon/config"
	"github.com/lcrosetto/midicanon/filter"
	"github.com/lcrosetto/midicanon/metadata"
	"github.com/lcrosetto/midicanon/midi"
	"github.com/lcrosetto/midicanon/pair"
	"github.com/lcrosetto/midicanon/util"
)

var (
	batchWorkers int
	batchMaxNum  int
)

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 4, "number of parallel workers")
	batchCmd.Flags().IntVar(&batchMaxNum, "max", 0, "max files to process (0 = all)")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch <src-dir> <out-dir>",
	Short: "Converts a directory of MIDI files",
	Long: `Converts every MIDI file under src-dir to canonical JSON, rejecting
files that fail the filter tests enabled in config. Files are independent, so
they are processed one Document per worker with no cross-file coordination.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		batch(args[0], args[1])
	},
}

type batchResult struct {
	Path     string             `json:"path"`
	Accepted bool               `json:"accepted"`
	Reason   string             `json:"reason,omitempty"`
	Hash     string             `json:"hash,omitempty"`
	Verdicts map[string]float64 `json:"verdicts,omitempty"`
}

type batchManifest struct {
	RunID    string        `json:"run_id"`
	Total    int           `json:"total"`
	Accepted int           `json:"accepted"`
	Results  []batchResult `json:"results"`
}

func batch(srcDir, outDir string) {
	cfg := loadConfig()

	if err := os.MkdirAll(outDir, 0777); err != nil {
		panic("Could not create output dir: " + err.Error())
	}

	paths := util.GatherAllMidiPaths(srcDir, batchMaxNum)
	fmt.Printf("Processing %v midi files\n", len(paths))

	jobs := make(chan string)
	results := make(chan batchResult)

	var wg sync.WaitGroup
	for w := 0; w < batchWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- processOne(cfg, path, outDir)
			}
		}()
	}
	go func() {
		for _, p := range paths {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	manifest := batchManifest{RunID: uuid.New().String()}
	for res := range results {
		manifest.Total += 1
		if res.Accepted {
			manifest.Accepted += 1
		}
		manifest.Results = append(manifest.Results, res)
	}

	dat, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		panic("Could not encode manifest: " + err.Error())
	}
	manifestPath := filepath.Join(outDir, manifest.RunID+".manifest.json")
	if err := os.WriteFile(manifestPath, dat, 0644); err != nil {
		panic("Could not write manifest: " + err.Error())
	}
	fmt.Printf("Accepted %v of %v files, manifest at %v\n", manifest.Accepted, manifest.Total, manifestPath)
}

// processOne converts a single file, screens it, and writes the canonical
// JSON next to its siblings in outDir. Failures become rejected manifest
// entries rather than aborting the whole run.
func processOne(cfg *config.Config, path, outDir string) batchResult {
	res := batchResult{Path: path}

	s, err := midi.ReadMidiFile(path)
	if err != nil {
		res.Reason = err.Error()
		return res
	}
	d, err := pair.FromSMF(s)
	if err != nil {
		res.Reason = err.Error()
		return res
	}

	d.RemoveInstruments(cfg.Data.Preprocessing.RemoveInstruments)

	res.Verdicts = make(map[string]float64)
	for _, testCfg := range cfg.Data.Tests {
		if !testCfg.Run {
			continue
		}
		fn, err := filter.Get(testCfg.Name)
		if err != nil {
			// Unknown test name is a config error, not bad data.
			panic(err.Error())
		}
		verdict := fn(d, testCfg.Args)
		res.Verdicts[testCfg.Name] = verdict.Value
		if !verdict.Pass {
			res.Reason = "failed test " + testCfg.Name
			return res
		}
	}

	src := metadata.Source{Path: path}
	if err := metadata.Apply(cfg.Data.Metadata, src, d); err != nil {
		panic(err.Error())
	}

	dat, err := d.ToJSON()
	if err != nil {
		res.Reason = err.Error()
		return res
	}
	base := filepath.Base(path)
	outPath := filepath.Join(outDir, base[:len(base)-len(filepath.Ext(base))]+".json")
	if err := os.WriteFile(outPath, dat, 0644); err != nil {
		res.Reason = err.Error()
		return res
	}

	hash, err := d.Hash()
	if err != nil {
		res.Reason = err.Error()
		return res
	}
	res.Hash = hash
	res.Accepted = true
	return res
}
