package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lcrosetto/midicanon/config"
	"github.com/lcrosetto/midicanon/mididict"
)

type maestroEntry struct {
	Composer string `json:"composer"`
	Title    string `json:"title"`
}

// maestroJSON looks up composer and form from a MAESTRO metadata file,
// keyed by file name with the dataset's ".midi" extension. Only used
// when processing MAESTRO; args.MaestroPath points at the json file.
func maestroJSON(src Source, d *mididict.Document, args config.MetadataArgs) (map[string]string, error) {
	path := args.MaestroPath
	if path == "" {
		path = "maestro.json"
	}

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading maestro metadata: %w", err)
	}
	var entries map[string]maestroEntry
	if err := json.Unmarshal(dat, &entries); err != nil {
		return nil, fmt.Errorf("error parsing maestro metadata: %w", err)
	}

	base := filepath.Base(src.Path)
	key := strings.TrimSuffix(base, filepath.Ext(base)) + ".midi"
	entry, ok := entries[key]
	if !ok {
		return nil, nil
	}

	res := make(map[string]string)
	if form := matchSingle(entry.Title, args.FormNames); form != "" {
		res["form"] = form
	}
	if composer := matchSingle(entry.Composer, args.ComposerNames); composer != "" {
		res["composer"] = composer
	}
	return res, nil
}
