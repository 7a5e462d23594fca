// Package metadata implements the named metadata functions that enrich a
// Document's metadata map. The legal set of functions is fixed: dispatch
// goes through a closed registry and an unknown name is a configuration
// error, not bad data.
package metadata

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lcrosetto/midicanon/config"
	"github.com/lcrosetto/midicanon/mididict"
)

// Source is a handle to the file a Document was built from.
type Source struct {
	Path string
}

// Stem returns the file name without directory or extension.
func (s Source) Stem() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Func collects metadata for one Document. A nil or empty result means
// the function found nothing; it is not an error.
type Func func(src Source, d *mididict.Document, args config.MetadataArgs) (map[string]string, error)

var registry = map[string]Func{
	"composer_filename": composerFilename,
	"composer_metamsg":  composerMetamsg,
	"form_filename":     formFilename,
	"maestro_json":      maestroJSON,
	"abs_path":          absPath,
	"db_lookup":         dbLookup,
}

// Get looks up a metadata function by name.
func Get(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("error finding metadata function for %v", name)
	}
	return fn, nil
}

// Apply runs the enabled metadata functions in configuration-declared
// order, merging their results into the Document's metadata map. Later
// functions overwrite keys written by earlier ones.
func Apply(cfg config.MetadataConfig, src Source, d *mididict.Document) error {
	for _, fnCfg := range cfg.Functions {
		if !fnCfg.Run {
			continue
		}
		fn, err := Get(fnCfg.Name)
		if err != nil {
			return err
		}
		collected, err := fn(src, d, fnCfg.Args)
		if err != nil {
			return fmt.Errorf("metadata function %v: %w", fnCfg.Name, err)
		}
		for k, v := range collected {
			d.Metadata[k] = v
		}
	}
	return nil
}

// matchSingle returns the single name matching text, or "" when zero or
// several names match. Requiring a unique match keeps ambiguous file
// names from mislabeling a Document.
func matchSingle(text string, names []string) string {
	var matched []string
	for _, name := range names {
		if MatchWord(text, name) {
			matched = append(matched, name)
		}
	}
	if len(matched) == 1 {
		return matched[0]
	}
	return ""
}

func composerFilename(src Source, d *mididict.Document, args config.MetadataArgs) (map[string]string, error) {
	if name := matchSingle(src.Stem(), args.ComposerNames); name != "" {
		return map[string]string{"composer": name}, nil
	}
	return nil, nil
}

func formFilename(src Source, d *mididict.Document, args config.MetadataArgs) (map[string]string, error) {
	if name := matchSingle(src.Stem(), args.FormNames); name != "" {
		return map[string]string{"form": name}, nil
	}
	return nil, nil
}

func composerMetamsg(src Source, d *mididict.Document, args config.MetadataArgs) (map[string]string, error) {
	matched := make(map[string]bool)
	for _, msg := range d.MetaMsgs {
		for _, name := range args.ComposerNames {
			if MatchWord(msg.Data, name) {
				matched[name] = true
			}
		}
	}
	if len(matched) == 1 {
		for name := range matched {
			return map[string]string{"composer": name}, nil
		}
	}
	return nil, nil
}

func absPath(src Source, d *mididict.Document, args config.MetadataArgs) (map[string]string, error) {
	abs, err := filepath.Abs(src.Path)
	if err != nil {
		return nil, err
	}
	return map[string]string{"abs_path": abs}, nil
}
