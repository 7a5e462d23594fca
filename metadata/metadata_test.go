package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lcrosetto/midicanon/config"
	"github.com/lcrosetto/midicanon/mididict"
	"github.com/lcrosetto/midicanon/model"
)

func TestMatchWord(t *testing.T) {
	cases := []struct {
		text string
		word string
		want bool
	}{
		{"js_bach_fugue", "bach", true},
		{"JS BACH fugue", "bach", true},
		{"Bach", "bach", true},
		{"bachianas", "bach", false},
		{"offenbach", "bach", false},
		{"faure_requiem", "Fauré", true},
		{"Fauré requiem", "faure", true},
		{"", "bach", false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, MatchWord(c.text, c.word), "text=%q word=%q", c.text, c.word)
	}
}

func TestComposerFilenameRequiresUniqueMatch(t *testing.T) {
	d := mididict.New(model.DocumentData{TicksPerBeat: 480})
	args := config.MetadataArgs{ComposerNames: []string{"bach", "chopin"}}

	res, err := composerFilename(Source{Path: "/data/bach_prelude.mid"}, d, args)
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"composer": "bach"}, res)

	res, err = composerFilename(Source{Path: "/data/bach_chopin_medley.mid"}, d, args)
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestComposerMetamsg(t *testing.T) {
	d := mididict.New(model.DocumentData{
		MetaMsgs:     []model.MetaMessage{{Type: "copyright", Data: "arranged from Chopin op.9"}},
		TicksPerBeat: 480,
	})
	args := config.MetadataArgs{ComposerNames: []string{"bach", "chopin"}}

	res, err := composerMetamsg(Source{}, d, args)
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"composer": "chopin"}, res)
}

func TestGetUnknownNameIsError(t *testing.T) {
	_, err := Get("no_such_function")
	assert.Error(t, err)
}

func TestApplyRunsInDeclaredOrder(t *testing.T) {
	d := mididict.New(model.DocumentData{TicksPerBeat: 480})

	cfg := config.MetadataConfig{Functions: []config.MetadataFunctionConfig{
		{
			Name: "composer_filename",
			Run:  true,
			Args: config.MetadataArgs{ComposerNames: []string{"bach"}},
		},
		{
			Name: "abs_path",
			Run:  true,
		},
		{
			Name: "form_filename",
			Run:  false, // disabled, must not run
			Args: config.MetadataArgs{FormNames: []string{"fugue"}},
		},
	}}

	err := Apply(cfg, Source{Path: "bach_fugue.mid"}, d)
	assert.NoError(t, err)
	assert.Equal(t, "bach", d.Metadata["composer"])
	assert.NotEmpty(t, d.Metadata["abs_path"])
	assert.NotContains(t, d.Metadata, "form")
}

func TestApplyUnknownFunctionFails(t *testing.T) {
	d := mididict.New(model.DocumentData{TicksPerBeat: 480})

	cfg := config.MetadataConfig{Functions: []config.MetadataFunctionConfig{
		{Name: "bogus", Run: true},
	}}

	assert.Error(t, Apply(cfg, Source{}, d))
}

func TestLaterFunctionsOverwriteEarlierKeys(t *testing.T) {
	d := mididict.New(model.DocumentData{
		MetaMsgs:     []model.MetaMessage{{Type: "text", Data: "chopin nocturne"}},
		TicksPerBeat: 480,
	})

	cfg := config.MetadataConfig{Functions: []config.MetadataFunctionConfig{
		{
			Name: "composer_filename",
			Run:  true,
			Args: config.MetadataArgs{ComposerNames: []string{"bach"}},
		},
		{
			Name: "composer_metamsg",
			Run:  true,
			Args: config.MetadataArgs{ComposerNames: []string{"chopin"}},
		},
	}}

	err := Apply(cfg, Source{Path: "bach_transcription.mid"}, d)
	assert.NoError(t, err)
	assert.Equal(t, "chopin", d.Metadata["composer"])
}
