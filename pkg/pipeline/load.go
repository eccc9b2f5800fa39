package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/trsplat/pkg/cache"
	"github.com/matzehuels/trsplat/pkg/lots"
	"github.com/matzehuels/trsplat/pkg/plat/settings"
	"github.com/matzehuels/trsplat/pkg/tract"
)

// Inputs are the loaded inputs of a render.
type Inputs struct {
	Tracts   []*tract.Tract
	Definer  *lots.Definer
	Settings *settings.Settings
}

// Load reads the tracts, lot definitions and settings named by opts. A
// settings file replaces the preset rather than refining it.
func Load(opts Options) (*Inputs, error) {
	opts.SetDefaults()
	in := &Inputs{}

	for _, path := range opts.TractFiles {
		ts, err := tract.ReadFile(path)
		if err != nil {
			return nil, err
		}
		in.Tracts = append(in.Tracts, ts...)
	}
	for _, c := range opts.Compact {
		t, err := tract.ParseCompact(c)
		if err != nil {
			return nil, err
		}
		in.Tracts = append(in.Tracts, t)
	}

	defOpts := []lots.Option{
		lots.WithDefaults(opts.Defaults),
		lots.WithStandardLotSize(opts.LotSize),
		lots.WithLogger(opts.Logger),
	}
	var err error
	if opts.LotsFile != "" {
		in.Definer, err = lots.FromCSV(opts.LotsFile, opts.LotHeaders, defOpts...)
	} else {
		in.Definer, err = lots.New(defOpts...)
	}
	if err != nil {
		return nil, err
	}

	if opts.SettingsFile != "" {
		in.Settings, err = settings.Load(opts.SettingsFile)
	} else {
		in.Settings, err = settings.Preset(opts.Preset)
	}
	if err != nil {
		return nil, err
	}
	return in, nil
}

// Hash returns a content hash of the inputs: the tracts, the explicit lot
// definitions, the default-lot policy, and the settings.
func (in *Inputs) Hash() (string, error) {
	var tracts, defs, st bytes.Buffer
	if err := tract.Encode(&tracts, in.Tracts); err != nil {
		return "", err
	}
	if err := in.Definer.WriteCSV(&defs, lots.DefaultHeaders); err != nil {
		return "", err
	}
	if err := in.Settings.Encode(&st); err != nil {
		return "", err
	}
	policy := fmt.Sprintf("defaults=%t lot_size=%d", in.Definer.AllowDefaults(), in.Definer.StandardLotSize())
	return cache.HashParts(tracts.Bytes(), defs.Bytes(), []byte(policy), st.Bytes()), nil
}
