package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/trsplat/pkg/plat"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// Render queues the loaded tracts onto plats for opts.Mode and executes
// them.
func Render(in *Inputs, opts Options, logger *log.Logger) ([]plat.Output, plat.Report, error) {
	popts := []plat.Option{
		plat.WithSettings(in.Settings),
		plat.WithDefiner(in.Definer),
		plat.WithLogger(logger),
		plat.WithMaxDimensions(opts.MaxWidth, opts.MaxHeight),
	}
	switch opts.Mode {
	case ModeSingle:
		return renderSingle(in, opts, popts)
	case ModeMega:
		return renderMega(in, popts)
	default:
		return renderGroup(in, opts, popts)
	}
}

func renderSingle(in *Inputs, opts Options, popts []plat.Option) ([]plat.Output, plat.Report, error) {
	doc, err := plat.NewDocument(trs.Undefined(), popts...)
	if err != nil {
		return nil, plat.Report{}, err
	}
	if err := doc.Add(plat.Tracts(in.Tracts)); err != nil {
		return nil, plat.Report{}, err
	}
	if opts.Header != "" {
		doc.SetHeader(opts.Header)
	}
	rep := doc.Execute()
	img, err := doc.Image()
	if err != nil {
		return nil, rep, err
	}
	return []plat.Output{{Name: doc.TwpRge().TwpRgeKey(), Image: img}}, rep, nil
}

func renderGroup(in *Inputs, opts Options, popts []plat.Option) ([]plat.Output, plat.Report, error) {
	g, err := plat.NewGroup(popts...)
	if err != nil {
		return nil, plat.Report{}, err
	}
	if err := g.Add(plat.Tracts(in.Tracts)); err != nil {
		return nil, plat.Report{}, err
	}
	subset := make([]trs.TRS, 0, len(opts.Only))
	for _, s := range opts.Only {
		t, err := trs.Parse(s)
		if err != nil {
			return nil, plat.Report{}, err
		}
		subset = append(subset, t)
	}
	if opts.Header != "" {
		for _, doc := range g.Documents() {
			doc.SetHeader(opts.Header)
		}
	}
	rep, err := g.Execute(subset...)
	if err != nil {
		return nil, rep, err
	}
	outs, err := g.Images()
	return outs, rep, err
}

func renderMega(in *Inputs, popts []plat.Option) ([]plat.Output, plat.Report, error) {
	m, err := plat.NewMegaPlat(popts...)
	if err != nil {
		return nil, plat.Report{}, err
	}
	if err := m.Add(plat.Tracts(in.Tracts)); err != nil {
		return nil, plat.Report{}, err
	}
	rep, err := m.Execute()
	if err != nil {
		return nil, rep, err
	}
	img, err := m.Image()
	if err != nil {
		return nil, rep, err
	}
	return []plat.Output{{Name: "megaplat", Image: img}}, rep, nil
}
