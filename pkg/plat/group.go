package plat

import (
	"image"
	"slices"

	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/tract"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// Group plats any number of Twp/Rges, one Document each. Documents are
// created as their first tract arrives and share the group's settings and
// lot definitions.
type Group struct {
	cfg     *config
	docs    map[string]*Document
	unclear []*tract.Tract
}

// NewGroup returns an empty group.
func NewGroup(opts ...Option) (*Group, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Group{cfg: cfg, docs: map[string]*Document{}}, nil
}

// Add queues items on the document for their Twp/Rge.
func (g *Group) Add(items ...Plattable) error {
	ts, err := expand(items)
	if err != nil {
		return err
	}
	for _, t := range ts {
		if !t.TRS.IsValid() {
			g.unclear = append(g.unclear, t)
			continue
		}
		doc, err := g.document(t.TRS)
		if err != nil {
			return err
		}
		doc.enqueue(t)
	}
	return nil
}

func (g *Group) document(t trs.TRS) (*Document, error) {
	key := t.TwpRgeKey()
	if doc, ok := g.docs[key]; ok {
		return doc, nil
	}
	doc, err := newDocument(g.cfg, t)
	if err != nil {
		return nil, err
	}
	doc.shared = true
	g.docs[key] = doc
	g.cfg.logger.Debug("new document", "twprge", key)
	return doc, nil
}

// Document returns the document for twprge, if any.
func (g *Group) Document(twprge trs.TRS) (*Document, bool) {
	doc, ok := g.docs[twprge.TwpRgeKey()]
	return doc, ok
}

// Documents returns every document in plat order.
func (g *Group) Documents() []*Document {
	out := make([]*Document, 0, len(g.docs))
	for _, doc := range g.docs {
		out = append(out, doc)
	}
	slices.SortFunc(out, func(a, b *Document) int { return trs.Compare(a.twprge, b.twprge) })
	return out
}

// Unclear returns tracts that could not be assigned to any Twp/Rge.
func (g *Group) Unclear() []*tract.Tract { return g.unclear }

// Execute executes the documents for subset, or every document when subset
// is empty. A Twp/Rge named more than once runs once. Lot definitions are primed for all of the group's townships
// for the duration of the call.
func (g *Group) Execute(subset ...trs.TRS) (Report, error) {
	docs := g.Documents()
	if len(subset) > 0 {
		docs = docs[:0:0]
		for _, t := range subset {
			doc, ok := g.Document(t)
			if !ok {
				return Report{}, errors.New(errors.ErrCodeNotFound, "no tracts queued for %s", t.TwpRgeKey())
			}
			if !slices.Contains(docs, doc) {
				docs = append(docs, doc)
			}
		}
	}

	twprges := make([]trs.TRS, 0, len(g.docs))
	for _, doc := range g.Documents() {
		twprges = append(twprges, doc.twprge)
	}
	release := g.cfg.definer.Prime(twprges...)
	defer release()

	var rep Report
	rep.unclear(g.cfg.logger, g.unclear)
	for _, doc := range docs {
		rep.Merge(doc.Execute())
	}
	return rep, nil
}

// Output is one rendered image with a name for its file.
type Output struct {
	Name  string
	Image image.Image
}

// Images renders every executed document.
func (g *Group) Images() ([]Output, error) {
	var out []Output
	for _, doc := range g.Documents() {
		if doc.State() < Executed {
			continue
		}
		img, err := doc.Image()
		if err != nil {
			return nil, err
		}
		out = append(out, Output{Name: doc.twprge.TwpRgeKey(), Image: img})
	}
	return out, nil
}
