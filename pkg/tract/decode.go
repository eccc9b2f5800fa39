package tract

import (
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// Record is the serialised form of a parsed tract, as written by the
// external parser. YAML and JSON are both accepted.
//
//	- trs: 154n97w01
//	  desc: Lots 1, 2, S/2N/2
//	  aliquots: [S2N2]
//	  lots: [L1, L2]
type Record struct {
	TRS      string   `yaml:"trs" json:"trs"`
	Desc     string   `yaml:"desc" json:"desc"`
	Aliquots []string `yaml:"aliquots" json:"aliquots"`
	Lots     []string `yaml:"lots" json:"lots"`
}

// Decode reads a YAML (or JSON) list of tract records. A TRS that cannot be
// parsed becomes the error sentinel so the tract can still be reported as
// unplattable.
func Decode(r io.Reader) ([]*Tract, error) {
	var recs []Record
	if err := yaml.NewDecoder(r).Decode(&recs); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode tracts")
	}
	out := make([]*Tract, 0, len(recs))
	for _, rec := range recs {
		t, _ := trs.Parse(rec.TRS)
		tr, err := New(t, rec.Desc, rec.Aliquots, rec.Lots)
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, nil
}

// ReadFile decodes the tract records in the file at path.
func ReadFile(path string) ([]*Tract, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tract file %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes tracts as YAML records.
func Encode(w io.Writer, ts []*Tract) error {
	recs := make([]Record, 0, len(ts))
	for _, t := range ts {
		recs = append(recs, Record{TRS: t.TRS.String(), Desc: t.Desc, Aliquots: t.QQs, Lots: t.Lots})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(recs); err != nil {
		return err
	}
	return enc.Close()
}

// ParseCompact parses the one-line form "154n97w01: L1, L2, S2N2". Items
// that look like lots ("L1", "Lot 3", "N2 of L1") are lots; everything else
// is an aliquot. The item list becomes the description.
func ParseCompact(s string) (*Tract, error) {
	head, body, ok := strings.Cut(s, ":")
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "compact tract %q must look like \"154n97w01: L1, NENE\"", s)
	}
	t, err := trs.Parse(head)
	if err != nil {
		return nil, err
	}
	var aliquots, lots []string
	var items []string
	for _, item := range strings.Split(body, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, item)
		if isLotItem(item) {
			lots = append(lots, item)
		} else {
			aliquots = append(aliquots, item)
		}
	}
	return New(t, strings.Join(items, ", "), aliquots, lots)
}

func isLotItem(item string) bool {
	_, err := NormalizeLot(item)
	if err != nil {
		return false
	}
	u := strings.ToUpper(item)
	return strings.HasPrefix(u, "L") || strings.Contains(u, " OF ")
}
