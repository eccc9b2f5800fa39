package lots

import (
	"encoding/csv"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/tract"
	"github.com/matzehuels/trsplat/pkg/trs"
)

// Headers names the columns of a lot-definition CSV file.
type Headers struct {
	Twp string
	Rge string
	Sec string
	Lot string
	QQ  string
}

// DefaultHeaders is the standard "twp,rge,sec,lot,qq" header.
var DefaultHeaders = Headers{Twp: "twp", Rge: "rge", Sec: "sec", Lot: "lot", QQ: "qq"}

func (h Headers) withDefaults() Headers {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Headers{
		Twp: pick(h.Twp, DefaultHeaders.Twp),
		Rge: pick(h.Rge, DefaultHeaders.Rge),
		Sec: pick(h.Sec, DefaultHeaders.Sec),
		Lot: pick(h.Lot, DefaultHeaders.Lot),
		QQ:  pick(h.QQ, DefaultHeaders.QQ),
	}
}

func (h Headers) row() []string { return []string{h.Twp, h.Rge, h.Sec, h.Lot, h.QQ} }

// canonical maps a custom header name to the csv tag of Row.
func (h Headers) canonical(col string) string {
	col = strings.TrimSpace(col)
	switch {
	case strings.EqualFold(col, h.Twp):
		return "twp"
	case strings.EqualFold(col, h.Rge):
		return "rge"
	case strings.EqualFold(col, h.Sec):
		return "sec"
	case strings.EqualFold(col, h.Lot):
		return "lot"
	case strings.EqualFold(col, h.QQ):
		return "qq"
	}
	return col
}

// Row is one line of a lot-definition CSV file.
type Row struct {
	Twp string `csv:"twp"`
	Rge string `csv:"rge"`
	Sec int    `csv:"sec"`
	Lot string `csv:"lot"`
	QQ  string `csv:"qq"`
}

// ReadCSV merges the definitions in r into d. Rows are applied in order, so
// a later row for the same lot overwrites an earlier one. Rows with an empty
// qq are skipped and additional columns are ignored. On error d is left
// unchanged.
func (d *Definer) ReadCSV(r io.Reader, headers Headers) error {
	headers = headers.withDefaults()
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	first, err := cr.Read()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCSV, err, "read lot definition header")
	}
	cols := make([]string, len(first))
	for i, c := range first {
		cols[i] = headers.canonical(c)
	}
	for _, need := range []string{"twp", "rge", "sec", "lot", "qq"} {
		if !slices.Contains(cols, need) {
			return errors.New(errors.ErrCodeInvalidCSV, "lot definitions missing column %q", need)
		}
	}

	dec, err := csvutil.NewDecoder(cr, cols...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCSV, err, "read lot definitions")
	}
	staged := NewStore()
	line := 1
	for {
		var row Row
		err := dec.Decode(&row)
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCSV, err, "lot definitions line %d", line)
		}
		t, err := trs.FromTwpRge(row.Twp, row.Rge, row.Sec)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCSV, err, "lot definitions line %d", line)
		}
		if strings.TrimSpace(row.QQ) == "" {
			d.logger.Debug("skipping undefined lot", "trs", t, "lot", row.Lot, "line", line)
			continue
		}
		if err := define(staged, t, row.Lot, row.QQ); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCSV, err, "lot definitions line %d", line)
		}
	}
	staged.Each(d.defs.Set)
	return nil
}

// LoadCSV merges the definitions in the CSV file at path into d.
func (d *Definer) LoadCSV(path string, headers Headers) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "lot definitions %s", path)
	}
	if err != nil {
		return err
	}
	defer f.Close()
	return d.ReadCSV(f, headers)
}

// FromCSV returns a new Definer loaded from the CSV file at path.
func FromCSV(path string, headers Headers, opts ...Option) (*Definer, error) {
	d, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := d.LoadCSV(path, headers); err != nil {
		return nil, err
	}
	return d, nil
}

// WriteCSV writes the explicit definitions of d. Defaults are not written.
func (d *Definer) WriteCSV(w io.Writer, headers Headers) error {
	var rows []Row
	d.defs.Each(func(t trs.TRS, lot string, def Definition) {
		rows = append(rows, Row{Twp: t.Twp(), Rge: t.Rge(), Sec: t.Sec, Lot: lot, QQ: def.Source})
	})
	return writeRows(w, headers, rows)
}

// SaveCSV writes the explicit definitions to the file at path, replacing it.
func (d *Definer) SaveCSV(path string, headers Headers) error {
	return writeFile(path, func(w io.Writer) error { return d.WriteCSV(w, headers) })
}

// WriteUndefinedCSV writes a definitions template listing the undefined lots
// of ts with empty qq values, ready to be filled in and loaded back.
func (d *Definer) WriteUndefinedCSV(w io.Writer, ts []*tract.Tract, headers Headers, opts ...ResolveOption) error {
	undefined := d.FindUndefinedLots(ts, opts...)
	keys := make([]trs.TRS, 0, len(undefined))
	for k := range undefined {
		keys = append(keys, trs.MustParse(k))
	}
	slices.SortFunc(keys, trs.Compare)
	var rows []Row
	for _, t := range keys {
		for _, lot := range undefined[t.String()] {
			rows = append(rows, Row{Twp: t.Twp(), Rge: t.Rge(), Sec: t.Sec, Lot: lot})
		}
	}
	return writeRows(w, headers, rows)
}

func writeRows(w io.Writer, headers Headers, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers.withDefaults().row()); err != nil {
		return err
	}
	enc := csvutil.NewEncoder(cw)
	enc.AutoHeader = false
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCSV, err, "write lot definitions")
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
