package tract

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/trs"
)

func TestNormalizeLot(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1", "L1"},
		{"l1", "L1"},
		{"Lot 01", "L1"},
		{"L12", "L12"},
		{"N2 of L1", "N2 of L1"},
		{"n/2 of lot 3", "N2 of L3"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeLot(tt.in)
			if err != nil {
				t.Fatalf("NormalizeLot(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeLot(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "NENE", "Lx"} {
		if _, err := NormalizeLot(bad); !errors.Is(err, errors.ErrCodeInvalidLot) {
			t.Errorf("NormalizeLot(%q) error = %v, want INVALID_LOT", bad, err)
		}
	}
}

func TestSplitLot(t *testing.T) {
	div, name := SplitLot("N2 of L1")
	if div != "N2" || name != "L1" {
		t.Errorf("SplitLot = (%q, %q)", div, name)
	}
	div, name = SplitLot("L4")
	if div != "" || name != "L4" {
		t.Errorf("SplitLot = (%q, %q)", div, name)
	}
	if n, ok := LotNumber("N2 of L13"); !ok || n != 13 {
		t.Errorf("LotNumber = %d, %v", n, ok)
	}
}

func TestNewExpandsAliquots(t *testing.T) {
	tr, err := New(trs.MustParse("154n97w01"), "S/2N/2", []string{"S2N2"}, []string{"1", "L1"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"SWNW", "SENW", "SWNE", "SENE"}
	if !slices.Equal(tr.QQs, want) {
		t.Errorf("QQs = %v, want %v", tr.QQs, want)
	}
	if !slices.Equal(tr.Lots, []string{"L1"}) {
		t.Errorf("Lots = %v, want [L1]", tr.Lots)
	}
	tr.Resolve([]string{"NENE", "SENE"}, nil)
	all := tr.AllQQs()
	if len(all) != 5 || all[4] != "NENE" {
		t.Errorf("AllQQs = %v", all)
	}
}

func TestParseCompact(t *testing.T) {
	tr, err := ParseCompact("154n97w01: L1, L2, S2N2")
	if err != nil {
		t.Fatal(err)
	}
	if tr.TRS.String() != "154n97w01" {
		t.Errorf("TRS = %s", tr.TRS)
	}
	if !slices.Equal(tr.Lots, []string{"L1", "L2"}) {
		t.Errorf("Lots = %v", tr.Lots)
	}
	if len(tr.QQs) != 4 {
		t.Errorf("QQs = %v", tr.QQs)
	}
	if tr.Desc != "L1, L2, S2N2" {
		t.Errorf("Desc = %q", tr.Desc)
	}

	if _, err := ParseCompact("no colon here"); err == nil {
		t.Error("expected error for missing colon")
	}
}

func TestDecode(t *testing.T) {
	src := `
- trs: 154n97w01
  desc: Lots 1, 2, S/2N/2
  aliquots: [S2N2]
  lots: [L1, L2]
- trs: garbage
  desc: something unparseable
- trs: ""
  desc: no trs at all
  aliquots: [NENE]
`
	ts, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 3 {
		t.Fatalf("got %d tracts, want 3", len(ts))
	}
	if !ts[0].TRS.IsValid() || len(ts[0].Lots) != 2 {
		t.Errorf("tract 0 = %+v", ts[0])
	}
	if !ts[1].TRS.IsError() {
		t.Errorf("tract 1 TRS = %s, want error sentinel", ts[1].TRS)
	}
	if !ts[2].TRS.IsUndefined() {
		t.Errorf("tract 2 TRS = %s, want undefined", ts[2].TRS)
	}
}

func TestEncodeDecodeJSON(t *testing.T) {
	ts, err := Decode(strings.NewReader(`[{"trs": "12s58e14", "aliquots": ["NE"]}]`))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, ts); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "12s58e14") {
		t.Errorf("encoded output missing TRS:\n%s", buf.String())
	}
}

func TestSort(t *testing.T) {
	ts := []*Tract{
		{TRS: trs.MustParse("154n97w02")},
		{TRS: trs.Undefined()},
		{TRS: trs.MustParse("154n97w01")},
	}
	Sort(ts)
	got := []string{ts[0].TRS.String(), ts[1].TRS.String(), ts[2].TRS.String()}
	want := []string{"154n97w01", "154n97w02", trs.Undefined().String()}
	if !slices.Equal(got, want) {
		t.Errorf("Sort = %v, want %v", got, want)
	}
}

func TestQuickDesc(t *testing.T) {
	sec := trs.MustParse("154n97w01")
	tests := []struct {
		name string
		desc string
		want string
	}{
		{"short", "Lots 1, 2, S2N2", "154n97w01: Lots 1, 2, S2N2"},
		{"long", strings.Repeat("a", 45), "154n97w01: " + strings.Repeat("a", 37) + "..."},
		{"multibyte at cut", strings.Repeat("a", 36) + "½NE¼ and more", "154n97w01: " + strings.Repeat("a", 36) + "½..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := (&Tract{TRS: sec, Desc: tt.desc}).QuickDesc()
			if got != tt.want {
				t.Errorf("QuickDesc() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("QuickDesc() = %q is not valid UTF-8", got)
			}
		})
	}
}
