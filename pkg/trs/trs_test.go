package trs

import (
	"slices"
	"testing"

	"github.com/matzehuels/trsplat/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		sec     int
		wantErr bool
	}{
		{"canonical", "154n97w01", "154n97w01", 1, false},
		{"single digit section", "154n97w1", "154n97w01", 1, false},
		{"uppercase", "154N97W36", "154n97w36", 36, false},
		{"no section", "154n97w", "154n97w__", 0, false},
		{"header style", "T154N-R97W-S14", "154n97w14", 14, false},
		{"south east", "12s58e04", "12s58e04", 4, false},
		{"spaces", " 154n 97w 01 ", "154n97w01", 1, false},
		{"undefined sentinel", "___z___z__", "___z___z__", 0, false},
		{"error sentinel", "XXXzXXXzXX", "XXXzXXXzXX", 0, false},
		{"empty", "", "___z___z__", 0, false},
		{"garbage", "north forty", "XXXzXXXzXX", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidTRS) {
				t.Errorf("Parse(%q) error code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidTRS)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
			if got.Sec != tt.sec {
				t.Errorf("Parse(%q).Sec = %d, want %d", tt.input, got.Sec, tt.sec)
			}
		})
	}
}

func TestSentinels(t *testing.T) {
	u := Undefined()
	if !u.IsUndefined() || u.IsError() || u.IsValid() {
		t.Errorf("Undefined flags wrong: undefined=%v error=%v valid=%v", u.IsUndefined(), u.IsError(), u.IsValid())
	}
	e := Error()
	if e.IsUndefined() || !e.IsError() || e.IsValid() {
		t.Errorf("Error flags wrong: undefined=%v error=%v valid=%v", e.IsUndefined(), e.IsError(), e.IsValid())
	}
	if (TRS{}) != u {
		t.Error("zero TRS should equal Undefined()")
	}
	if e.WithSection(4) != e {
		t.Error("WithSection should not alter sentinels")
	}
}

func TestHasSection(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"154n97w01", true},
		{"154n97w36", true},
		{"154n97w37", false},
		{"154n97w", false},
		{"___z___z__", false},
	}
	for _, tt := range tests {
		if got := MustParse(tt.input).HasSection(); got != tt.want {
			t.Errorf("HasSection(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFromTwpRge(t *testing.T) {
	got, err := FromTwpRge("154n", "97w", 6)
	if err != nil {
		t.Fatalf("FromTwpRge: %v", err)
	}
	if got.String() != "154n97w06" {
		t.Errorf("FromTwpRge = %q, want 154n97w06", got.String())
	}
	if got.Twp() != "154n" || got.Rge() != "97w" || got.TwpRgeKey() != "154n97w" {
		t.Errorf("parts = %q %q %q", got.Twp(), got.Rge(), got.TwpRgeKey())
	}
	if _, err := FromTwpRge("", "", 1); err == nil {
		t.Error("FromTwpRge with empty parts should fail")
	}
}

func TestPretty(t *testing.T) {
	tests := []struct {
		input string
		short bool
		want  string
	}{
		{"154n97w01", false, "Township 154 North, Range 97 West"},
		{"154n97w01", true, "T154N-R97W"},
		{"12s58e", false, "Township 12 South, Range 58 East"},
		{"12s58e", true, "T12S-R58E"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.input).Pretty(tt.short); got != tt.want {
			t.Errorf("Pretty(%q, %v) = %q, want %q", tt.input, tt.short, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	input := []string{
		"XXXzXXXzXX",
		"12s58e04",
		"154n97w02",
		"155n97w01",
		"154n96w01",
		"154n98w01",
		"___z___z__",
		"11s58e04",
		"154n97w01",
		"154n10e01",
	}
	want := []string{
		"155n97w01",
		"154n98w01",
		"154n97w01",
		"154n97w02",
		"154n96w01",
		"154n10e01",
		"11s58e04",
		"12s58e04",
		"___z___z__",
		"XXXzXXXzXX",
	}
	var ts []TRS
	for _, s := range input {
		ts = append(ts, MustParse(s))
	}
	slices.SortStableFunc(ts, Compare)
	var got []string
	for _, tr := range ts {
		got = append(got, tr.String())
	}
	if !slices.Equal(got, want) {
		t.Errorf("sorted = %v\nwant     %v", got, want)
	}
}

func TestSameHemisphere(t *testing.T) {
	a := MustParse("154n97w01")
	if !a.SameHemisphere(MustParse("1n1w")) {
		t.Error("154n97w and 1n1w share hemispheres")
	}
	if a.SameHemisphere(MustParse("1s97w")) {
		t.Error("154n97w and 1s97w do not share hemispheres")
	}
	if a.SameHemisphere(MustParse("154n97e")) {
		t.Error("154n97w and 154n97e do not share hemispheres")
	}
}
