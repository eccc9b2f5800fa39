package grid

import (
	"image"
	"slices"
	"testing"

	"github.com/matzehuels/trsplat/pkg/aliquot"
	"github.com/matzehuels/trsplat/pkg/lots"
	"github.com/matzehuels/trsplat/pkg/plat/canvas"
	"github.com/matzehuels/trsplat/pkg/plat/settings"
	"github.com/matzehuels/trsplat/pkg/tract"
	"github.com/matzehuels/trsplat/pkg/trs"
)

func newContext() (*Context, *canvas.Recorder) {
	rec := canvas.NewRecorder(1700, 2200)
	return &Context{Settings: settings.Default(), Surface: rec}, rec
}

func mustPath(t *testing.T, s string) aliquot.Path {
	t.Helper()
	p, err := aliquot.ParsePath(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSnakeLayout(t *testing.T) {
	seen := map[[2]int]int{}
	for sec := 1; sec <= 36; sec++ {
		row, col, ok := GridOffset(sec)
		if !ok {
			t.Fatalf("GridOffset(%d) not ok", sec)
		}
		if row < 0 || row > 5 || col < 0 || col > 5 {
			t.Fatalf("GridOffset(%d) = (%d, %d)", sec, row, col)
		}
		if prev, dup := seen[[2]int{row, col}]; dup {
			t.Fatalf("sections %d and %d share (%d, %d)", prev, sec, row, col)
		}
		seen[[2]int{row, col}] = sec
	}

	tests := []struct {
		sec, row, col int
	}{
		{6, 0, 0},
		{1, 0, 5},
		{7, 1, 0},
		{18, 2, 0},
		{31, 5, 0},
		{36, 5, 5},
	}
	for _, tt := range tests {
		row, col, _ := GridOffset(tt.sec)
		if row != tt.row || col != tt.col {
			t.Errorf("GridOffset(%d) = (%d, %d), want (%d, %d)", tt.sec, row, col, tt.row, tt.col)
		}
	}
	if _, _, ok := GridOffset(37); ok {
		t.Error("GridOffset(37) should not be ok")
	}
}

func TestRegister(t *testing.T) {
	root := NewTree()
	nene := mustPath(t, "NENE")
	root.Register(nene)

	filled := root.FilledNodes()
	if len(filled) != 1 {
		t.Fatalf("filled nodes = %d, want 1", len(filled))
	}
	if got := filled[0].Path(); !got.Equal(nene) || filled[0].Depth() != 2 {
		t.Errorf("filled path = %v depth %d", got, filled[0].Depth())
	}
	if len(filled[0].Sources()) != 0 {
		t.Errorf("sources = %v, want none", filled[0].Sources())
	}

	root.Register(nene, 3)
	if got := root.Find(nene).Sources(); !slices.Equal(got, []int{3}) {
		t.Errorf("sources = %v, want [3]", got)
	}
	if ne := root.Find(mustPath(t, "NE")); ne.Depth() != 1 || ne.Parent() != root || ne.Claimed() {
		t.Errorf("intermediate node = %+v", ne)
	}
}

func TestRegisterInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid quadrant")
		}
	}()
	NewTree().Register(aliquot.Path{aliquot.NE, aliquot.Quadrant(9)})
}

func TestConfigure(t *testing.T) {
	ctx, _ := newContext()
	root := NewTree()
	root.Register(mustPath(t, "NENE"))
	root.Register(mustPath(t, "SWSE"))
	root.Configure(ctx, image.Pt(1000, 2000))

	tests := []struct {
		path string
		xy   image.Point
		dim  int
	}{
		{"NE", image.Pt(1100, 2000), 100},
		{"NENE", image.Pt(1150, 2000), 50},
		{"SE", image.Pt(1100, 2100), 100},
		{"SWSE", image.Pt(1100, 2150), 50},
	}
	for _, tt := range tests {
		n := root.Find(mustPath(t, tt.path))
		if n.XY() != tt.xy || n.Dim() != tt.dim {
			t.Errorf("%s at %v dim %d, want %v dim %d", tt.path, n.XY(), n.Dim(), tt.xy, tt.dim)
		}
	}
}

func TestConfigurePrunes(t *testing.T) {
	ctx, _ := newContext()
	ctx.Settings.MaxDepth = 1
	root := NewTree()
	root.Register(mustPath(t, "NENE"), 4)
	root.Configure(ctx, image.Pt(0, 0))

	filled := root.FilledNodes()
	if len(filled) != 1 {
		t.Fatalf("filled nodes = %d, want 1", len(filled))
	}
	ne := filled[0]
	if ne.Depth() != 1 || ne.Label() != aliquot.NE {
		t.Errorf("filled node depth %d label %s", ne.Depth(), ne.Label())
	}
	if !ne.IsLeaf() {
		t.Error("pruned node still has children")
	}
	if !slices.Equal(ne.Sources(), []int{4}) {
		t.Errorf("pruned sources = %v, want [4]", ne.Sources())
	}
}

func TestFillAndLotNumbers(t *testing.T) {
	ctx, rec := newContext()
	root := NewTree()
	root.Register(mustPath(t, "NE"))
	root.Register(mustPath(t, "NENE"))
	root.Register(mustPath(t, "SWSW"), 2)
	root.Register(mustPath(t, "SWSW"), 1)
	root.Configure(ctx, image.Pt(0, 0))
	root.Fill(ctx)

	rects := rec.Filter(canvas.OpRect, canvas.Fill)
	if len(rects) != 2 {
		t.Fatalf("fill rects = %d, want 2 (NE covers NENE)", len(rects))
	}
	if rects[0].Rect != image.Rect(100, 0, 200, 100) {
		t.Errorf("NE rect = %v", rects[0].Rect)
	}

	root.WriteLotNumbers(ctx, 2)
	texts := rec.Filter(canvas.OpText, canvas.LotNumbers)
	if len(texts) != 1 || texts[0].Text != "1, 2" {
		t.Fatalf("lot texts = %+v", texts)
	}
	if texts[0].From != image.Pt(6, 156) {
		t.Errorf("lot text at %v, want offset from SWSW corner", texts[0].From)
	}
	root.WriteLotNumbers(ctx, 1)
	if len(rec.Filter(canvas.OpText, canvas.LotNumbers)) != 1 {
		t.Error("lot numbers written at the wrong depth")
	}
}

func TestSectionLines(t *testing.T) {
	ctx, rec := newContext()
	tw := NewTownship(trs.MustParse("154n97w"))
	s := tw.Section(1)
	s.DrawLines(ctx, image.Pt(250, 180))
	s.ClearCenter(ctx, image.Pt(250, 180))

	if n := len(rec.Filter(canvas.OpLine, canvas.GridLines)); n != 6 {
		t.Errorf("grid lines = %d, want 6", n)
	}
	borders := rec.Filter(canvas.OpLine, canvas.Borders)
	if len(borders) != 4 || borders[0].From != image.Pt(1250, 180) || borders[0].Width != 3 {
		t.Errorf("borders = %+v", borders)
	}
	if texts := rec.Texts(canvas.SectionNumbers); !slices.Equal(texts, []string{"1"}) {
		t.Errorf("section numbers = %v", texts)
	}
	box := rec.Filter(canvas.OpRect, canvas.SectionNumbers)
	if len(box) != 1 || box[0].Rect != image.Rect(1326, 256, 1374, 304) {
		t.Errorf("center box = %+v", box)
	}
}

func TestTownshipExecute(t *testing.T) {
	ctx, _ := newContext()
	d, err := lots.New(lots.WithDefaults(true), lots.WithStandardLotSize(40))
	if err != nil {
		t.Fatal(err)
	}
	tr, err := tract.ParseCompact("154n97w01: L1, L2, S2N2")
	if err != nil {
		t.Fatal(err)
	}
	stray, _ := tract.ParseCompact("154n97w: NENE")

	tw := NewTownship(tr.TRS)
	tw.Enqueue(tr)
	tw.Enqueue(stray)
	if got := tw.Dummy().Queue(); len(got) != 1 || got[0] != stray {
		t.Errorf("dummy queue = %v", got)
	}

	resolved := tw.Execute(ctx, d, ctx.Settings.GridTopLeft())
	if len(resolved) != 1 {
		t.Fatalf("resolved = %d, want 1", len(resolved))
	}
	if len(tr.UndefinedLots) != 0 {
		t.Errorf("undefined lots = %v", tr.UndefinedLots)
	}

	var got []string
	for _, n := range tw.Section(1).Tree.FilledNodes() {
		got = append(got, n.Path().String())
	}
	slices.Sort(got)
	want := []string{"NENE", "NWNE", "SENE", "SENW", "SWNE", "SWNW"}
	if !slices.Equal(got, want) {
		t.Errorf("filled = %v, want %v", got, want)
	}
	if ne := tw.NonEmptySections(); !slices.Equal(ne, []int{1}) {
		t.Errorf("NonEmptySections = %v", ne)
	}
}

func TestTownshipLotNumbers(t *testing.T) {
	ctx, rec := newContext()
	d, _ := lots.New(lots.WithDefaults(true))
	tw := NewTownship(trs.MustParse("154n97w"))
	store := d.AllDefinitions(tw.TwpRge)

	tw.WriteLotNumbers(ctx, store, ctx.Settings.GridTopLeft(), []int{6})
	if got := len(rec.Texts(canvas.LotNumbers)); got != 7 {
		t.Errorf("section 6 lot labels = %d, want 7", got)
	}

	rec.Ops = nil
	tw.WriteLotNumbers(ctx, store, ctx.Settings.GridTopLeft(), nil)
	// 5 sections × 4 + 7 + 5 sections × 4
	if got := len(rec.Texts(canvas.LotNumbers)); got != 47 {
		t.Errorf("all lot labels = %d, want 47", got)
	}
}
