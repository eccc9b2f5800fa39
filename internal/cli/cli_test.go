package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trsplat/pkg/plat/settings"
)

func newTestCLI() *CLI {
	return New(&bytes.Buffer{}, log.InfoLevel)
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	root := newTestCLI().RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()
	want := map[string]bool{"render": false, "lots": false, "settings": false, "cache": false, "completion": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSettingsDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plat.toml")
	if err := execute(t, "settings", "dump", "--preset", "square_s", "-o", path); err != nil {
		t.Fatalf("settings dump: %v", err)
	}
	got, err := settings.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want, _ := settings.Preset("square_s")
	if got.Width != want.Width || got.SecLength != want.SecLength {
		t.Errorf("dumped settings = %dx%d sec %d, want %dx%d sec %d",
			got.Width, got.Height, got.SecLength, want.Width, want.Height, want.SecLength)
	}

	if err := execute(t, "settings", "dump", "--preset", "nope"); err == nil {
		t.Error("settings dump with an unknown preset should fail")
	}
}

func TestLotsUndefined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "undefined.csv")
	err := execute(t, "lots", "undefined", "-t", "154n97w01: L1, L2, L5", "-o", path)
	if err != nil {
		t.Fatalf("lots undefined: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header plus 3 lots: %v", len(rows), rows)
	}

	if err := execute(t, "lots", "undefined"); err == nil {
		t.Error("lots undefined without tracts should fail")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		args  []string
		files []string
	}{
		{
			name:  "single png",
			args:  []string{"-t", "154n97w01: NE4", "-o", filepath.Join(dir, "one.png")},
			files: []string{"one.png"},
		},
		{
			name:  "group tiff",
			args:  []string{"-t", "154n97w01: NE4", "-t", "155n97w36: SW4", "-o", filepath.Join(dir, "plats.tif")},
			files: []string{"plats_154n97w.tif", "plats_155n97w.tif"},
		},
		{
			name:  "group zip",
			args:  []string{"-t", "154n97w01: NE4", "-t", "155n97w36: SW4", "-o", filepath.Join(dir, "plats.zip")},
			files: []string{"plats.zip"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "--preset", "square_s", "--no-cache"}, tt.args...)
			if err := execute(t, args...); err != nil {
				t.Fatalf("render: %v", err)
			}
			for _, name := range tt.files {
				if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
					t.Errorf("expected output %s: %v", name, err)
				}
			}
		})
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no tracts", []string{"render"}, "no tracts"},
		{"bad mode", []string{"render", "-t", "154n97w01: NE4", "--mode", "poster"}, "mode"},
		{"mismatch", []string{"render", "--mode", "single", "-t", "154n97w01: NE4", "-t", "155n97w01: NE4", "-o", "x.png"}, "154n97w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
