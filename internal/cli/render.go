package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trsplat/pkg/errors"
	"github.com/matzehuels/trsplat/pkg/lots"
	"github.com/matzehuels/trsplat/pkg/pipeline"
	"github.com/matzehuels/trsplat/pkg/plat/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	pipeline.Options

	output  string // output file, or base path when several plats are drawn
	noCache bool   // bypass the rendered-plat cache
}

// addLoadFlags registers the flags that choose tracts and lot definitions.
func addLoadFlags(cmd *cobra.Command, o *pipeline.Options) {
	cmd.Flags().StringArrayVarP(&o.Compact, "tract", "t", nil, `tract in compact form, e.g. "154n97w01: L1, L2, S2N2" (repeatable)`)
	cmd.Flags().StringVar(&o.LotsFile, "lots", "", "CSV of lot definitions (twp,rge,sec,lot,qq)")
	cmd.Flags().BoolVar(&o.Defaults, "defaults", false, "assume standard-township lots where none are defined")
	cmd.Flags().IntVar(&o.LotSize, "lot-size", lots.LotSize40, "acres per standard lot for --defaults: 40 or 80")
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [tracts.yaml...]",
		Short: "Draw plats of tracts",
		Long: `Draw plats of tracts read from YAML/JSON files and --tract flags.

Modes:
  single  one plat; every tract must be in the same Twp/Rge
  group   one plat per Twp/Rge (default)
  mega    every Twp/Rge side by side on one canvas`,
		Example: `  trsplat render -t "154n97w01: L1, L2, S2N2" --defaults -o plat.png
  trsplat render tracts.yaml --lots lots.csv -o plats.zip
  trsplat render tracts.yaml --mode mega --preset megaplat_s -o area.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.TractFiles = args
			return c.runRender(cmd.Context(), &opts)
		},
	}

	addLoadFlags(cmd, &opts.Options)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.png, .tif, .pdf, or .zip for all plats)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "output format: png, tiff, pdf (default: from --output)")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", pipeline.DefaultMode, "render mode: single, group, mega")
	cmd.Flags().StringVarP(&opts.Preset, "preset", "p", pipeline.DefaultPreset, "settings preset (see: trsplat settings presets)")
	cmd.Flags().StringVarP(&opts.SettingsFile, "settings", "s", "", "settings TOML file (replaces --preset)")
	cmd.Flags().StringSliceVar(&opts.Only, "only", nil, "render only these Twp/Rges, e.g. 154n97w (group mode)")
	cmd.Flags().StringVar(&opts.Header, "header", "", "custom header text")
	cmd.Flags().IntVar(&opts.MaxWidth, "max-width", 0, "largest megaplat width in pixels")
	cmd.Flags().IntVar(&opts.MaxHeight, "max-height", 0, "largest megaplat height in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	if opts.Format == "" && opts.output != "" && !strings.EqualFold(filepath.Ext(opts.output), ".zip") {
		opts.Format = string(sink.FormatFromPath(opts.output))
	}
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	format, _ := sink.ParseFormat(opts.Format)
	if opts.output == "" {
		opts.output = "plat" + format.Ext()
	}
	if err := errors.ValidateOutputPath(opts.output); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Drawing plats...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts.Options)
	if err != nil {
		if ctx.Err() != nil {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Render failed")
		return fmt.Errorf("%s", errors.UserMessage(err))
	}
	spinner.Stop()

	for _, w := range res.Warnings {
		printWarning("%s", w)
	}

	written, err := sink.Write(res.Artifacts, opts.output, format)
	if err != nil {
		return err
	}
	printSuccess("Rendered %d plat(s)", len(res.Artifacts))
	printStats(res.Stats.TractCount, len(res.Unplattable), res.CacheHit)
	for _, p := range written {
		printFile(p)
	}
	if len(res.Unplattable) > 0 && opts.LotsFile == "" && !opts.Defaults {
		printNextStep("Assume standard lots", "trsplat render --defaults ...")
	}
	return nil
}
