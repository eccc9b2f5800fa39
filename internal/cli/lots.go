package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trsplat/pkg/lots"
	"github.com/matzehuels/trsplat/pkg/pipeline"
)

// lotsCommand creates the lot definitions command.
func (c *CLI) lotsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lots",
		Short: "Work with lot definitions",
	}
	cmd.AddCommand(c.lotsUndefinedCommand())
	return cmd
}

// lotsUndefinedCommand creates the "lots undefined" subcommand.
func (c *CLI) lotsUndefinedCommand() *cobra.Command {
	var (
		opts   pipeline.Options
		output string
	)
	cmd := &cobra.Command{
		Use:   "undefined [tracts.yaml...]",
		Short: "List lots that cannot be resolved, as a CSV template",
		Long: `List the lots referenced by the tracts that no definition or default
resolves. The output is a lot-definition CSV with an empty qq column, ready
to be filled in and passed back with --lots.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.TractFiles = args
			if len(opts.TractFiles) == 0 && len(opts.Compact) == 0 {
				return fmt.Errorf("no tracts given")
			}
			in, err := pipeline.Load(opts)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			n := 0
			for _, undefined := range in.Definer.FindUndefinedLots(in.Tracts) {
				n += len(undefined)
			}
			prog.done(fmt.Sprintf("Found %d undefined lots", n))

			var w io.Writer = os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := in.Definer.WriteUndefinedCSV(w, in.Tracts, lots.DefaultHeaders); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Wrote %d undefined lots", n)
				printFile(output)
				printNextStep("Fill in the qq column, then render with", "trsplat render --lots "+output)
			}
			return nil
		},
	}
	addLoadFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the CSV here instead of stdout")
	return cmd
}
