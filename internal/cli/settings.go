package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trsplat/pkg/plat/settings"
)

// settingsCommand creates the settings command.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect plat settings",
	}
	cmd.AddCommand(c.settingsPresetsCommand())
	cmd.AddCommand(c.settingsDumpCommand())
	return cmd
}

func (c *CLI) settingsPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range settings.Presets() {
				s, err := settings.Preset(name)
				if err != nil {
					return err
				}
				printKeyValue(name, fmt.Sprintf("%d×%d px, sections %d px", s.Width, s.Height, s.SecLength))
			}
			return nil
		},
	}
}

func (c *CLI) settingsDumpCommand() *cobra.Command {
	var preset, output string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print a preset as TOML, as a starting point for --settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Preset(preset)
			if err != nil {
				return err
			}
			if output == "" {
				return s.Encode(os.Stdout)
			}
			if err := s.Save(output); err != nil {
				return err
			}
			printSuccess("Saved preset %s", preset)
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&preset, "preset", "p", "default", "preset to dump")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
