package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinwalk/pkg/config"
)

// configCommand creates the config command, which prints the settings a run
// on the given file would use.
func (c *CLI) configCommand() *cobra.Command {
	var showDir bool

	cmd := &cobra.Command{
		Use:   "config [file.svg]",
		Short: "Print the effective configuration as TOML",
		Long: `Print the effective configuration as TOML.

Settings come from --config, else .pinwalk.toml next to the file, else
config.toml in the user config directory, else the built-in defaults.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if showDir {
				dir, err := config.Dir()
				if err != nil {
					return err
				}
				fmt.Fprintln(c.Stdout, dir)
				return nil
			}

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			cfg, path, err := config.Resolve(c.configPath, input)
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Fprintln(c.Stdout, "# built-in defaults")
			} else {
				fmt.Fprintf(c.Stdout, "# %s\n", path)
			}
			return cfg.Encode(c.Stdout)
		},
	}

	cmd.Flags().BoolVar(&showDir, "dir", false, "print the user config directory instead")
	return cmd
}
