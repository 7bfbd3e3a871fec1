// Package cli implements the pinwalk command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/pinwalk/pkg/buildinfo"
	"github.com/matzehuels/pinwalk/pkg/config"
	"github.com/matzehuels/pinwalk/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for the command and executables.
	appName = "pinwalk"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Verbosity is the current debug level. [Run] sets it from PINWALK_DEBUG
	// before parsing; the --debug flag overrides it before a command runs.
	Verbosity config.Verbosity

	// Stdout receives XML and config output, Stderr status lines.
	Stdout io.Writer
	Stderr io.Writer

	configPath string
	debug      int
}

// New creates a new CLI instance logging to stderr.
func New(stdout, stderr io.Writer) *CLI {
	return &CLI{
		Logger: newLogger(stderr, config.Silent.Level()),
		Stdout: stdout,
		Stderr: stderr,
	}
}

// SetVerbosity updates the debug level and the logger's level.
func (c *CLI) SetVerbosity(v config.Verbosity) {
	c.Verbosity = v
	c.Logger.SetLevel(v.Level())
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Pinwalk renumbers the connectors of part drawings",
		Long: `Pinwalk walks the connectors of an SVG part drawing from a seed element and
renames them connector0pin, connector1pin, ... in walk order, along with
their terminals, legs and every reference to them.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.preRun,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Stdout)
	root.SetErr(c.Stderr)

	root.PersistentFlags().IntVarP(&c.debug, "debug", "d", 0, "debug level 0-4 (0 replaces files, 1+ prints to stdout)")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: .pinwalk.toml next to the input, then the user config)")

	// Register all subcommands
	root.AddCommand(c.renumberCommand(pipeline.ModeBreadboard))
	root.AddCommand(c.renumberCommand(pipeline.ModeSchematic))
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// preRun applies the --debug flag over the verbosity taken from the
// environment and attaches the logger to the command context.
func (c *CLI) preRun(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("debug") {
		v, err := config.ParseVerbosity(cmd.Flag("debug").Value.String())
		if err != nil {
			return err
		}
		c.SetVerbosity(v)
	}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		c.Logger.Debug("flag", "command", cmd.Name(), "name", f.Name, "value", f.Value.String())
	})
	c.Logger.Debug("parsed", "command", cmd.CommandPath(), "args", args, "verbosity", c.Verbosity)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}
