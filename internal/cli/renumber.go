package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinwalk/pkg/config"
	"github.com/matzehuels/pinwalk/pkg/errors"
	"github.com/matzehuels/pinwalk/pkg/pipeline"
	"github.com/matzehuels/pinwalk/pkg/resolve"
)

// renumberFlags holds the per-run overrides of the breadboard and schematic
// commands. Only flags given on the command line replace config values.
type renumberFlags struct {
	base     int
	seed     string
	order    string
	graph    string
	mapping  string
	noRetire bool
	noDetail bool
}

// renumberCommand creates the command for mode.
func (c *CLI) renumberCommand(mode string) *cobra.Command {
	var flags renumberFlags

	cmd := &cobra.Command{
		Use:   mode + " <file.svg>...",
		Short: renumberShort[mode],
		Long:  renumberLong[mode],
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRenumber(cmd, mode, args, flags)
		},
	}

	cmd.Flags().IntVar(&flags.base, "base", 0, "first connector index (0 or 1)")
	cmd.Flags().StringVar(&flags.seed, "seed", "", "seed element id (default: the mode's sentinel)")
	cmd.Flags().StringVar(&flags.graph, "graph", "", "write the walk as a graph (.dot or .svg)")
	cmd.Flags().StringVar(&flags.mapping, "mapping", "", "write the mapping as JSON")
	cmd.Flags().BoolVar(&flags.noRetire, "no-retire", false, "keep ids of connectors the walk did not reach")
	cmd.Flags().BoolVar(&flags.noDetail, "no-detail", false, "write attributes on the tag line")
	if mode == pipeline.ModeBreadboard {
		cmd.Flags().StringVar(&flags.order, "order", "", "pin order: x, y, document or ccw")
		_ = cmd.RegisterFlagCompletionFunc("order", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			names := make([]string, len(resolve.Orderings))
			for i, o := range resolve.Orderings {
				names[i] = string(o)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		})
	}
	_ = cmd.MarkFlagFilename("graph", "dot", "svg")
	_ = cmd.MarkFlagFilename("mapping", "json")

	return cmd
}

var renumberShort = map[string]string{
	pipeline.ModeBreadboard: "Renumber breadboard and PCB connectors by position",
	pipeline.ModeSchematic:  "Renumber schematic connectors along their chain",
}

var renumberLong = map[string]string{
	pipeline.ModeBreadboard: `Renumber breadboard and PCB connectors by position.

The walk starts at connector0pin (or connector0pin+ when marked) and visits
the connectorNpin elements of the same group in pin order, left to right by
default. Terminals and legs follow their pin's new number.

With --debug 0 each file is replaced and the original kept as <file>.bak.
With --debug 1 or higher the result is printed and the file left alone.`,
	pipeline.ModeSchematic: `Renumber schematic connectors along their chain.

The walk starts at the element with id "?" and follows each element's
"next" attribute (or a "next:<id>" label) to the end of the chain. The rect
following each pin line becomes its terminal.

With --debug 0 each file is replaced and the original kept as <file>.bak.
With --debug 1 or higher the result is printed and the file left alone.`,
}

// apply copies the flags given on the command line over cfg.
func (f renumberFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("base") {
		cfg.Base = f.base
	}
	if changed("order") {
		cfg.Breadboard.Order = f.order
	}
	if f.noRetire {
		cfg.Retire = false
	}
	if f.noDetail {
		cfg.DetailAttributes = false
	}
}

// runRenumber processes each argument in turn. Arguments that are not
// files are reported and skipped; a failing file does not stop the rest.
func (c *CLI) runRenumber(cmd *cobra.Command, mode string, args []string, flags renumberFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := printer{w: c.Stderr}

	if len(args) > 1 && (flags.graph != "" || flags.mapping != "") {
		return errors.New(errors.ErrCodeInvalidConfig, "--graph and --mapping take a single input file")
	}

	runner := c.newRunner()
	prog := newProgress(logger)
	var processed, failed int

	for _, path := range args {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := errors.ValidateInputPath(path); err != nil {
			out.warning("skipping %s: %s", path, errors.UserMessage(err))
			continue
		}
		processed++

		cfg, cfgPath, err := config.Resolve(c.configPath, path)
		if err != nil {
			failed++
			out.failure("%s: %s", path, errors.UserMessage(err))
			continue
		}
		if cfgPath != "" {
			logger.Info("using config", "file", cfgPath)
		}
		flags.apply(cmd, &cfg)

		res, err := runner.Execute(ctx, path, pipeline.Options{
			Mode:        mode,
			Config:      cfg,
			Verbosity:   c.Verbosity,
			Seed:        flags.seed,
			GraphPath:   flags.graph,
			MappingPath: flags.mapping,
			Stdout:      c.Stdout,
		})
		if err != nil {
			failed++
			reportFailure(out, path, res, err)
			continue
		}
		reportResult(out, res)
	}

	prog.done(fmt.Sprintf("Processed %d files", processed))

	switch {
	case processed == 0:
		return errors.New(errors.ErrCodeInvalidPath, "no files to process")
	case failed > 0:
		return fmt.Errorf("%d of %d files failed", failed, processed)
	}
	return nil
}

func reportResult(out printer, res *pipeline.Result) {
	out.success("%s", StyleValue.Render(res.Path))
	out.stats(
		stat{n: res.Stats.Connectors, label: "connectors", always: true},
		stat{n: res.Stats.Renamed, label: "renamed", always: true},
		stat{n: res.Stats.Retired, label: "retired"},
		stat{n: res.Stats.References, label: "references"},
	)
	if res.Report != nil {
		for _, rn := range res.Report.Renames {
			if rn.Old != rn.New {
				out.detail("line %d connector %q changed to %q", rn.Line, rn.Old, rn.New)
			}
		}
	}
	if res.Backup != "" {
		out.file(res.Backup)
	}
	for _, w := range res.Warnings {
		if errors.IsWarning(w) {
			out.warning("%s", errors.UserMessage(w))
		} else {
			out.failure("%s", errors.UserMessage(w))
		}
	}
}

func reportFailure(out printer, path string, res *pipeline.Result, err error) {
	out.failure("%s: %s", path, errors.UserMessage(err))
	if res != nil && res.Traversal != nil && len(res.Traversal.Path) > 0 {
		last := res.Traversal.Path[len(res.Traversal.Path)-1]
		out.detail("walk stopped after %d connectors, last %q on line %d", len(res.Traversal.Path), last.ID, last.Line)
	}
	out.detail("file left unchanged")
}
