package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinwalk/pkg/config"
	"github.com/matzehuels/pinwalk/pkg/errors"
	pio "github.com/matzehuels/pinwalk/pkg/io"
	"github.com/matzehuels/pinwalk/pkg/observability"
	"github.com/matzehuels/pinwalk/pkg/render/nodelink"
	"github.com/matzehuels/pinwalk/pkg/renumber"
	"github.com/matzehuels/pinwalk/pkg/svg"
	"github.com/matzehuels/pinwalk/pkg/traverse"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Files are independent, so the same Runner can process any number
// of them in sequence.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner.
// If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → walk → apply → write pipeline on path.
//
// Fatal failures return before anything is written: the input file is left
// byte-identical and no backup or side output is created. The returned
// result is non-nil whenever the options were valid, so callers can report
// how far a failed run got.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Path: path}
	hooks := r.hooks(opts)
	start := time.Now()
	hooks.pipeline.OnFileStart(ctx, path, opts.Mode)

	err := r.execute(ctx, path, opts, hooks, result)
	hooks.pipeline.OnFileComplete(ctx, path, time.Since(start), err)
	return result, err
}

func (r *Runner) execute(ctx context.Context, path string, opts Options, hooks stageHooks, result *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := errors.ValidateInputPath(path); err != nil {
		return err
	}
	logger := opts.Logger

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := svg.Load(path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Elements = doc.Len()
	if dups := doc.DuplicateIDs(); len(dups) > 0 {
		logger.Info("shared ids in input, renamed together", "file", path, "ids", dups)
	}

	logger.Info("loaded document",
		"file", path,
		"elements", result.Stats.Elements,
		"duration", result.Stats.LoadTime)

	// Stage 2: Walk
	walkStart := time.Now()
	resolver, err := NewResolver(opts, ComponentLogger(logger, ComponentResolve, opts.Verbosity))
	if err != nil {
		return err
	}
	engine := traverse.New(resolver, traverse.Options{
		Base:   opts.Config.Base,
		Hooks:  hooks.traversal,
		Logger: ComponentLogger(logger, ComponentTraverse, opts.Verbosity),
	})
	walk, err := engine.Run(ctx, doc)
	result.Traversal = walk
	if err != nil {
		return fmt.Errorf("walk: %w", err)
	}
	result.Warnings = append(result.Warnings, walk.Warnings...)
	result.Stats.WalkTime = time.Since(walkStart)
	result.Stats.Connectors = walk.Mapping.Len()

	logger.Info("walked connectors",
		"resolver", resolver.Name(),
		"connectors", result.Stats.Connectors,
		"state", walk.State,
		"duration", result.Stats.WalkTime)

	// The graph reads element positions and parents, so it is drawn before
	// the ids change and written only after everything else succeeded.
	ro := RenumberOptions(opts, resolver)
	var graph []byte
	if opts.GraphPath != "" {
		graph, err = nodelink.Render(ctx, nodelink.FromResult(doc, walk, ro.Resolve), graphFormat(opts.GraphPath), nodelink.Options{
			Title:    filepath.Base(path),
			Detailed: opts.Verbosity >= config.Detail,
		})
		if err != nil {
			return fmt.Errorf("graph: %w", err)
		}
	}

	// Stage 3: Apply
	applyStart := time.Now()
	ro.Hooks = hooks.writer
	ro.Logger = ComponentLogger(logger, ComponentRenumber, opts.Verbosity)
	rep, err := renumber.Apply(ctx, doc, walk.Mapping, ro)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	result.Report = rep
	result.Warnings = append(result.Warnings, rep.Warnings...)
	result.Stats.ApplyTime = time.Since(applyStart)
	result.Stats.Renamed = rep.Renamed()
	result.Stats.Retired = len(rep.Retired)
	result.Stats.References = rep.References

	logger.Info("applied mapping",
		"renamed", result.Stats.Renamed,
		"retired", result.Stats.Retired,
		"references", result.Stats.References,
		"duration", result.Stats.ApplyTime)

	// Stage 4: Write
	writeStart := time.Now()
	out, err := svg.Serialize(doc, svg.WriteOptions{
		Indent:           opts.Config.Indent,
		DetailAttributes: opts.Config.DetailAttributes,
		Logger:           ComponentLogger(logger, ComponentSVG, opts.Verbosity),
	})
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	result.Output = out

	ioLogger := ComponentLogger(logger, ComponentIO, opts.Verbosity)
	if opts.Verbosity.InPlace() {
		backup, err := pio.ReplaceWithBackup(path, out, opts.Config.BackupSuffix, ioLogger)
		if err != nil {
			return err
		}
		result.Backup = backup
	} else if err := pio.Print(opts.Stdout, out); err != nil {
		return err
	}

	if graph != nil {
		if err := pio.WriteArtifact(opts.GraphPath, graph); err != nil {
			return err
		}
		ioLogger.Debug("wrote graph", "file", opts.GraphPath)
	}
	if opts.MappingPath != "" {
		info := pio.MappingInfo{File: path, Base: opts.Config.Base, State: walk.State.String()}
		if err := pio.ExportMappingJSON(opts.MappingPath, walk.Mapping, info); err != nil {
			return err
		}
		ioLogger.Debug("wrote mapping", "file", opts.MappingPath)
	}
	result.Stats.WriteTime = time.Since(writeStart)

	logger.Info("wrote output",
		"in_place", opts.Verbosity.InPlace(),
		"bytes", len(out),
		"duration", result.Stats.WriteTime)

	return nil
}

// stageHooks holds the hooks handed to each stage.
type stageHooks struct {
	traversal observability.TraversalHooks
	writer    observability.WriterHooks
	pipeline  observability.PipelineHooks
}

// hooks returns opts.Hooks for every stage, or log hooks on the matching
// component loggers.
func (r *Runner) hooks(opts Options) stageHooks {
	if opts.Hooks != nil {
		return stageHooks{traversal: opts.Hooks, writer: opts.Hooks, pipeline: opts.Hooks}
	}
	return stageHooks{
		traversal: observability.NewLogHooks(ComponentLogger(opts.Logger, ComponentTraverse, opts.Verbosity)),
		writer:    observability.NewLogHooks(ComponentLogger(opts.Logger, ComponentRenumber, opts.Verbosity)),
		pipeline:  observability.NewLogHooks(opts.Logger),
	}
}

func graphFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return nodelink.FormatSVG
	}
	return nodelink.FormatDOT
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
