// Package pipeline runs the renumbering of one part file end to end.
//
// This package implements the load → walk → apply → write pipeline used by
// the CLI. Keeping it out of the command code means every entry point gets
// the same ordering of side effects: nothing is written until the walk and
// the rewrite have both succeeded.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Parse the SVG file into a document tree
//  2. Walk: Resolve the seed and number connectors with a [resolve.Resolver]
//  3. Apply: Rename connectors and their references in the tree
//  4. Write: Serialize, then replace the file or print the result
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Mode:   pipeline.ModeBreadboard,
//	    Config: config.Default(),
//	}
//	result, err := runner.Execute(ctx, "part.svg", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Traversal.Mapping)
package pipeline

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinwalk/pkg/config"
	"github.com/matzehuels/pinwalk/pkg/errors"
	"github.com/matzehuels/pinwalk/pkg/observability"
	"github.com/matzehuels/pinwalk/pkg/renumber"
	"github.com/matzehuels/pinwalk/pkg/traverse"
)

// =============================================================================
// Modes
// =============================================================================

// Drawing variants.
const (
	ModeBreadboard = "breadboard"
	ModeSchematic  = "schematic"
)

// ValidModes is the set of supported modes.
var ValidModes = map[string]bool{
	ModeBreadboard: true,
	ModeSchematic:  true,
}

// ValidateMode checks that a mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid mode: %q (must be one of: breadboard, schematic)", mode)
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Hooks receives events from every stage.
type Hooks interface {
	observability.TraversalHooks
	observability.WriterHooks
	observability.PipelineHooks
}

// Options contains all configuration for one run.
type Options struct {
	// Mode selects the resolver, [ModeBreadboard] or [ModeSchematic].
	Mode string

	// Config holds the file settings. The zero value is replaced by
	// [config.Default].
	Config config.Config

	// Verbosity selects in-place replacement (0) or printing (1 and up),
	// and the level of component loggers.
	Verbosity config.Verbosity

	// Seed overrides the sentinel id of the selected mode.
	Seed string

	// GraphPath, when set, receives the traversal path as DOT, or as SVG
	// when the name ends in ".svg".
	GraphPath string

	// MappingPath, when set, receives the mapping as JSON.
	MappingPath string

	// Stdout receives the XML when Verbosity is above 0. Defaults to
	// os.Stdout.
	Stdout io.Writer

	// Hooks replaces the default log hooks.
	Hooks Hooks

	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Path is the input file.
	Path string

	// ConfigPath is the config file the settings came from, if any.
	ConfigPath string

	// Traversal is the walk outcome. It is set on failure too when the walk
	// got far enough to start.
	Traversal *traverse.Result

	// Report describes the rewrite.
	Report *renumber.Report

	// Output is the serialized document.
	Output []byte

	// Backup is the path of the original file after an in-place run.
	Backup string

	// Warnings collects the non-fatal anomalies of all stages.
	Warnings []error

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Elements   int
	Connectors int
	Renamed    int
	Retired    int
	References int
	LoadTime   time.Duration
	WalkTime   time.Duration
	ApplyTime  time.Duration
	WriteTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if o.Config.BackupSuffix == "" && o.Config.Breadboard.Order == "" {
		o.Config = config.Default()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Verbosity < config.Silent || o.Verbosity > config.All {
		return errors.New(errors.ErrCodeInvalidConfig, "debug level must be 0 to 4, got %d", int(o.Verbosity))
	}
	if o.Seed != "" {
		if err := errors.ValidateIdentifier(o.Seed); err != nil {
			return err
		}
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// IsSchematic returns true for the chain-following variant.
func (o *Options) IsSchematic() bool {
	return o.Mode == ModeSchematic
}

// Sentinel returns the seed id for the selected mode.
func (o *Options) Sentinel() string {
	if o.Seed != "" {
		return o.Seed
	}
	if o.IsSchematic() {
		return o.Config.Schematic.Sentinel
	}
	return o.Config.Breadboard.Sentinel
}
