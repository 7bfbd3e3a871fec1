package pipeline

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinwalk/pkg/config"
	"github.com/matzehuels/pinwalk/pkg/resolve"
	"github.com/matzehuels/pinwalk/pkg/renumber"
)

// Component logger names.
const (
	ComponentSVG      = "svg"
	ComponentResolve  = "resolve"
	ComponentTraverse = "traverse"
	ComponentRenumber = "renumber"
	ComponentIO       = "io"
)

// ComponentLogger derives a prefixed logger whose level follows v. The
// parent's level is left unchanged.
func ComponentLogger(parent *log.Logger, name string, v config.Verbosity) *log.Logger {
	l := parent.WithPrefix(name)
	l.SetLevel(v.ComponentLevel(name))
	return l
}

// NewResolver builds the resolver for opts.Mode.
func NewResolver(opts Options, logger *log.Logger) (resolve.Resolver, error) {
	if err := ValidateMode(opts.Mode); err != nil {
		return nil, err
	}
	cfg := opts.Config
	if opts.IsSchematic() {
		return resolve.NewSchematic(resolve.SchematicOptions{
			Sentinel:  opts.Sentinel(),
			ChainAttr: cfg.Schematic.ChainAttr,
			LabelAttr: cfg.Schematic.LabelAttr,
			Logger:    logger,
		}), nil
	}

	order, err := resolve.ParseOrdering(cfg.Breadboard.Order)
	if err != nil {
		return nil, err
	}
	return resolve.NewBreadboard(resolve.BreadboardOptions{
		Sentinel:   opts.Sentinel(),
		PinPattern: cfg.Breadboard.PinPattern,
		Order:      order,
		Tolerance:  cfg.Breadboard.Tolerance,
		Logger:     logger,
	})
}

// RenumberOptions derives the writer settings for opts and the resolver
// that walked the document. Schematic runs also rewrite the chain attribute
// and label links so the chain still resolves on the output.
func RenumberOptions(opts Options, r resolve.Resolver) renumber.Options {
	cfg := opts.Config
	ro := renumber.DefaultOptions()
	ro.RefAttrs = slices.Clone(cfg.References.Attrs)
	ro.LinkAttrs = slices.Clone(cfg.References.Links)
	ro.Retire = cfg.Retire
	if s, ok := r.(*resolve.Schematic); ok {
		if chain := s.ChainAttr(); !slices.Contains(ro.RefAttrs, chain) {
			ro.RefAttrs = append(ro.RefAttrs, chain)
		}
		ro.LabelAttr = cfg.Schematic.LabelAttr
		ro.LabelPrefix = resolve.LabelPrefix
		ro.Resolve.PairSiblingRect = cfg.Schematic.PairTerminals
	}
	return ro
}
