package traverse

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinwalk/pkg/connector"
	"github.com/matzehuels/pinwalk/pkg/errors"
	"github.com/matzehuels/pinwalk/pkg/observability"
	"github.com/matzehuels/pinwalk/pkg/resolve"
	"github.com/matzehuels/pinwalk/pkg/svg"
)

// Options configures an [Engine].
type Options struct {
	// Base is the first index assigned, 0 or 1.
	Base int

	// MaxSteps bounds the walk. Zero means the document's element count,
	// which no walk that visits each id once can exceed.
	MaxSteps int

	Hooks  observability.TraversalHooks
	Logger *log.Logger
}

// Step is one numbered element.
type Step struct {
	ID      string
	Index   int
	Line    int
	Element *svg.Element
}

// Result is the outcome of a walk.
type Result struct {
	// Mapping is nil when State is Error.
	Mapping *connector.Mapping

	State State

	// Path lists the visited elements in order, including those visited
	// before an error.
	Path []Step

	// CycleTo is the id the walk tried to revisit when State is
	// CycleDetected.
	CycleTo string

	Warnings []error
}

// Engine walks a document with a resolver.
type Engine struct {
	resolver resolve.Resolver
	opts     Options
	hooks    observability.TraversalHooks
}

// New creates an engine.
func New(r resolve.Resolver, opts Options) *Engine {
	return &Engine{resolver: r, opts: opts, hooks: observability.Traversal(opts.Hooks)}
}

// Run walks doc from the resolver's seed.
//
// On success the returned error is nil and the result holds the mapping.
// On failure the result is still returned, in state Error, with the partial
// path for diagnostics.
func (e *Engine) Run(ctx context.Context, doc *svg.Document) (*Result, error) {
	start := time.Now()
	res := &Result{State: Seeking}

	fail := func(err error) (*Result, error) {
		res.State = Error
		res.Mapping = nil
		e.hooks.OnStop(ctx, res.State.String(), len(res.Path), time.Since(start), err)
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if e.opts.Base != 0 && e.opts.Base != 1 {
		return fail(errors.New(errors.ErrCodeInvalidConfig, "base must be 0 or 1, got %d", e.opts.Base))
	}

	cur, err := e.resolver.Seed(doc)
	if err != nil {
		e.hooks.OnSeed(ctx, e.resolver.Name(), "", 0, err)
		return fail(err)
	}
	e.hooks.OnSeed(ctx, e.resolver.Name(), cur.ID(), cur.Line, nil)

	maxSteps := e.opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = doc.Len()
	}

	mapping := &connector.Mapping{}
	visited := make(map[string]bool)
	counter := e.opts.Base
	res.State = Visiting

	for {
		if len(res.Path) >= maxSteps {
			return fail(errors.New(errors.ErrCodeInternal, "walk exceeded %d steps", maxSteps))
		}
		id := cur.ID()
		if id == "" {
			return fail(errors.New(errors.ErrCodeBrokenReference,
				"line %d: <%s> has no id and cannot be numbered", cur.Line, cur.QName()))
		}
		if err := mapping.Add(id, counter); err != nil {
			return fail(errors.Wrap(errors.ErrCodeInternal, err, "record %q", id))
		}
		visited[id] = true
		res.Path = append(res.Path, Step{ID: id, Index: counter, Line: cur.Line, Element: cur})
		e.hooks.OnVisit(ctx, id, counter, cur.Line)

		cands, err := e.resolver.NextCandidates(doc, cur)
		if err != nil {
			return fail(err)
		}
		if len(cands) == 0 {
			res.State = Exhausted
			break
		}

		next := cands[0]
		if visited[next.ID()] {
			res.State = CycleDetected
			res.CycleTo = next.ID()
			res.Warnings = append(res.Warnings, errors.New(errors.ErrCodeCycleDetected,
				"line %d: %q leads back to %q, numbering stops after index %d", cur.Line, id, next.ID(), counter))
			break
		}
		if e.opts.Logger != nil && len(cands) > 1 {
			e.opts.Logger.Debug("advance", "from", id, "to", next.ID(), "candidates", len(cands))
		}
		cur = next
		counter++
	}

	res.Mapping = mapping
	e.hooks.OnStop(ctx, res.State.String(), len(res.Path), time.Since(start), nil)
	return res, nil
}
