// Package observability provides hooks for tracing connector walks and
// rewrites.
//
// Components emit events through small hook interfaces instead of logging
// directly, so callers decide where the events go. Every interface has a
// no-op implementation, and [LogHooks] routes all of them to a
// charmbracelet logger.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Pass the chosen implementation to each component at construction
//
// There is no global registry: verbosity and hooks travel with the options
// of each run, so two runs in one process never share trace state.
//
// # Usage
//
//	hooks := observability.NewLogHooks(logger.WithPrefix("traverse"))
//	eng := traverse.New(resolver, traverse.Options{Hooks: hooks})
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Traversal Hooks
// =============================================================================

// TraversalHooks receives events from the traversal engine.
type TraversalHooks interface {
	// OnSeed records the resolved seed, or the error that stopped seeking.
	OnSeed(ctx context.Context, resolver, id string, line int, err error)

	// OnVisit records an element being numbered.
	OnVisit(ctx context.Context, id string, index int, line int)

	// OnStop records the terminal state of a walk.
	OnStop(ctx context.Context, state string, visited int, duration time.Duration, err error)
}

// =============================================================================
// Writer Hooks
// =============================================================================

// WriterHooks receives events from the renumbering writer.
type WriterHooks interface {
	// OnRename records an id change planned for a mapped connector.
	OnRename(ctx context.Context, oldID, newID string, line int)

	// OnRetire records a connector-like id renamed because it was not
	// visited.
	OnRetire(ctx context.Context, oldID, newID string, line int)

	// OnWarning records a non-fatal anomaly.
	OnWarning(ctx context.Context, err error)

	// OnApplyComplete records the end of a rewrite.
	OnApplyComplete(ctx context.Context, renamed int, duration time.Duration, err error)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives per-file events from the runner.
type PipelineHooks interface {
	OnFileStart(ctx context.Context, path, mode string)
	OnFileComplete(ctx context.Context, path string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTraversalHooks is a no-op implementation of TraversalHooks.
type NoopTraversalHooks struct{}

func (NoopTraversalHooks) OnSeed(context.Context, string, string, int, error)          {}
func (NoopTraversalHooks) OnVisit(context.Context, string, int, int)                   {}
func (NoopTraversalHooks) OnStop(context.Context, string, int, time.Duration, error) {}

// NoopWriterHooks is a no-op implementation of WriterHooks.
type NoopWriterHooks struct{}

func (NoopWriterHooks) OnRename(context.Context, string, string, int)              {}
func (NoopWriterHooks) OnRetire(context.Context, string, string, int)              {}
func (NoopWriterHooks) OnWarning(context.Context, error)                           {}
func (NoopWriterHooks) OnApplyComplete(context.Context, int, time.Duration, error) {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnFileStart(context.Context, string, string)                  {}
func (NoopPipelineHooks) OnFileComplete(context.Context, string, time.Duration, error) {}

// =============================================================================
// Defaults
// =============================================================================

// Traversal returns h, or the no-op hooks when h is nil.
func Traversal(h TraversalHooks) TraversalHooks {
	if h == nil {
		return NoopTraversalHooks{}
	}
	return h
}

// Writer returns h, or the no-op hooks when h is nil.
func Writer(h WriterHooks) WriterHooks {
	if h == nil {
		return NoopWriterHooks{}
	}
	return h
}

// Pipeline returns h, or the no-op hooks when h is nil.
func Pipeline(h PipelineHooks) PipelineHooks {
	if h == nil {
		return NoopPipelineHooks{}
	}
	return h
}
