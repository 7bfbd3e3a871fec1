package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing to a logger.
//
// Entry and exit events (seed, stop, file start and end) and every changed
// id log at info, the remaining per-element events at debug and warnings at
// warn, so the logger's level alone selects how much of a run is traced.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger. A nil logger discards events.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnSeed(_ context.Context, resolver, id string, line int, err error) {
	if h.Logger == nil {
		return
	}
	if err != nil {
		h.Logger.Error("seed not resolved", "resolver", resolver, "err", err)
		return
	}
	h.Logger.Info("seed", "resolver", resolver, "id", id, "line", line)
}

func (h *LogHooks) OnVisit(_ context.Context, id string, index, line int) {
	if h.Logger != nil {
		h.Logger.Debug("visit", "id", id, "index", index, "line", line)
	}
}

func (h *LogHooks) OnStop(_ context.Context, state string, visited int, d time.Duration, err error) {
	if h.Logger == nil {
		return
	}
	if err != nil {
		h.Logger.Error("walk failed", "state", state, "visited", visited, "err", err)
		return
	}
	h.Logger.Info("walk done", "state", state, "visited", visited, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnRename(_ context.Context, oldID, newID string, line int) {
	if h.Logger == nil {
		return
	}
	if oldID == newID {
		h.Logger.Debug("connector unchanged", "id", oldID, "line", line)
		return
	}
	h.Logger.Info("connector changed", "from", oldID, "to", newID, "line", line)
}

func (h *LogHooks) OnRetire(_ context.Context, oldID, newID string, line int) {
	if h.Logger != nil {
		h.Logger.Info("retired unused connector", "from", oldID, "to", newID, "line", line)
	}
}

func (h *LogHooks) OnWarning(_ context.Context, err error) {
	if h.Logger != nil {
		h.Logger.Warn(err.Error())
	}
}

func (h *LogHooks) OnApplyComplete(_ context.Context, renamed int, d time.Duration, err error) {
	if h.Logger == nil {
		return
	}
	if err != nil {
		h.Logger.Error("rewrite failed", "err", err)
		return
	}
	h.Logger.Info("rewrite done", "renamed", renamed, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnFileStart(_ context.Context, path, mode string) {
	if h.Logger != nil {
		h.Logger.Info("process", "file", path, "mode", mode)
	}
}

func (h *LogHooks) OnFileComplete(_ context.Context, path string, d time.Duration, err error) {
	if h.Logger == nil {
		return
	}
	if err != nil {
		h.Logger.Error("failed", "file", path, "err", err)
		return
	}
	h.Logger.Info("done", "file", path, "took", d.Round(time.Millisecond))
}

var (
	_ TraversalHooks = (*LogHooks)(nil)
	_ WriterHooks    = (*LogHooks)(nil)
	_ PipelineHooks  = (*LogHooks)(nil)
)
