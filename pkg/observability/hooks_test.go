package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	tr := NoopTraversalHooks{}
	tr.OnSeed(ctx, "breadboard", "connector0pin", 3, nil)
	tr.OnVisit(ctx, "connector0pin", 0, 3)
	tr.OnStop(ctx, "exhausted", 1, time.Millisecond, nil)

	w := NoopWriterHooks{}
	w.OnRename(ctx, "a", "connector0pin", 1)
	w.OnRetire(ctx, "connector9pin", "rect9", 2)
	w.OnWarning(ctx, errors.New("mismatch"))
	w.OnApplyComplete(ctx, 3, time.Millisecond, nil)

	p := NoopPipelineHooks{}
	p.OnFileStart(ctx, "part.svg", "breadboard")
	p.OnFileComplete(ctx, "part.svg", time.Second, nil)
}

func TestDefaults(t *testing.T) {
	if _, ok := Traversal(nil).(NoopTraversalHooks); !ok {
		t.Error("Traversal(nil) should return NoopTraversalHooks")
	}
	if _, ok := Writer(nil).(NoopWriterHooks); !ok {
		t.Error("Writer(nil) should return NoopWriterHooks")
	}
	if _, ok := Pipeline(nil).(NoopPipelineHooks); !ok {
		t.Error("Pipeline(nil) should return NoopPipelineHooks")
	}

	custom := &testTraversalHooks{}
	if Traversal(custom) != custom {
		t.Error("Traversal(h) should return h")
	}
}

func TestLogHooksLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		want    []string
		notWant []string
	}{
		{
			name:    "info",
			level:   log.InfoLevel,
			want:    []string{"seed", "connector changed", "walk done", "mismatch"},
			notWant: []string{"index=", "unchanged"},
		},
		{
			name:  "debug",
			level: log.DebugLevel,
			want:  []string{"seed", "visit", "connector changed", "connector unchanged", "walk done"},
		},
		{
			name:    "warn",
			level:   log.WarnLevel,
			want:    []string{"mismatch"},
			notWant: []string{"seed", "changed", "walk done"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: tt.level}))
			ctx := context.Background()

			h.OnSeed(ctx, "breadboard", "connector0pin", 4, nil)
			h.OnVisit(ctx, "connector0pin", 0, 4)
			h.OnRename(ctx, "connector0pin+", "connector0pin", 4)
			h.OnRename(ctx, "connector1pin", "connector1pin", 5)
			h.OnWarning(ctx, errors.New("mismatch"))
			h.OnStop(ctx, "exhausted", 1, time.Millisecond, nil)

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestLogHooksNilLogger(t *testing.T) {
	h := NewLogHooks(nil)
	ctx := context.Background()
	h.OnSeed(ctx, "schematic", "", 0, errors.New("no seed"))
	h.OnWarning(ctx, errors.New("x"))
	h.OnFileComplete(ctx, "a.svg", 0, nil)
}

type testTraversalHooks struct{ NoopTraversalHooks }
