package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := []string{Version, Commit, Date}
	defer func() { Version, Commit, Date = old[0], old[1], old[2] }()

	Version, Commit, Date = "v1.0.0", "abc123", "2026-01-01"
	if got, want := String(), "version: v1.0.0\ncommit: abc123\nbuilt: 2026-01-01"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v1.0.0\n") {
		t.Errorf("Template() = %q", got)
	}
}
