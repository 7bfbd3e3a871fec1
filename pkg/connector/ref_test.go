package connector

import (
	"strings"
	"testing"

	"github.com/matzehuels/pinwalk/pkg/svg"
)

func parse(t *testing.T, s string) *svg.Document {
	t.Helper()
	doc, err := svg.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestResolve(t *testing.T) {
	doc := parse(t, `<svg><g id="breadboard">
  <rect id="connector0pin" x="10" y="5" terminalId="t0"/>
  <rect id="t0" x="10" y="0"/>
  <rect id="connector1pin" x="20" y="5"/>
  <rect id="connector1terminal" x="20" y="0"/>
  <line id="connector1leg" x1="20" y1="5" x2="20" y2="50"/>
  <rect id="connector2pin" x="30" y="5" legId="missing"/>
</g></svg>`)

	tests := []struct {
		pin          string
		wantTerminal string
		wantLeg      string
		wantAnchor   svg.Point
	}{
		{"connector0pin", "t0", "", svg.Point{X: 10, Y: 5}},
		{"connector1pin", "connector1terminal", "connector1leg", svg.Point{X: 20, Y: 5}},
		{"connector2pin", "", "", svg.Point{X: 30, Y: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			r := Resolve(doc, doc.ElementByID(tt.pin), DefaultResolveOptions())
			if r.ID != tt.pin || r.Group != "breadboard" {
				t.Errorf("Resolve() ID = %q Group = %q", r.ID, r.Group)
			}
			if got := idOf(r.Terminal); got != tt.wantTerminal {
				t.Errorf("Terminal = %q, want %q", got, tt.wantTerminal)
			}
			if got := idOf(r.Leg); got != tt.wantLeg {
				t.Errorf("Leg = %q, want %q", got, tt.wantLeg)
			}
			if !r.HasAnchor || r.Anchor != tt.wantAnchor {
				t.Errorf("Anchor = %v (%v), want %v", r.Anchor, r.HasAnchor, tt.wantAnchor)
			}
		})
	}
}

func TestResolveSiblingPairing(t *testing.T) {
	doc := parse(t, `<svg><g id="schematic">
  <line id="?" x1="0" y1="0" x2="10" y2="0" next="b"/>
  <rect id="rect7" x="0" y="-1" width="0.1" height="0.1"/>
  <line id="b" x1="0" y1="10" x2="10" y2="10"/>
  <rect id="connector4pin" x="0" y="9"/>
</g></svg>`)

	opts := DefaultResolveOptions()
	opts.PairSiblingRect = true

	if r := Resolve(doc, doc.ElementByID("?"), opts); idOf(r.Terminal) != "rect7" {
		t.Errorf("Terminal of ? = %q, want rect7", idOf(r.Terminal))
	}
	if r := Resolve(doc, doc.ElementByID("b"), opts); r.Terminal != nil {
		t.Errorf("connector-like sibling must not pair, got %q", idOf(r.Terminal))
	}

	opts.PairSiblingRect = false
	if r := Resolve(doc, doc.ElementByID("?"), opts); r.Terminal != nil {
		t.Error("pairing disabled but terminal found")
	}
}

func TestRefElements(t *testing.T) {
	pin := svg.NewElement("rect", "id", "connector0pin")
	r := Ref{ID: "connector0pin", Pin: pin}
	if els := r.Elements(); len(els) != 1 || els[RolePin] != pin {
		t.Errorf("Elements() = %v", els)
	}
}

func idOf(e *svg.Element) string {
	if e == nil {
		return ""
	}
	return e.ID()
}
