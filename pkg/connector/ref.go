package connector

import (
	"github.com/matzehuels/pinwalk/pkg/svg"
)

// Ref is one logical connector and the elements that draw it.
type Ref struct {
	// ID is the pin's current identifier.
	ID string

	Pin      *svg.Element
	Terminal *svg.Element // optional
	Leg      *svg.Element // optional

	// Anchor is the pin's position; HasAnchor is false when the pin carries
	// no usable geometry.
	Anchor    svg.Point
	HasAnchor bool

	// Group is the id of the pin's parent element, empty at top level or
	// when the parent has no id.
	Group string
}

// Elements returns the backing elements keyed by role, skipping absent ones.
func (r Ref) Elements() map[Role]*svg.Element {
	out := map[Role]*svg.Element{RolePin: r.Pin}
	if r.Terminal != nil {
		out[RoleTerminal] = r.Terminal
	}
	if r.Leg != nil {
		out[RoleLeg] = r.Leg
	}
	return out
}

// ResolveOptions controls how [Resolve] finds a pin's companions.
type ResolveOptions struct {
	// TerminalAttr and LegAttr name pin attributes holding the companion's
	// id explicitly. Empty disables the lookup.
	TerminalAttr string
	LegAttr      string

	// PairSiblingRect takes the pin's next sibling as its terminal when it
	// is a rect whose id is not connector-like. Schematic drawings made
	// from line/rect pairs rely on this.
	PairSiblingRect bool
}

// DefaultResolveOptions uses the terminalId and legId attributes.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{TerminalAttr: "terminalId", LegAttr: "legId"}
}

// Resolve builds the Ref for pin.
//
// A companion is found, in order, through the explicit attribute, the
// naming convention (connectorKpin to connectorKterminal) and, for
// terminals only, sibling pairing when enabled. A companion is never the pin
// itself.
func Resolve(doc *svg.Document, pin *svg.Element, opts ResolveOptions) Ref {
	r := Ref{ID: pin.ID(), Pin: pin}
	if p, err := pin.Anchor(); err == nil {
		r.Anchor, r.HasAnchor = p, true
	}
	if parent := pin.Parent(); parent != nil {
		r.Group = parent.ID()
	}

	r.Terminal = companion(doc, pin, opts.TerminalAttr, RoleTerminal)
	if r.Terminal == nil && opts.PairSiblingRect {
		if next := pin.NextSiblingElement(); next != nil && next.Tag() == "rect" && !IsConnectorLike(next.ID()) {
			r.Terminal = next
		}
	}
	r.Leg = companion(doc, pin, opts.LegAttr, RoleLeg)
	return r
}

func companion(doc *svg.Document, pin *svg.Element, attr string, role Role) *svg.Element {
	if attr != "" {
		if id, ok := pin.Attr(attr); ok && id != "" {
			if el := doc.ElementByID(id); el != nil && el != pin {
				return el
			}
		}
	}
	if id, ok := Sibling(pin.ID(), role); ok {
		if el := doc.ElementByID(id); el != nil && el != pin {
			return el
		}
	}
	return nil
}
