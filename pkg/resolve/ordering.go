package resolve

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/pinwalk/pkg/errors"
	"github.com/matzehuels/pinwalk/pkg/svg"
)

// Ordering selects how the pins of a group are sequenced.
type Ordering string

const (
	// OrderX sorts left to right, then top to bottom.
	OrderX Ordering = "x"
	// OrderY sorts top to bottom, then left to right.
	OrderY Ordering = "y"
	// OrderDocument keeps source order.
	OrderDocument Ordering = "document"
	// OrderCCW walks counter-clockwise around the group centroid starting
	// from the top, which numbers a DIP footprint down the left side and up
	// the right.
	OrderCCW Ordering = "ccw"
)

// Orderings lists the accepted values for completion and help text.
var Orderings = []Ordering{OrderX, OrderY, OrderDocument, OrderCCW}

// ParseOrdering validates s.
func ParseOrdering(s string) (Ordering, error) {
	o := Ordering(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Orderings, o) {
		return o, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig,
		"unknown order %q (want one of x, y, document, ccw)", s)
}

// DefaultTolerance is the coordinate difference under which two pins count
// as aligned.
const DefaultTolerance = 0.01

type placed struct {
	el  *svg.Element
	pos svg.Point
}

// sortElements returns els in the given order. Coordinates are snapped to a
// grid of tol before comparing, so pins that differ by less than tol tie;
// ties keep document order.
func sortElements(els []*svg.Element, order Ordering, tol float64) ([]*svg.Element, error) {
	if order == OrderDocument || order == "" {
		return slices.Clone(els), nil
	}

	ps := make([]placed, len(els))
	for i, e := range els {
		p, err := e.Anchor()
		if err != nil {
			return nil, err
		}
		ps[i] = placed{el: e, pos: svg.Point{X: snap(p.X, tol), Y: snap(p.Y, tol)}}
	}

	var cmp func(a, b placed) int
	switch order {
	case OrderX:
		cmp = func(a, b placed) int { return cmp2(a.pos.X, b.pos.X, a.pos.Y, b.pos.Y) }
	case OrderY:
		cmp = func(a, b placed) int { return cmp2(a.pos.Y, b.pos.Y, a.pos.X, b.pos.X) }
	case OrderCCW:
		c := centroid(ps)
		keys := make(map[*svg.Element]float64, len(ps))
		for _, p := range ps {
			keys[p.el] = ccwAngle(c, p.pos)
		}
		cmp = func(a, b placed) int { return cmpFloat(keys[a.el], keys[b.el]) }
	default:
		return nil, fmt.Errorf("unsupported order %q", order)
	}

	slices.SortStableFunc(ps, cmp)
	out := make([]*svg.Element, len(ps))
	for i, p := range ps {
		out[i] = p.el
	}
	return out, nil
}

func snap(v, tol float64) float64 {
	if tol <= 0 {
		return v
	}
	return math.Round(v/tol) * tol
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmp2(a1, b1, a2, b2 float64) int {
	if c := cmpFloat(a1, b1); c != 0 {
		return c
	}
	return cmpFloat(a2, b2)
}

func centroid(ps []placed) svg.Point {
	var c svg.Point
	for _, p := range ps {
		c.X += p.pos.X
		c.Y += p.pos.Y
	}
	if n := float64(len(ps)); n > 0 {
		c.X /= n
		c.Y /= n
	}
	return c
}

// ccwAngle is the counter-clockwise angle in degrees from straight up
// (screen coordinates, y grows downward), in [0, 360).
func ccwAngle(c, p svg.Point) float64 {
	deg := math.Atan2(c.Y-p.Y, p.X-c.X) * 180 / math.Pi
	deg = math.Mod(deg-90+720, 360)
	return math.Round(deg*1e6) / 1e6
}
