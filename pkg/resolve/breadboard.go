package resolve

import (
	"regexp"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinwalk/pkg/errors"
	"github.com/matzehuels/pinwalk/pkg/svg"
)

// DefaultPinPattern matches the pins a breadboard walk may visit.
const DefaultPinPattern = `^connector\d+pin\+?$`

// BreadboardOptions configures [NewBreadboard].
type BreadboardOptions struct {
	// Sentinel is the seed id. Defaults to [BreadboardSentinel].
	Sentinel string

	// PinPattern selects sibling pins. Defaults to [DefaultPinPattern].
	PinPattern string

	// Order sequences the pins. Defaults to [OrderX].
	Order Ordering

	// Tolerance is the coordinate snap. Zero means [DefaultTolerance];
	// negative compares exactly.
	Tolerance float64

	Logger *log.Logger
}

// Breadboard resolves neighbors by position among the connector pins that
// share the current element's parent group.
type Breadboard struct {
	sentinel string
	matchers SeedMatchers
	pins     *regexp.Regexp
	order    Ordering
	tol      float64
	logger   *log.Logger

	// sorted caches the ordered pins of each group for one document.
	doc    *svg.Document
	sorted map[*svg.Element][]*svg.Element
}

// NewBreadboard creates a geometric resolver.
func NewBreadboard(opts BreadboardOptions) (*Breadboard, error) {
	if opts.Sentinel == "" {
		opts.Sentinel = BreadboardSentinel
	}
	if opts.PinPattern == "" {
		opts.PinPattern = DefaultPinPattern
	}
	if opts.Order == "" {
		opts.Order = OrderX
	}
	if _, err := ParseOrdering(string(opts.Order)); err != nil {
		return nil, err
	}
	switch {
	case opts.Tolerance == 0:
		opts.Tolerance = DefaultTolerance
	case opts.Tolerance < 0:
		opts.Tolerance = 0
	}
	re, err := regexp.Compile(opts.PinPattern)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "pin pattern %q", opts.PinPattern)
	}
	return &Breadboard{
		sentinel: opts.Sentinel,
		matchers: SentinelMatchers(opts.Sentinel),
		pins:     re,
		order:    opts.Order,
		tol:      opts.Tolerance,
		logger:   opts.Logger,
	}, nil
}

// Name returns "breadboard".
func (b *Breadboard) Name() string { return "breadboard" }

// Seed returns the sentinel pin, preferring its marked form.
func (b *Breadboard) Seed(doc *svg.Document) (*svg.Element, error) {
	return findSeed(doc, b.matchers, b.sentinel)
}

// NextCandidates returns the pins of cur's group that come after cur in the
// configured order.
func (b *Breadboard) NextCandidates(doc *svg.Document, cur *svg.Element) ([]*svg.Element, error) {
	group, err := b.group(doc, cur)
	if err != nil {
		return nil, err
	}
	i := slices.Index(group, cur)
	if i < 0 || i == len(group)-1 {
		return nil, nil
	}
	return slices.Clone(group[i+1:]), nil
}

func (b *Breadboard) group(doc *svg.Document, cur *svg.Element) ([]*svg.Element, error) {
	if b.doc != doc {
		b.doc, b.sorted = doc, make(map[*svg.Element][]*svg.Element)
	}
	parent := cur.Parent()
	if g, ok := b.sorted[parent]; ok && slices.Contains(g, cur) {
		return g, nil
	}

	var pins []*svg.Element
	for _, e := range cur.Siblings() {
		if e == cur || b.pins.MatchString(e.ID()) || b.matchers.match(e) {
			pins = append(pins, e)
		}
	}
	sorted, err := sortElements(pins, b.order, b.tol)
	if err != nil {
		return nil, err
	}
	if b.logger != nil {
		b.logger.Debug("ordered group", "group", groupName(parent), "order", b.order, "pins", ids(sorted))
	}
	b.sorted[parent] = sorted
	return sorted, nil
}

func (ms SeedMatchers) match(e *svg.Element) bool {
	for _, m := range ms {
		if m(e) {
			return true
		}
	}
	return false
}

func groupName(g *svg.Element) string {
	if g == nil {
		return ""
	}
	if id := g.ID(); id != "" {
		return id
	}
	return "<" + g.QName() + ">"
}

func ids(els []*svg.Element) []string {
	out := make([]string, len(els))
	for i, e := range els {
		out[i] = e.ID()
	}
	return out
}
