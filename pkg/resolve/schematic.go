package resolve

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinwalk/pkg/errors"
	"github.com/matzehuels/pinwalk/pkg/svg"
)

// Defaults for the schematic chain.
const (
	DefaultChainAttr = "next"
	DefaultLabelAttr = "inkscape:label"

	// LabelPrefix introduces a link inside a label value.
	LabelPrefix = "next:"
)

// SchematicOptions configures [NewSchematic].
type SchematicOptions struct {
	// Sentinel is the seed id. Defaults to [SchematicSentinel].
	Sentinel string

	// ChainAttr holds the id of the next element. Defaults to
	// [DefaultChainAttr].
	ChainAttr string

	// LabelAttr is read when ChainAttr is absent; its value must start with
	// [LabelPrefix]. Defaults to [DefaultLabelAttr].
	LabelAttr string

	Logger *log.Logger
}

// Schematic resolves neighbors by following explicit links.
type Schematic struct {
	sentinel  string
	matchers  SeedMatchers
	chainAttr string
	labelAttr string
	logger    *log.Logger
}

// NewSchematic creates a chain-following resolver.
func NewSchematic(opts SchematicOptions) *Schematic {
	if opts.Sentinel == "" {
		opts.Sentinel = SchematicSentinel
	}
	if opts.ChainAttr == "" {
		opts.ChainAttr = DefaultChainAttr
	}
	if opts.LabelAttr == "" {
		opts.LabelAttr = DefaultLabelAttr
	}
	return &Schematic{
		sentinel:  opts.Sentinel,
		matchers:  SentinelMatchers(opts.Sentinel),
		chainAttr: opts.ChainAttr,
		labelAttr: opts.LabelAttr,
		logger:    opts.Logger,
	}
}

// Name returns "schematic".
func (s *Schematic) Name() string { return "schematic" }

// ChainAttr returns the attribute holding links, so the writer can rewrite
// it along with the ids it names.
func (s *Schematic) ChainAttr() string { return s.chainAttr }

// Seed returns the placeholder element.
func (s *Schematic) Seed(doc *svg.Document) (*svg.Element, error) {
	return findSeed(doc, s.matchers, s.sentinel)
}

// NextCandidates returns the single element cur links to, or nothing at the
// end of the chain. A link to a missing id is a BROKEN_REFERENCE.
func (s *Schematic) NextCandidates(doc *svg.Document, cur *svg.Element) ([]*svg.Element, error) {
	target, from := s.link(cur)
	if target == "" {
		return nil, nil
	}
	next := doc.ElementByID(target)
	if next == nil {
		return nil, errors.New(errors.ErrCodeBrokenReference,
			"line %d: <%s id=%q> %s links to missing id %q", cur.Line, cur.QName(), cur.ID(), from, target)
	}
	if s.logger != nil {
		s.logger.Debug("link", "from", cur.ID(), "to", target, "via", from)
	}
	return []*svg.Element{next}, nil
}

// link returns the linked id and the attribute it came from.
func (s *Schematic) link(cur *svg.Element) (string, string) {
	if v, ok := cur.Attr(s.chainAttr); ok {
		return trimRef(v), s.chainAttr
	}
	if v, ok := cur.Attr(s.labelAttr); ok {
		if rest, found := strings.CutPrefix(strings.TrimSpace(v), LabelPrefix); found {
			return trimRef(rest), s.labelAttr
		}
	}
	return "", ""
}

func trimRef(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "#")
}
