package resolve

import (
	"github.com/matzehuels/pinwalk/pkg/errors"
	"github.com/matzehuels/pinwalk/pkg/svg"
)

// Sentinel ids marking where a walk starts.
const (
	// BreadboardSentinel is the first pin of a breadboard or PCB drawing.
	// The marked form "connector0pin+" takes precedence when both exist.
	BreadboardSentinel = "connector0pin"

	// SchematicSentinel is the placeholder id of the first schematic pin.
	SchematicSentinel = "?"

	// StartMarker suffixes an id to mark it as the explicit start.
	StartMarker = "+"
)

// Resolver finds the seed of a walk and the candidates that follow each
// visited element.
type Resolver interface {
	// Name identifies the variant in logs and traces.
	Name() string

	// Seed returns the element the walk starts from. It fails with
	// SEED_NOT_FOUND when no element matches.
	Seed(doc *svg.Document) (*svg.Element, error)

	// NextCandidates returns the elements that may follow cur, best first.
	// An empty result ends the walk.
	NextCandidates(doc *svg.Document, cur *svg.Element) ([]*svg.Element, error)
}

// SeedMatcher reports whether an element is a seed. Matchers listed earlier
// in a [SeedMatchers] slice win over later ones.
type SeedMatcher func(*svg.Element) bool

// SeedMatchers is a prioritized list of seed predicates.
type SeedMatchers []SeedMatcher

// MatchID matches elements whose id equals id.
func MatchID(id string) SeedMatcher {
	return func(e *svg.Element) bool { return e.ID() == id }
}

// SentinelMatchers returns the matchers for sentinel: the marked form
// sentinel+"+" first, then the plain id.
func SentinelMatchers(sentinel string) SeedMatchers {
	return SeedMatchers{MatchID(sentinel + StartMarker), MatchID(sentinel)}
}

// Find returns the first element in document order matched by the highest
// priority matcher that matches anything.
func (ms SeedMatchers) Find(doc *svg.Document) (*svg.Element, bool) {
	for _, m := range ms {
		for e := range doc.FindBySelector(svg.Selector(m)) {
			return e, true
		}
	}
	return nil, false
}

func findSeed(doc *svg.Document, ms SeedMatchers, sentinel string) (*svg.Element, error) {
	if e, ok := ms.Find(doc); ok {
		return e, nil
	}
	return nil, errors.New(errors.ErrCodeSeedNotFound, "no element with id %q", sentinel)
}
