package renumber

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinwalk/pkg/connector"
	"github.com/matzehuels/pinwalk/pkg/errors"
	"github.com/matzehuels/pinwalk/pkg/observability"
	"github.com/matzehuels/pinwalk/pkg/svg"
)

// Options configures [Apply].
type Options struct {
	// RefAttrs name attributes whose whole value is a connector id. A value
	// that is not renamed is reported as REFERENCE_MISMATCH. A leading "#"
	// is kept.
	RefAttrs []string

	// LabelAttr, when set, is checked for LabelPrefix links ("next:<id>"),
	// which are rewritten like RefAttrs.
	LabelAttr   string
	LabelPrefix string

	// LinkAttrs hold "#id" links that are rewritten when they point at a
	// renamed id and left alone otherwise.
	LinkAttrs []string

	// Retire renames connector-like ids the walk did not reach.
	Retire bool

	// Resolve controls how terminals and legs are found for each pin.
	Resolve connector.ResolveOptions

	Hooks  observability.WriterHooks
	Logger *log.Logger
}

// DefaultOptions rewrites terminalId and legId references and href links,
// and retires unvisited connectors.
func DefaultOptions() Options {
	return Options{
		RefAttrs:  []string{"terminalId", "legId"},
		LinkAttrs: []string{"href", "xlink:href"},
		Retire:    true,
		Resolve:   connector.DefaultResolveOptions(),
	}
}

// Rename is one id change.
type Rename struct {
	Old  string
	New  string
	Role connector.Role // empty for retired elements
	Line int
}

// Report summarizes an [Apply].
type Report struct {
	// Renames lists the planned id changes of mapped connectors, including
	// those whose id was already correct.
	Renames []Rename

	// Retired lists connector-like elements renamed because the walk did
	// not reach them.
	Retired []Rename

	// References counts rewritten reference, link and url() values.
	References int

	Warnings []error
}

// Renamed returns how many mapped element ids actually changed.
func (r *Report) Renamed() int {
	n := 0
	for _, rn := range r.Renames {
		if rn.Old != rn.New {
			n++
		}
	}
	return n
}

// planned is an element id change.
type planned struct {
	el *svg.Element
	Rename
}

// write is a single attribute assignment, applied after planning. An index
// of -1 adds the id attribute to an element that has none.
type write struct {
	el    *svg.Element
	index int
	value string
}

func (w write) apply() {
	if w.index < 0 {
		w.el.SetAttr("id", w.value)
		return
	}
	w.el.Attrs[w.index].Value = w.value
}

// Apply renames the connectors in m and every reference to them, in place.
//
// Warnings (REFERENCE_MISMATCH) are collected in the report. An error means
// the mapping could not be applied; the document may then be partially
// rewritten and must not be written out.
func Apply(ctx context.Context, doc *svg.Document, m *connector.Mapping, opts Options) (*Report, error) {
	start := time.Now()
	hooks := observability.Writer(opts.Hooks)
	rep, err := apply(ctx, doc, m, opts, hooks)
	renamed := 0
	if rep != nil {
		renamed = rep.Renamed()
	}
	hooks.OnApplyComplete(ctx, renamed, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func apply(ctx context.Context, doc *svg.Document, m *connector.Mapping, opts Options, hooks observability.WriterHooks) (*Report, error) {
	if pairs := m.Pairs(); len(pairs) > 0 {
		if err := m.Validate(pairs[0].Index); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "invalid mapping")
		}
	}

	// Phase one: snapshot. Nothing below writes to the tree until the plan
	// is complete.
	renames, err := planConnectors(doc, m, opts.Resolve)
	if err != nil {
		return nil, err
	}
	renames = append(renames, planRetirement(doc, renames, opts.Retire)...)

	table := make(map[string]string, len(renames))
	byElement := make(map[*svg.Element]string, len(renames))
	for _, p := range renames {
		if p.Old != "" {
			table[p.Old] = p.New
		}
		byElement[p.el] = p.New
	}

	rep := &Report{}
	for _, p := range renames {
		if p.Role == "" {
			rep.Retired = append(rep.Retired, p.Rename)
			hooks.OnRetire(ctx, p.Old, p.New, p.Line)
		} else {
			rep.Renames = append(rep.Renames, p.Rename)
			hooks.OnRename(ctx, p.Old, p.New, p.Line)
		}
	}

	writes := planWrites(doc, table, byElement, opts, rep)
	for _, w := range rep.Warnings {
		hooks.OnWarning(ctx, w)
	}

	// Phase two: write.
	for _, w := range writes {
		w.apply()
	}
	if opts.Logger != nil {
		opts.Logger.Debug("applied", "writes", len(writes), "renames", len(rep.Renames), "retired", len(rep.Retired))
	}

	if err := checkUnique(doc, renames); err != nil {
		return nil, err
	}
	return rep, nil
}

// planConnectors assigns the new names of every mapped pin and its
// companions.
func planConnectors(doc *svg.Document, m *connector.Mapping, ropts connector.ResolveOptions) ([]planned, error) {
	pins := make(map[*svg.Element]bool, m.Len())
	refs := make([]connector.Ref, 0, m.Len())
	indices := make([]int, 0, m.Len())
	for old, idx := range m.All() {
		pin := doc.ElementByID(old)
		if pin == nil {
			return nil, errors.New(errors.ErrCodeBrokenReference, "mapped id %q is not in the document", old)
		}
		pins[pin] = true
		refs = append(refs, connector.Resolve(doc, pin, ropts))
		indices = append(indices, idx)
	}

	claimed := make(map[*svg.Element]bool)
	var out []planned
	add := func(el *svg.Element, idx int, role connector.Role) {
		if el == nil || claimed[el] {
			return
		}
		if role != connector.RolePin && pins[el] {
			return
		}
		claimed[el] = true
		out = append(out, planned{el: el, Rename: Rename{
			Old:  el.ID(),
			New:  connector.Name(idx, role),
			Role: role,
			Line: el.Line,
		}})
	}
	for i, r := range refs {
		add(r.Pin, indices[i], connector.RolePin)
	}
	for i, r := range refs {
		add(r.Terminal, indices[i], connector.RoleTerminal)
		add(r.Leg, indices[i], connector.RoleLeg)
	}

	// Through-hole PCB parts draw every connector once per copper layer
	// under the same id. The twins take the name of the element the walk
	// reached.
	for _, p := range slices.Clone(out) {
		if p.Old == "" {
			continue
		}
		for el := range doc.FindBySelector(svg.ByID(p.Old)) {
			if claimed[el] {
				continue
			}
			claimed[el] = true
			out = append(out, planned{el: el, Rename: Rename{
				Old:  p.Old,
				New:  p.New,
				Role: p.Role,
				Line: el.Line,
			}})
		}
	}
	return out, nil
}

// planRetirement names the connector-like elements left out of renames.
// With retire false only elements whose id collides with a new name are
// included.
func planRetirement(doc *svg.Document, renames []planned, retire bool) []planned {
	renamed := make(map[*svg.Element]bool, len(renames))
	newIDs := make(map[string]bool, len(renames))
	for _, p := range renames {
		renamed[p.el] = true
		newIDs[p.New] = true
	}

	var retirees []*svg.Element
	taken := make(map[string]bool)
	for el := range doc.Elements() {
		id := el.ID()
		if id == "" || renamed[el] {
			continue
		}
		if newIDs[id] || (retire && connector.IsConnectorLike(id)) {
			retirees = append(retirees, el)
			continue
		}
		taken[id] = true
	}
	for id := range newIDs {
		taken[id] = true
	}

	out := make([]planned, 0, len(retirees))
	for _, el := range retirees {
		name := connector.RetiredName(el.ID(), el.Tag())
		if name == "" || connector.IsConnectorLike(name) || taken[name] {
			name = freeName(name, el.Tag(), taken)
		}
		taken[name] = true
		out = append(out, planned{el: el, Rename: Rename{Old: el.ID(), New: name, Line: el.Line}})
	}
	return out
}

func freeName(name, tag string, taken map[string]bool) string {
	if name == "" || connector.IsConnectorLike(name) {
		name = tag
	}
	for n := 2; ; n++ {
		if c := fmt.Sprintf("%s_%d", name, n); !taken[c] {
			return c
		}
	}
}

var urlRefRe = regexp.MustCompile(`url\(\s*#([^)\s]+)\s*\)`)

// planWrites reads every attribute of the live tree against the snapshot
// and returns the assignments to make. Mismatches are added to rep.
func planWrites(doc *svg.Document, table map[string]string, byElement map[*svg.Element]string, opts Options, rep *Report) []write {
	var writes []write
	set := func(el *svg.Element, i int, v string) {
		if el.Attrs[i].Value != v {
			writes = append(writes, write{el: el, index: i, value: v})
		}
	}

	for el := range doc.Elements() {
		if v, ok := byElement[el]; ok {
			if _, has := el.Attr("id"); !has {
				writes = append(writes, write{el: el, index: -1, value: v})
			}
		}
		for i, a := range el.Attrs {
			name := a.QName()
			switch {
			case name == "id":
				if v, ok := byElement[el]; ok {
					set(el, i, v)
				}
				continue

			case slices.Contains(opts.RefAttrs, name):
				if v, ok := rewriteRef(a.Value, "", table); ok {
					set(el, i, v)
					rep.References++
				} else if strings.TrimSpace(a.Value) != "" {
					rep.Warnings = append(rep.Warnings, mismatch(el, name, a.Value))
				}
				continue

			case opts.LabelAttr != "" && name == opts.LabelAttr:
				prefix := opts.LabelPrefix
				if prefix == "" || !strings.HasPrefix(strings.TrimSpace(a.Value), prefix) {
					break
				}
				if v, ok := rewriteRef(strings.TrimSpace(a.Value), prefix, table); ok {
					set(el, i, v)
					rep.References++
				} else {
					rep.Warnings = append(rep.Warnings, mismatch(el, name, a.Value))
				}
				continue

			case slices.Contains(opts.LinkAttrs, name):
				if id, ok := strings.CutPrefix(strings.TrimSpace(a.Value), "#"); ok {
					if nv, found := table[id]; found {
						set(el, i, "#"+nv)
						rep.References++
					}
				}
				continue
			}

			if strings.Contains(a.Value, "url(") {
				n := 0
				v := urlRefRe.ReplaceAllStringFunc(a.Value, func(s string) string {
					id := urlRefRe.FindStringSubmatch(s)[1]
					if nv, ok := table[id]; ok {
						n++
						return "url(#" + nv + ")"
					}
					return s
				})
				if n > 0 {
					set(el, i, v)
					rep.References += n
				}
			}
		}
	}
	return writes
}

// rewriteRef maps a reference value after prefix, keeping a leading "#".
func rewriteRef(value, prefix string, table map[string]string) (string, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(value, prefix))
	hash := ""
	if strings.HasPrefix(rest, "#") {
		hash, rest = "#", rest[1:]
	}
	nv, ok := table[rest]
	if !ok {
		return "", false
	}
	return prefix + hash + nv, true
}

func mismatch(el *svg.Element, attr, value string) error {
	return errors.New(errors.ErrCodeReferenceMismatch,
		"line %d: <%s id=%q> %s=%q names no renumbered element, left unchanged",
		el.Line, el.QName(), el.ID(), attr, value)
}

// checkUnique verifies that no id written by the rewrite is shared, except
// by elements that already shared their old id.
func checkUnique(doc *svg.Document, renames []planned) error {
	from := make(map[*svg.Element]string, len(renames))
	touched := make(map[string]bool, len(renames))
	for _, p := range renames {
		from[p.el] = p.Old
		touched[p.New] = true
	}
	for _, id := range doc.DuplicateIDs() {
		if !touched[id] {
			continue
		}
		olds := make(map[string]bool)
		for el := range doc.FindBySelector(svg.ByID(id)) {
			old, ok := from[el]
			if !ok || old == "" {
				return errors.New(errors.ErrCodeInternal, "id %q is not unique after renumbering", id)
			}
			olds[old] = true
		}
		if len(olds) > 1 {
			return errors.New(errors.ErrCodeInternal, "id %q is not unique after renumbering", id)
		}
	}
	return nil
}
