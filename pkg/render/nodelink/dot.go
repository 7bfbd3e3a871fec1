package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pinwalk/pkg/connector"
	"github.com/matzehuels/pinwalk/pkg/svg"
	"github.com/matzehuels/pinwalk/pkg/traverse"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds source line and position to node labels.
	Detailed bool

	// Title is drawn above the diagram when set.
	Title string
}

// Node is one visited connector.
type Node struct {
	ID       string
	Index    int
	Group    string
	Terminal string // id of the pin's terminal, if any
	Line     int
	X, Y     float64
	Placed   bool
}

// Walk is the drawable form of a traversal.
type Walk struct {
	Nodes   []Node
	CycleTo string
	State   string
}

// FromResult extracts the path of a traversal result over doc. Groups,
// positions and terminals come from [connector.Resolve] with ropts, so the
// diagram shows the connectors the writer will rename.
func FromResult(doc *svg.Document, res *traverse.Result, ropts connector.ResolveOptions) Walk {
	w := Walk{CycleTo: res.CycleTo, State: res.State.String()}
	for _, s := range res.Path {
		n := Node{ID: s.ID, Index: s.Index, Line: s.Line}
		if s.Element != nil {
			ref := connector.Resolve(doc, s.Element, ropts)
			n.Group = ref.Group
			n.X, n.Y, n.Placed = ref.Anchor.X, ref.Anchor.Y, ref.HasAnchor
			if ref.Terminal != nil {
				n.Terminal = ref.Terminal.ID()
			}
		}
		w.Nodes = append(w.Nodes, n)
	}
	return w
}

// ToDOT converts a walk to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(w Walk, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph walk {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=12];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	var groups []string
	members := make(map[string][]Node)
	for _, n := range w.Nodes {
		if _, seen := members[n.Group]; !seen {
			groups = append(groups, n.Group)
		}
		members[n.Group] = append(members[n.Group], n)
	}
	for i, g := range groups {
		indent := "  "
		if g != "" {
			fmt.Fprintf(&buf, "  subgraph cluster_%d {\n    label=%q;\n    style=dashed;\n", i, g)
			indent = "    "
		}
		for _, n := range members[g] {
			fmt.Fprintf(&buf, "%s%q [label=%q];\n", indent, n.ID, fmtLabel(n, opts.Detailed))
		}
		if g != "" {
			buf.WriteString("  }\n")
		}
	}

	buf.WriteString("\n")
	for i := 1; i < len(w.Nodes); i++ {
		fmt.Fprintf(&buf, "  %q -> %q [label=\"%d\"];\n", w.Nodes[i-1].ID, w.Nodes[i].ID, i)
	}
	if w.CycleTo != "" && len(w.Nodes) > 0 {
		last := w.Nodes[len(w.Nodes)-1].ID
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=red, label=\"cycle\"];\n", last, w.CycleTo)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n Node, detailed bool) string {
	label := n.ID + "\n" + connector.Name(n.Index, connector.RolePin)
	if !detailed {
		return label
	}
	parts := []string{"line " + strconv.Itoa(n.Line)}
	if n.Placed {
		parts = append(parts, fmt.Sprintf("at %g,%g", n.X, n.Y))
	}
	if n.Terminal != "" {
		parts = append(parts, "terminal "+n.Terminal)
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox, so the diagram scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// Format names accepted by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Render produces the diagram in format ("dot" or "svg").
func Render(ctx context.Context, w Walk, format string, opts Options) ([]byte, error) {
	dot := ToDOT(w, opts)
	switch strings.ToLower(format) {
	case FormatDOT, "gv":
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	}
	return nil, fmt.Errorf("unsupported graph format %q (want dot or svg)", format)
}
