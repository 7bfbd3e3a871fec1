package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/pinwalk/pkg/connector"
	"github.com/matzehuels/pinwalk/pkg/resolve"
	"github.com/matzehuels/pinwalk/pkg/svg"
	"github.com/matzehuels/pinwalk/pkg/traverse"
)

func walk(t *testing.T, src string) Walk {
	t.Helper()
	doc, err := svg.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	res, err := traverse.New(resolve.NewSchematic(resolve.SchematicOptions{}), traverse.Options{}).Run(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	ropts := connector.DefaultResolveOptions()
	ropts.PairSiblingRect = true
	return FromResult(doc, res, ropts)
}

func TestToDOT(t *testing.T) {
	w := walk(t, `<svg><g id="schematic"><line id="?" x1="1" y1="2" next="b"/><line id="b" next="?"/></g></svg>`)

	dot := ToDOT(w, Options{Title: "part.svg"})

	for _, want := range []string{
		"digraph walk {",
		`label="part.svg";`,
		"subgraph cluster_0 {",
		`label="schematic";`,
		`"?" [label="?\nconnector0pin"];`,
		`"b" [label="b\nconnector1pin"];`,
		`"?" -> "b" [label="1"];`,
		`"b" -> "?" [style=dashed, color=red, label="cycle"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	w := walk(t, `<svg><line id="?" x1="1" y1="2"/><rect id="pad"/></svg>`)
	dot := ToDOT(w, Options{Detailed: true})

	if !strings.Contains(dot, `at 1,2`) || !strings.Contains(dot, "line 1") {
		t.Errorf("detailed label missing position:\n%s", dot)
	}
	if !strings.Contains(dot, "terminal pad") {
		t.Errorf("detailed label missing terminal:\n%s", dot)
	}
	if strings.Contains(dot, "subgraph") {
		t.Errorf("top-level connectors should not be clustered:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Errorf("single node walk has no edges:\n%s", dot)
	}
}

func TestRenderDOT(t *testing.T) {
	w := walk(t, `<svg><line id="?"/></svg>`)
	out, err := Render(context.Background(), w, "dot", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("digraph")) {
		t.Errorf("Render(dot) = %s", out)
	}
	if _, err := Render(context.Background(), w, "pdf", Options{}); err == nil {
		t.Error("Render(pdf) should fail")
	}
}

func TestRenderSVG(t *testing.T) {
	w := walk(t, `<svg><line id="?" next="b"/><line id="b"/></svg>`)
	out, err := RenderSVG(context.Background(), ToDOT(w, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !bytes.Contains(out, []byte("<svg")) || !bytes.Contains(out, []byte("connector1pin")) {
		t.Errorf("RenderSVG() output missing content:\n%s", out)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if string(normalizeViewBox([]byte("<svg/>"))) != "<svg/>" {
		t.Error("missing viewBox must be left alone")
	}
}
