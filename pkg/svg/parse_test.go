package svg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	perrors "github.com/matzehuels/pinwalk/pkg/errors"
)

const breadboardSVG = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!-- Created with Inkscape -->
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="0.3in" height="0.1in" viewBox="0 0 300 100">
  <g id="breadboard">
    <rect id="connector0pin" x="10" y="0" width="20" height="20"/>
    <rect id="connector1pin" x="110" y="0" width="20" height="20"/>
    <text x="5" y="90" font-size="10">Pin &amp; label</text>
  </g>
</svg>
`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(breadboardSVG))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if doc.Root == nil || doc.Root.Tag() != "svg" {
		t.Fatalf("Root = %v, want <svg>", doc.Root)
	}
	if got := doc.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
	if len(doc.Prolog) != 2 {
		t.Errorf("len(Prolog) = %d, want 2 (declaration and comment)", len(doc.Prolog))
	}

	xlink, ok := doc.Root.Attr("xmlns:xlink")
	if !ok || xlink != "http://www.w3.org/1999/xlink" {
		t.Errorf("xmlns:xlink = %q, %v", xlink, ok)
	}

	pin := doc.ElementByID("connector1pin")
	if pin == nil {
		t.Fatal("ElementByID(connector1pin) = nil")
	}
	if pin.Parent().ID() != "breadboard" {
		t.Errorf("Parent().ID() = %q, want breadboard", pin.Parent().ID())
	}
	if pin.Line != 6 {
		t.Errorf("Line = %d, want 6", pin.Line)
	}

	var text *Element
	for e := range doc.FindBySelector(ByTag("text")) {
		text = e
	}
	if text == nil || text.Text() != "Pin & label" {
		t.Errorf("text content = %v", text)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"only declaration", `<?xml version="1.0"?>`},
		{"mismatched tags", `<svg><g></svg></g>`},
		{"unclosed", `<svg><g>`},
		{"stray end", `<svg/></g>`},
		{"two roots", `<svg/><svg/>`},
		{"text outside root", `<svg/>junk`},
		{"bad attribute", `<svg id=connector/>`},
		{"unknown entity", `<svg>&nbsp;</svg>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Parse() error = nil, want PARSE_ERROR")
			}
			if !perrors.Is(err, perrors.ErrCodeParse) {
				t.Errorf("Parse() code = %v, want %v", perrors.GetCode(err), perrors.ErrCodeParse)
			}
		})
	}
}

func TestParseCharset(t *testing.T) {
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<svg><title>R\xe9sistance</title></svg>"

	doc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	title := doc.Root.ChildElements()[0]
	if title.Text() != "Résistance" {
		t.Errorf("Text() = %q, want %q", title.Text(), "Résistance")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.svg")
	if err := os.WriteFile(path, []byte(breadboardSVG), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.ElementByID("connector0pin") == nil {
		t.Error("Load() lost connector0pin")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.svg"))
	if !perrors.Is(err, perrors.ErrCodeIO) {
		t.Errorf("Load(missing) code = %v, want %v", perrors.GetCode(err), perrors.ErrCodeIO)
	}

	bad := filepath.Join(dir, "bad.svg")
	if err := os.WriteFile(bad, []byte("<svg><g></svg>"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	if !perrors.Is(err, perrors.ErrCodeParse) {
		t.Errorf("Load(bad) code = %v, want %v", perrors.GetCode(err), perrors.ErrCodeParse)
	}
	if !strings.Contains(err.Error(), "bad.svg") {
		t.Errorf("Load(bad) error %q does not name the file", err)
	}
}
