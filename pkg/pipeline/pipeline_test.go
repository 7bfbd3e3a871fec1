package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinwalk/pkg/config"
	"github.com/matzehuels/pinwalk/pkg/errors"
)

const breadboardPart = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="1in" height="1in">
  <g id="breadboard">
    <rect id="connector5pin" x="20" y="0" width="2" height="2"/>
    <rect id="connector0pin" x="0" y="0" width="2" height="2"/>
    <rect id="connector2pin" x="10" y="0" width="2" height="2"/>
    <rect id="connector5terminal" x="20" y="1" width="2" height="1"/>
  </g>
</svg>
`

const schematicPart = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg">
  <g id="schematic">
    <line id="?" x1="0" y1="0" x2="5" y2="0" next="b"/>
    <line id="b" x1="0" y1="10" x2="5" y2="10" next="c"/>
    <line id="c" x1="0" y1="20" x2="5" y2="20"/>
  </g>
</svg>
`

// pcbPart draws each pin once per copper layer under the same id.
const pcbPart = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg">
  <g id="copper1">
    <g id="copper0">
      <circle id="connector0pin" cx="0" cy="0" r="1"/>
      <circle id="connector3pin" cx="10" cy="0" r="1"/>
    </g>
    <circle id="connector0pin" cx="0" cy="0" r="1"/>
    <circle id="connector3pin" cx="10" cy="0" r="1"/>
  </g>
</svg>
`

func quietRunner() *Runner {
	return NewRunner(log.NewWithOptions(io.Discard, log.Options{}))
}

func writePart(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "part.svg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateMode(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"breadboard", false},
		{"schematic", false},
		{"pcb", true},
		{"Breadboard", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateMode(tt.mode)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Mode: ModeBreadboard}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Config.BackupSuffix != ".bak" {
		t.Errorf("zero config not defaulted: %+v", opts.Config)
	}
	if opts.Stdout == nil || opts.Logger == nil {
		t.Error("Stdout and Logger should be defaulted")
	}
	if got := opts.Sentinel(); got != "connector0pin" {
		t.Errorf("Sentinel() = %q", got)
	}

	bad := []Options{
		{Mode: "pcb"},
		{Mode: ModeSchematic, Verbosity: 5},
		{Mode: ModeSchematic, Seed: "has space"},
	}
	for _, o := range bad {
		if err := o.ValidateAndSetDefaults(); err == nil {
			t.Errorf("ValidateAndSetDefaults(%+v) should fail", o)
		}
	}

	cfg := config.Default()
	cfg.Base = 2
	o := Options{Mode: ModeBreadboard, Config: cfg}
	if err := o.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("base 2 error = %v, want INVALID_CONFIG", err)
	}
}

func TestExecuteInPlace(t *testing.T) {
	path := writePart(t, breadboardPart)

	res, err := quietRunner().Execute(context.Background(), path, Options{Mode: ModeBreadboard, Verbosity: config.Silent})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := res.Traversal.Mapping.String(); got != "[(connector0pin,0), (connector2pin,1), (connector5pin,2)]" {
		t.Errorf("mapping = %s", got)
	}
	if res.Backup != path+".bak" {
		t.Errorf("Backup = %q", res.Backup)
	}
	orig, err := os.ReadFile(res.Backup)
	if err != nil || string(orig) != breadboardPart {
		t.Errorf("backup does not hold the original: %v", err)
	}

	out, _ := os.ReadFile(path)
	for _, want := range []string{`id="connector1pin"`, `id="connector2pin"`, `id="connector2terminal"`} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
	if bytes.Contains(out, []byte("connector5")) {
		t.Errorf("old ids left in output:\n%s", out)
	}
	if res.Stats.Connectors != 3 || res.Stats.Renamed != 3 {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

func TestExecuteCopperLayers(t *testing.T) {
	path := writePart(t, pcbPart)

	res, err := quietRunner().Execute(context.Background(), path, Options{Mode: ModeBreadboard, Verbosity: config.Silent})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := res.Traversal.Mapping.String(); got != "[(connector0pin,0), (connector3pin,1)]" {
		t.Errorf("mapping = %s", got)
	}
	out, _ := os.ReadFile(path)
	if n := bytes.Count(out, []byte(`id="connector1pin"`)); n != 2 {
		t.Errorf("connector1pin appears %d times, want once per layer:\n%s", n, out)
	}
	if n := bytes.Count(out, []byte(`id="connector0pin"`)); n != 2 {
		t.Errorf("connector0pin appears %d times, want once per layer:\n%s", n, out)
	}
	if bytes.Contains(out, []byte(`id="circle`)) {
		t.Errorf("copper1 pins were retired:\n%s", out)
	}
	if bytes.Contains(out, []byte("connector3pin")) {
		t.Errorf("old ids left in output:\n%s", out)
	}
	if res.Stats.Retired != 0 || res.Stats.Renamed != 2 {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

func TestExecutePrint(t *testing.T) {
	path := writePart(t, breadboardPart)
	var stdout bytes.Buffer

	res, err := quietRunner().Execute(context.Background(), path, Options{
		Mode:      ModeBreadboard,
		Verbosity: config.Print,
		Stdout:    &stdout,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !bytes.Equal(stdout.Bytes(), res.Output) || !strings.HasPrefix(stdout.String(), "<?xml") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if data, _ := os.ReadFile(path); string(data) != breadboardPart {
		t.Error("input file was modified")
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("backup created when printing")
	}
}

func TestExecuteSeedNotFound(t *testing.T) {
	content := strings.ReplaceAll(breadboardPart, "connector0pin", "connector9pin")
	path := writePart(t, content)

	res, err := quietRunner().Execute(context.Background(), path, Options{
		Mode:        ModeBreadboard,
		GraphPath:   filepath.Join(filepath.Dir(path), "walk.dot"),
		MappingPath: filepath.Join(filepath.Dir(path), "map.json"),
	})
	if !errors.Is(err, errors.ErrCodeSeedNotFound) {
		t.Fatalf("Execute() error = %v, want SEED_NOT_FOUND", err)
	}
	if res == nil || res.Traversal == nil || res.Traversal.Mapping != nil {
		t.Errorf("failed result = %+v", res)
	}

	if data, _ := os.ReadFile(path); string(data) != content {
		t.Error("input file was modified")
	}
	for _, side := range []string{path + ".bak", "walk.dot", "map.json"} {
		if !filepath.IsAbs(side) {
			side = filepath.Join(filepath.Dir(path), side)
		}
		if _, err := os.Stat(side); !os.IsNotExist(err) {
			t.Errorf("%s created by a failed run", side)
		}
	}
}

func TestExecuteIdempotent(t *testing.T) {
	path := writePart(t, breadboardPart)
	runner := quietRunner()

	if _, err := runner.Execute(context.Background(), path, Options{Mode: ModeBreadboard}); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(path)

	res, err := runner.Execute(context.Background(), path, Options{Mode: ModeBreadboard})
	if err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(path)

	if !bytes.Equal(first, second) {
		t.Errorf("second run changed the file:\n%s\n---\n%s", first, second)
	}
	if res.Stats.Renamed != 0 {
		t.Errorf("second run renamed %d ids", res.Stats.Renamed)
	}
}

func TestExecuteSchematic(t *testing.T) {
	path := writePart(t, schematicPart)
	dir := filepath.Dir(path)
	var stdout bytes.Buffer

	res, err := quietRunner().Execute(context.Background(), path, Options{
		Mode:        ModeSchematic,
		Verbosity:   config.Print,
		Stdout:      &stdout,
		GraphPath:   filepath.Join(dir, "walk.dot"),
		MappingPath: filepath.Join(dir, "map.json"),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := res.Traversal.Mapping.String(); got != "[(?,0), (b,1), (c,2)]" {
		t.Errorf("mapping = %s", got)
	}
	for _, want := range []string{`next="connector1pin"`, `next="connector2pin"`, `id="connector0pin"`} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %s:\n%s", want, stdout.String())
		}
	}

	dot, err := os.ReadFile(filepath.Join(dir, "walk.dot"))
	if err != nil || !bytes.HasPrefix(dot, []byte("digraph")) {
		t.Errorf("graph not written: %v", err)
	}
	js, err := os.ReadFile(filepath.Join(dir, "map.json"))
	if err != nil || !bytes.Contains(js, []byte(`"new": "connector2pin"`)) {
		t.Errorf("mapping not written: %v\n%s", err, js)
	}
}

func TestExecuteSeedOverride(t *testing.T) {
	path := writePart(t, breadboardPart)
	var stdout bytes.Buffer

	res, err := quietRunner().Execute(context.Background(), path, Options{
		Mode:      ModeBreadboard,
		Verbosity: config.Print,
		Stdout:    &stdout,
		Seed:      "connector2pin",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Traversal.Mapping.String(); got != "[(connector2pin,0), (connector5pin,1)]" {
		t.Errorf("mapping = %s", got)
	}
}

func TestExecuteErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.svg")
	os.WriteFile(broken, []byte("<svg><g></svg>"), 0o644)

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "nope.svg"), errors.ErrCodeInvalidPath},
		{"directory", dir, errors.ErrCodeInvalidPath},
		{"malformed", broken, errors.ErrCodeParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner().Execute(context.Background(), tt.path, Options{Mode: ModeBreadboard})
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := quietRunner().Execute(ctx, broken, Options{Mode: ModeBreadboard}); err == nil {
		t.Error("canceled context should fail")
	}
}

func TestRenumberOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Schematic.ChainAttr = "link"

	tests := []struct {
		mode      string
		wantChain bool
		wantLabel string
	}{
		{ModeSchematic, true, cfg.Schematic.LabelAttr},
		{ModeBreadboard, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			opts := Options{Mode: tt.mode, Config: cfg}
			r, err := NewResolver(opts, nil)
			if err != nil {
				t.Fatalf("NewResolver() error = %v", err)
			}
			ro := RenumberOptions(opts, r)
			if got := slices.Contains(ro.RefAttrs, "link"); got != tt.wantChain {
				t.Errorf("RefAttrs = %v, chain attribute included = %v, want %v", ro.RefAttrs, got, tt.wantChain)
			}
			if ro.LabelAttr != tt.wantLabel {
				t.Errorf("LabelAttr = %q, want %q", ro.LabelAttr, tt.wantLabel)
			}
		})
	}
}
