package svg

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	perrors "github.com/matzehuels/pinwalk/pkg/errors"
)

// Point is a position in user units.
type Point struct {
	X, Y float64
}

// Matrix is an affine transform in SVG order:
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Matrix{A: 1, D: 1}

// Mult returns m × n, the transform that applies n first and then m.
func (m Matrix) Mult(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

var numberRe = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

// Float parses a numeric attribute. A trailing "px" unit is accepted.
// Missing and malformed values are errors.
func (e *Element) Float(name string) (float64, error) {
	v, ok := e.Attr(name)
	if !ok {
		return 0, geometryError(e, "missing attribute %s", name)
	}
	f, err := parseLength(v)
	if err != nil {
		return 0, geometryError(e, "attribute %s=%q is not a number", name, v)
	}
	return f, nil
}

// floatOr parses an optional numeric attribute whose SVG default is def.
func (e *Element) floatOr(name string, def float64) (float64, error) {
	if _, ok := e.Attr(name); !ok {
		return def, nil
	}
	return e.Float(name)
}

// Anchor returns the point used to order this element among its siblings,
// with the element's own transform applied.
func (e *Element) Anchor() (Point, error) {
	p, err := e.localAnchor()
	if err != nil {
		return Point{}, err
	}
	m, err := e.Transform()
	if err != nil {
		return Point{}, err
	}
	return m.Apply(p), nil
}

func (e *Element) localAnchor() (Point, error) {
	switch e.Name.Local {
	case "rect", "use", "image", "text", "foreignObject", "svg":
		return e.pointOr("x", "y")
	case "line":
		return e.pointOr("x1", "y1")
	case "circle", "ellipse":
		return e.pointOr("cx", "cy")
	case "polygon", "polyline":
		return e.firstPoint("points", false)
	case "path":
		return e.firstPoint("d", true)
	case "g", "a", "switch":
		for _, c := range e.ChildElements() {
			if p, err := c.Anchor(); err == nil {
				return p, nil
			}
		}
		return Point{}, geometryError(e, "group has no anchored children")
	}
	return Point{}, geometryError(e, "no geometry for <%s>", e.QName())
}

func (e *Element) pointOr(xName, yName string) (Point, error) {
	x, err := e.floatOr(xName, 0)
	if err != nil {
		return Point{}, err
	}
	y, err := e.floatOr(yName, 0)
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

// firstPoint reads the first coordinate pair of a points list or path data.
// Path data must start with a moveto command.
func (e *Element) firstPoint(name string, path bool) (Point, error) {
	v, ok := e.Attr(name)
	if !ok {
		return Point{}, geometryError(e, "missing attribute %s", name)
	}
	s := strings.TrimSpace(v)
	if path {
		if s == "" || (s[0] != 'M' && s[0] != 'm') {
			return Point{}, geometryError(e, "path data does not start with a moveto")
		}
		s = s[1:]
	}
	nums := numberRe.FindAllString(s, 2)
	if len(nums) < 2 {
		return Point{}, geometryError(e, "attribute %s has no coordinate pair", name)
	}
	x, _ := strconv.ParseFloat(nums[0], 64)
	y, _ := strconv.ParseFloat(nums[1], 64)
	return Point{X: x, Y: y}, nil
}

// Transform parses the element's own transform attribute.
// Supported functions: matrix, translate, scale, rotate, skewX, skewY.
func (e *Element) Transform() (Matrix, error) {
	v, ok := e.Attr("transform")
	if !ok || strings.TrimSpace(v) == "" {
		return Identity, nil
	}
	m, err := ParseTransform(v)
	if err != nil {
		return Identity, geometryError(e, "transform %q: %v", v, err)
	}
	return m, nil
}

// ParseTransform parses an SVG transform list.
func ParseTransform(v string) (Matrix, error) {
	m := Identity
	for _, part := range strings.Split(v, ")") {
		part = strings.TrimSpace(strings.TrimLeft(part, ", \t\n"))
		if part == "" {
			continue
		}
		name, args, ok := strings.Cut(part, "(")
		if !ok {
			return Identity, fmt.Errorf("malformed transform %q", part)
		}
		nums, err := parseNumbers(args)
		if err != nil {
			return Identity, err
		}
		t, err := transformFunc(strings.TrimSpace(name), nums)
		if err != nil {
			return Identity, err
		}
		m = m.Mult(t)
	}
	return m, nil
}

func transformFunc(name string, p []float64) (Matrix, error) {
	switch strings.ToLower(name) {
	case "matrix":
		if len(p) == 6 {
			return Matrix{A: p[0], B: p[1], C: p[2], D: p[3], E: p[4], F: p[5]}, nil
		}
	case "translate":
		switch len(p) {
		case 1:
			return Matrix{A: 1, D: 1, E: p[0]}, nil
		case 2:
			return Matrix{A: 1, D: 1, E: p[0], F: p[1]}, nil
		}
	case "scale":
		switch len(p) {
		case 1:
			return Matrix{A: p[0], D: p[0]}, nil
		case 2:
			return Matrix{A: p[0], D: p[1]}, nil
		}
	case "rotate":
		if len(p) == 1 || len(p) == 3 {
			rad := p[0] * math.Pi / 180
			cos, sin := math.Cos(rad), math.Sin(rad)
			r := Matrix{A: cos, B: sin, C: -sin, D: cos}
			if len(p) == 3 {
				to := Matrix{A: 1, D: 1, E: p[1], F: p[2]}
				back := Matrix{A: 1, D: 1, E: -p[1], F: -p[2]}
				return to.Mult(r).Mult(back), nil
			}
			return r, nil
		}
	case "skewx":
		if len(p) == 1 {
			return Matrix{A: 1, C: math.Tan(p[0] * math.Pi / 180), D: 1}, nil
		}
	case "skewy":
		if len(p) == 1 {
			return Matrix{A: 1, B: math.Tan(p[0] * math.Pi / 180), D: 1}, nil
		}
	default:
		return Identity, fmt.Errorf("unsupported transform %q", name)
	}
	return Identity, fmt.Errorf("%s takes a different number of parameters than %d", name, len(p))
}

func parseNumbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseLength(v string) (float64, error) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "px")
	return strconv.ParseFloat(v, 64)
}

func geometryError(e *Element, format string, args ...any) error {
	return perrors.New(perrors.ErrCodeInvalidGeometry, "line %d <%s id=%q>: %s",
		e.Line, e.QName(), e.ID(), fmt.Sprintf(format, args...))
}
