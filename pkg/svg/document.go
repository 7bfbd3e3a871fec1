package svg

import (
	"encoding/xml"
	"iter"
	"strings"
)

// Node is a child of an [Element]: *Element, CharData, Comment, ProcInst or
// Directive.
type Node interface {
	isNode()
}

// CharData is text content.
type CharData string

// Comment is the body of an XML comment, without the delimiters.
type Comment string

// Directive is the body of a <!...> declaration such as a DOCTYPE.
type Directive string

// ProcInst is a processing instruction such as the XML declaration.
type ProcInst struct {
	Target string
	Inst   string
}

func (CharData) isNode()  {}
func (Comment) isNode()   {}
func (Directive) isNode() {}
func (ProcInst) isNode()  {}
func (*Element) isNode()  {}

// Attr is a single attribute. Name.Space holds the raw prefix ("xlink",
// "xmlns", "inkscape") as written in the source.
type Attr struct {
	Name  xml.Name
	Value string
}

// QName returns the attribute name as written, prefix included.
func (a Attr) QName() string { return qualify(a.Name) }

// Element is an XML element with ordered attributes and children.
//
// The zero value is a valid detached element; use [Element.AppendChild] to
// build trees so parent links stay consistent.
type Element struct {
	Name     xml.Name
	Attrs    []Attr
	Children []Node
	Line     int // source line of the start tag, 0 if built in memory

	parent *Element
}

// NewElement creates a detached element with the given qualified tag and
// attribute name/value pairs.
func NewElement(tag string, attrs ...string) *Element {
	e := &Element{Name: parseName(tag)}
	for i := 0; i+1 < len(attrs); i += 2 {
		e.SetAttr(attrs[i], attrs[i+1])
	}
	return e
}

// Tag returns the local name of the element ("rect", "g", "line").
func (e *Element) Tag() string { return e.Name.Local }

// QName returns the element name as written, prefix included.
func (e *Element) QName() string { return qualify(e.Name) }

// ID returns the id attribute, or "" when absent.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Attr returns the value of the attribute with the given qualified name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.QName() == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, keeping its position when it already exists and
// appending it otherwise.
func (e *Element) SetAttr(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].QName() == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: parseName(name), Value: value})
}

// Parent returns the enclosing element, or nil for the root.
func (e *Element) Parent() *Element { return e.parent }

// AppendChild adds n as the last child. Elements are re-parented.
func (e *Element) AppendChild(n Node) {
	if c, ok := n.(*Element); ok {
		c.parent = e
	}
	e.Children = append(e.Children, n)
}

// ChildElements returns the element children in document order.
func (e *Element) ChildElements() []*Element {
	var out []*Element
	for _, c := range e.Children {
		if ce, ok := c.(*Element); ok {
			out = append(out, ce)
		}
	}
	return out
}

// Siblings returns the element children of the parent, e included.
// The root element is its own only sibling.
func (e *Element) Siblings() []*Element {
	if e.parent == nil {
		return []*Element{e}
	}
	return e.parent.ChildElements()
}

// NextSiblingElement returns the next element child of the parent, or nil.
func (e *Element) NextSiblingElement() *Element {
	sibs := e.Siblings()
	for i, s := range sibs {
		if s == e && i+1 < len(sibs) {
			return sibs[i+1]
		}
	}
	return nil
}

// Text returns the concatenated character data of the direct children.
func (e *Element) Text() string {
	var b strings.Builder
	for _, c := range e.Children {
		if cd, ok := c.(CharData); ok {
			b.WriteString(string(cd))
		}
	}
	return b.String()
}

// Descendants returns e and every element below it in document order.
func (e *Element) Descendants() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		e.walk(yield)
	}
}

func (e *Element) walk(yield func(*Element) bool) bool {
	if !yield(e) {
		return false
	}
	for _, c := range e.Children {
		if ce, ok := c.(*Element); ok {
			if !ce.walk(yield) {
				return false
			}
		}
	}
	return true
}

// Document is a parsed SVG file.
type Document struct {
	Prolog []Node // declaration, comments and doctype before the root
	Root   *Element
	Epilog []Node // comments and processing instructions after the root
}

// Selector is a predicate over elements used by [Document.FindBySelector].
type Selector func(*Element) bool

// ByID matches elements whose id equals id.
func ByID(id string) Selector {
	return func(e *Element) bool { return e.ID() == id }
}

// ByTag matches elements by local name.
func ByTag(tag string) Selector {
	return func(e *Element) bool { return e.Name.Local == tag }
}

// Elements returns every element in document order.
func (d *Document) Elements() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		if d.Root == nil {
			return
		}
		for e := range d.Root.Descendants() {
			if !yield(e) {
				return
			}
		}
	}
}

// FindBySelector returns the elements matching sel in document order.
// The sequence is evaluated lazily against the live tree on every range.
func (d *Document) FindBySelector(sel Selector) iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for e := range d.Elements() {
			if sel(e) && !yield(e) {
				return
			}
		}
	}
}

// ElementByID returns the first element with the given id, or nil.
func (d *Document) ElementByID(id string) *Element {
	for e := range d.FindBySelector(ByID(id)) {
		return e
	}
	return nil
}

// Len returns the number of elements in the document.
func (d *Document) Len() int {
	n := 0
	for range d.Elements() {
		n++
	}
	return n
}

// DuplicateIDs returns ids carried by more than one element, in order of
// their second occurrence.
func (d *Document) DuplicateIDs() []string {
	seen := make(map[string]int)
	var dups []string
	for e := range d.Elements() {
		id := e.ID()
		if id == "" {
			continue
		}
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}

func qualify(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func parseName(s string) xml.Name {
	if prefix, local, ok := strings.Cut(s, ":"); ok {
		return xml.Name{Space: prefix, Local: local}
	}
	return xml.Name{Local: s}
}
