package svg

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// WriteOptions controls [Serialize].
type WriteOptions struct {
	// Indent is the per-level indentation. Defaults to two spaces.
	Indent string

	// DetailAttributes puts every attribute on its own line, one indent
	// deeper than the tag, and moves "/>" to its own line.
	DetailAttributes bool

	// Logger receives per-element trace output at debug level. Optional.
	Logger *log.Logger
}

// DefaultWriteOptions returns the layout used for part files.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Indent: "  ", DetailAttributes: true}
}

// WriteTo serializes the document with [DefaultWriteOptions].
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := Serialize(d, DefaultWriteOptions())
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Serialize renders the document as pretty-printed UTF-8 XML.
//
// Attribute order and namespace prefixes are reproduced as parsed.
// Whitespace-only text between elements is replaced by indentation; elements
// holding real text are written inline so their content is not altered.
func Serialize(d *Document, opts WriteOptions) ([]byte, error) {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	s := &serializer{opts: opts}

	s.buf.WriteString(xmlDecl(d.Prolog))
	s.buf.WriteByte('\n')
	for _, n := range d.Prolog {
		if pi, ok := n.(ProcInst); ok && pi.Target == "xml" {
			continue
		}
		s.writeNode(n, 0)
	}
	if d.Root != nil {
		s.writeElement(d.Root, 0)
	}
	for _, n := range d.Epilog {
		s.writeNode(n, 0)
	}
	return s.buf.Bytes(), nil
}

type serializer struct {
	buf  bytes.Buffer
	opts WriteOptions
}

func (s *serializer) debug(msg string, kv ...any) {
	if s.opts.Logger != nil {
		s.opts.Logger.Debug(msg, kv...)
	}
}

func (s *serializer) indent(level int) string {
	return strings.Repeat(s.opts.Indent, level)
}

func (s *serializer) writeNode(n Node, level int) {
	switch v := n.(type) {
	case *Element:
		s.writeElement(v, level)
	case Comment:
		s.buf.WriteString(s.indent(level))
		s.buf.WriteString("<!--" + string(v) + "-->\n")
	case ProcInst:
		s.buf.WriteString(s.indent(level))
		s.buf.WriteString(procInst(v) + "\n")
	case Directive:
		s.buf.WriteString(s.indent(level))
		s.buf.WriteString("<!" + string(v) + ">\n")
	case CharData:
		if strings.TrimSpace(string(v)) != "" {
			s.buf.WriteString(s.indent(level))
			s.buf.WriteString(escapeText(string(v)) + "\n")
		}
	}
}

func (s *serializer) writeElement(e *Element, level int) {
	s.debug("write element", "line", e.Line, "tag", e.QName(), "id", e.ID(), "level", level)

	pad := s.indent(level)
	s.buf.WriteString(pad)
	s.writeStartTag(e, level)

	if len(e.Children) == 0 {
		if s.opts.DetailAttributes && len(e.Attrs) > 0 {
			s.buf.WriteString("\n" + pad + "/>\n")
		} else {
			s.buf.WriteString("/>\n")
		}
		return
	}

	if hasText(e) {
		s.buf.WriteString(">")
		for _, c := range e.Children {
			writeInline(&s.buf, c)
		}
		s.buf.WriteString("</" + e.QName() + ">\n")
		return
	}

	s.buf.WriteString(">\n")
	for _, c := range e.Children {
		s.writeNode(c, level+1)
	}
	s.buf.WriteString(pad + "</" + e.QName() + ">\n")
}

// writeStartTag writes "<tag attrs" without the closing bracket.
func (s *serializer) writeStartTag(e *Element, level int) {
	s.buf.WriteString("<" + e.QName())
	for _, a := range e.Attrs {
		if s.opts.DetailAttributes {
			s.buf.WriteString("\n" + s.indent(level+1))
		} else {
			s.buf.WriteByte(' ')
		}
		s.buf.WriteString(a.QName() + `="` + escapeAttr(a.Value) + `"`)
	}
}

// writeInline writes a node compactly, without indentation or detail
// attribute layout, so mixed content keeps its exact text.
func writeInline(buf *bytes.Buffer, n Node) {
	switch v := n.(type) {
	case CharData:
		buf.WriteString(escapeText(string(v)))
	case Comment:
		buf.WriteString("<!--" + string(v) + "-->")
	case ProcInst:
		buf.WriteString(procInst(v))
	case Directive:
		buf.WriteString("<!" + string(v) + ">")
	case *Element:
		buf.WriteString("<" + v.QName())
		for _, a := range v.Attrs {
			buf.WriteString(" " + a.QName() + `="` + escapeAttr(a.Value) + `"`)
		}
		if len(v.Children) == 0 {
			buf.WriteString("/>")
			return
		}
		buf.WriteString(">")
		for _, c := range v.Children {
			writeInline(buf, c)
		}
		buf.WriteString("</" + v.QName() + ">")
	}
}

// hasText reports whether e must be written inline: it carries text that is
// not just formatting whitespace, or it is a leaf holding only text.
func hasText(e *Element) bool {
	onlyText := true
	for _, c := range e.Children {
		switch v := c.(type) {
		case CharData:
			if strings.TrimSpace(string(v)) != "" {
				return true
			}
		default:
			onlyText = false
		}
	}
	return onlyText
}

var (
	declVersionRe    = regexp.MustCompile(`version\s*=\s*["']([^"']*)["']`)
	declStandaloneRe = regexp.MustCompile(`standalone\s*=\s*["']([^"']*)["']`)
)

// xmlDecl returns the XML declaration for the output. Version and standalone
// are kept from the source; the encoding is always UTF-8 because that is
// what the serializer emits.
func xmlDecl(prolog []Node) string {
	version, standalone := "1.0", ""
	for _, n := range prolog {
		pi, ok := n.(ProcInst)
		if !ok || pi.Target != "xml" {
			continue
		}
		if m := declVersionRe.FindStringSubmatch(pi.Inst); m != nil {
			version = m[1]
		}
		if m := declStandaloneRe.FindStringSubmatch(pi.Inst); m != nil {
			standalone = m[1]
		}
	}
	decl := `<?xml version="` + version + `" encoding="UTF-8"`
	if standalone != "" {
		decl += ` standalone="` + standalone + `"`
	}
	return decl + "?>"
}

func procInst(p ProcInst) string {
	if p.Inst == "" {
		return "<?" + p.Target + "?>"
	}
	return "<?" + p.Target + " " + p.Inst + "?>"
}

var (
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		`"`, "&quot;",
		"\n", "&#xA;",
		"\r", "&#xD;",
		"\t", "&#x9;",
	)
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
)

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
func escapeText(s string) string { return textEscaper.Replace(s) }
