package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"

	perrors "github.com/matzehuels/pinwalk/pkg/errors"
)

// Load reads and parses the SVG file at path.
// Read failures are reported as IO_ERROR, malformed XML as PARSE_ERROR.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		if perrors.Is(err, perrors.ErrCodeParse) {
			return nil, perrors.Wrap(perrors.ErrCodeParse, err, "parse %s", path)
		}
		return nil, err
	}
	return doc, nil
}

// Parse builds a Document from r.
//
// Raw tokens are used so namespace prefixes are kept as written. Because the
// raw tokenizer does not pair start and end tags, nesting is checked here.
// Non-UTF-8 input is transcoded according to the XML declaration.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	doc := &Document{}
	var stack []*Element

	for {
		line, _ := dec.InputPos()
		tok, err := dec.RawToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, parseError(line, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name, Line: line}
			if len(t.Attr) > 0 {
				el.Attrs = make([]Attr, len(t.Attr))
				for i, a := range t.Attr {
					el.Attrs[i] = Attr{Name: a.Name, Value: a.Value}
				}
			}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, parseError(line, fmt.Errorf("second root element <%s>", qualify(t.Name)))
				}
				doc.Root = el
			} else {
				stack[len(stack)-1].AppendChild(el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, parseError(line, fmt.Errorf("unexpected end element </%s>", qualify(t.Name)))
			}
			top := stack[len(stack)-1]
			if top.Name != t.Name {
				return nil, parseError(line, fmt.Errorf("element <%s> opened on line %d closed by </%s>",
					top.QName(), top.Line, qualify(t.Name)))
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, parseError(line, errors.New("text outside the root element"))
				}
				continue
			}
			stack[len(stack)-1].AppendChild(CharData(t))

		case xml.Comment:
			doc.place(stack, Comment(t))

		case xml.ProcInst:
			doc.place(stack, ProcInst{Target: t.Target, Inst: string(t.Inst)})

		case xml.Directive:
			doc.place(stack, Directive(t))
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, parseError(top.Line, fmt.Errorf("element <%s> is never closed", top.QName()))
	}
	if doc.Root == nil {
		return nil, perrors.New(perrors.ErrCodeParse, "no root element")
	}
	return doc, nil
}

// place attaches a non-element node to the open element, the prolog or the
// epilog depending on where the decoder is.
func (d *Document) place(stack []*Element, n Node) {
	switch {
	case len(stack) > 0:
		stack[len(stack)-1].AppendChild(n)
	case d.Root == nil:
		d.Prolog = append(d.Prolog, n)
	default:
		d.Epilog = append(d.Epilog, n)
	}
}

func parseError(line int, err error) error {
	return perrors.Wrap(perrors.ErrCodeParse, err, "line %d", line)
}
