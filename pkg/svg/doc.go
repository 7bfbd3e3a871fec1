// Package svg is the document model used by pinwalk to read, query and
// rewrite part drawings.
//
// # Overview
//
// Part SVGs are edited in place: identifiers change but everything else
// (attribute order, namespace prefixes, comments, text) must survive a
// load/serialize round trip. The standard library's [encoding/xml] struct
// decoding cannot guarantee that, so this package builds its own small tree
// from raw tokens:
//
//   - [Document] owns the root [Element] plus the prolog (XML declaration,
//     comments, doctype) and any trailing comments.
//   - [Element] keeps its tag and attributes exactly as written, with the
//     namespace prefix in [xml.Name.Space] rather than a resolved URL.
//   - Character data, comments and processing instructions are kept as
//     [CharData], [Comment] and [ProcInst] children.
//
// # Querying
//
// [Document.FindBySelector] returns an [iter.Seq] over matching elements in
// document order. The sequence is lazy and restartable: ranging over it twice
// walks the live tree twice.
//
//	for el := range doc.FindBySelector(svg.ByTag("rect")) {
//	    fmt.Println(el.ID())
//	}
//
// # Geometry
//
// [Element.Anchor] reduces a shape to the single point used to order
// connectors: the top-left of a rect, the first end of a line, the centre of
// a circle, the first vertex of a polygon or path. The element's own
// transform attribute is applied. Missing required geometry or malformed
// numbers fail with an INVALID_GEOMETRY error instead of defaulting.
//
// # Serialization
//
// [Serialize] produces the pretty-printed layout used for part files: one
// element per line, two-space indentation, and (with
// [WriteOptions.DetailAttributes]) one attribute per line.
package svg
