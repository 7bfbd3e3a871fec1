// Package connector models the logical connectors of a part drawing.
//
// A connector is one electrical contact. In the drawing it is backed by a pin
// shape and, optionally, a terminal shape (where wires attach) and a leg
// (bendable breadboard leads). All three follow one naming convention:
//
//	connector{N}pin
//	connector{N}terminal
//	connector{N}leg
//
// [Mapping] is the ordered result of a traversal: each visited pin id paired
// with the index it will be renamed to. [Ref] bundles a pin with the
// elements that belong to it so a renumbering can move them together.
package connector
