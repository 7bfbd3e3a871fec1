// Package render draws diagnostic views of a connector walk.
//
// The [nodelink] subpackage turns a traversal path into a Graphviz graph so
// the numbering order of a part can be checked at a glance, without opening
// the drawing in an editor.
package render
