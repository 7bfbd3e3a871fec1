// Package renumber applies a connector mapping to a document.
//
// [Apply] renames each mapped pin to connector{N}pin and carries its
// terminal and leg along (connector{N}terminal, connector{N}leg). Every
// attribute that refers to a renamed id follows: reference attributes such
// as terminalId, href and xlink:href links, and url(#id) paint references.
//
// Renaming is done in two phases. The full set of writes is planned from a
// snapshot of the original ids before the first attribute changes, so
// overlapping old and new names (connector1pin becoming connector2pin while
// connector2pin becomes connector3pin) never interfere.
//
// Connector-like elements the walk did not reach are retired: their id
// loses "pin" and "connector" becomes the tag name, so the part editor no
// longer treats them as connectors. Retirement can be switched off, except
// for elements whose id would collide with a new name.
package renumber
