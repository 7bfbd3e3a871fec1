package connector

import (
	"regexp"
	"strconv"
)

// Prefix starts every conventional connector id.
const Prefix = "connector"

// Role is the suffix naming which part of a connector an element draws.
type Role string

const (
	RolePin      Role = "pin"
	RoleTerminal Role = "terminal"
	RoleLeg      Role = "leg"
)

// Roles lists the roles in the order elements are renamed.
var Roles = []Role{RolePin, RoleTerminal, RoleLeg}

// Name returns the conventional id for index and role, e.g. connector3pin.
func Name(index int, role Role) string {
	return Prefix + strconv.Itoa(index) + string(role)
}

var idRe = regexp.MustCompile(`^connector(\d+)(pin|terminal|leg)$`)

// Parse splits a conventional id into its index and role.
func Parse(id string) (index int, role Role, ok bool) {
	m := idRe.FindStringSubmatch(id)
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return n, Role(m[2]), true
}

// Sibling returns the id of the role element that belongs to the same
// connector as id, following the naming convention.
func Sibling(id string, role Role) (string, bool) {
	n, _, ok := Parse(id)
	if !ok {
		return "", false
	}
	return Name(n, role), true
}

var connectorLikeRe = regexp.MustCompile(`(?i)connector\d`)

// IsConnectorLike reports whether id looks like it names part of a
// connector: "connector" followed by a digit, in any case and anywhere in
// the id. It catches hand-edited ids such as "Connector12pin+" or
// "connector3" but not a container named "connectors".
func IsConnectorLike(id string) bool {
	return connectorLikeRe.MatchString(id)
}

var (
	pinWordRe       = regexp.MustCompile(`(?i)pin`)
	connectorWordRe = regexp.MustCompile(`(?i)connector`)
)

// RetiredName is the id given to a connector-like element left out of a
// renumbering: "pin" is dropped and "connector" becomes the element's tag,
// so a stray connector5pin rect becomes rect5. The result no longer looks
// like a connector to the part editor.
func RetiredName(id, tag string) string {
	id = pinWordRe.ReplaceAllString(id, "")
	return connectorWordRe.ReplaceAllLiteralString(id, tag)
}
