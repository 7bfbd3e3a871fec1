package connector

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		index int
		role  Role
		want  string
	}{
		{0, RolePin, "connector0pin"},
		{12, RoleTerminal, "connector12terminal"},
		{3, RoleLeg, "connector3leg"},
	}
	for _, tt := range tests {
		if got := Name(tt.index, tt.role); got != tt.want {
			t.Errorf("Name(%d, %q) = %q, want %q", tt.index, tt.role, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		id        string
		wantIndex int
		wantRole  Role
		wantOK    bool
	}{
		{"connector0pin", 0, RolePin, true},
		{"connector17terminal", 17, RoleTerminal, true},
		{"connector2leg", 2, RoleLeg, true},
		{"connector0pin+", 0, "", false},
		{"connectorpin", 0, "", false},
		{"Connector1pin", 0, "", false},
		{"rect1", 0, "", false},
		{"", 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, role, ok := Parse(tt.id)
			if n != tt.wantIndex || role != tt.wantRole || ok != tt.wantOK {
				t.Errorf("Parse(%q) = %d, %q, %v, want %d, %q, %v",
					tt.id, n, role, ok, tt.wantIndex, tt.wantRole, tt.wantOK)
			}
		})
	}
}

func TestSibling(t *testing.T) {
	if got, ok := Sibling("connector4pin", RoleTerminal); !ok || got != "connector4terminal" {
		t.Errorf("Sibling() = %q, %v", got, ok)
	}
	if _, ok := Sibling("pad4", RoleLeg); ok {
		t.Error("Sibling() of non-conventional id should fail")
	}
}

func TestIsConnectorLike(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"connector0pin", true},
		{"Connector12pin+", true},
		{"connector3", true},
		{"xconnector7x", true},
		{"connectors", false},
		{"rect3", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsConnectorLike(tt.id); got != tt.want {
			t.Errorf("IsConnectorLike(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestRetiredName(t *testing.T) {
	tests := []struct {
		id, tag string
		want    string
	}{
		{"connector5pin", "rect", "rect5"},
		{"connector5terminal", "rect", "rect5terminal"},
		{"Connector2Pin", "line", "line2"},
		{"connector0pin+", "circle", "circle0+"},
	}
	for _, tt := range tests {
		if got := RetiredName(tt.id, tt.tag); got != tt.want {
			t.Errorf("RetiredName(%q, %q) = %q, want %q", tt.id, tt.tag, got, tt.want)
		}
	}
}
