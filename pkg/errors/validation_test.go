package errors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateInputPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "part.svg")
	if err := os.WriteFile(file, []byte("<svg/>"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"regular file", file, false},
		{"empty", "", true},
		{"directory", dir, true},
		{"missing", filepath.Join(dir, "missing.svg"), true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateInputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"connector pin", "connector0pin", false},
		{"marked seed", "connector0pin+", false},
		{"placeholder", "?", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"space", "connector 0", true},
		{"tab", "connector\t0", true},
		{"quote", `con"nector`, true},
		{"angle", "con<nector", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBackupSuffix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"bak", ".bak", false},
		{"tilde", "~", false},
		{"empty", "", true},
		{"slash", "/bak", true},
		{"backslash", "\\bak", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBackupSuffix(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBackupSuffix(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
