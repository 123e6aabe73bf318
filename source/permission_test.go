package source

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/outline/internal/pdftest"
)

func TestExtractAllowed(t *testing.T) {
	tests := []struct {
		name string
		p    int
		want bool
	}{
		{"all permissions", 0xFFFF, true},
		{"none", 0xF0C3, false},
		{"extract only", 0x10, true},
		{"print only", 0x04, false},
		{"negative with extract", -4, true},
		{"negative without extract", -20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractAllowed(tt.p); got != tt.want {
				t.Errorf("ExtractAllowed(%#x) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestCheckExtractPermission_Unencrypted(t *testing.T) {
	if err := CheckExtractPermission(bytes.NewReader(pdftest.Minimal()), ""); err != nil {
		t.Errorf("CheckExtractPermission() error = %v", err)
	}
}

func TestCheckExtractPermission_Encrypted(t *testing.T) {
	tests := []struct {
		name    string
		perms   model.PermissionFlags
		allowed bool
	}{
		{"no permissions", model.PermissionsNone, false},
		{"all permissions", model.PermissionsAll, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := pdftest.Encrypted(t, tt.perms)
			err := CheckExtractPermission(bytes.NewReader(data), "")
			if tt.allowed {
				if err != nil {
					t.Errorf("CheckExtractPermission() error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrExtractionNotPermitted) {
				t.Errorf("error = %v, want ErrExtractionNotPermitted", err)
			}
		})
	}
}

func TestCheckExtractPermission_Garbage(t *testing.T) {
	err := CheckExtractPermission(bytes.NewReader([]byte("not a pdf")), "")
	if err == nil {
		t.Fatal("expected error for non-PDF input")
	}
	if errors.Is(err, ErrExtractionNotPermitted) {
		t.Error("read failures should not look like a permission denial")
	}
}

func TestCheckFile(t *testing.T) {
	path := pdftest.WriteFile(t, "doc.pdf", pdftest.Minimal())
	if err := CheckFile(path, ""); err != nil {
		t.Errorf("CheckFile() error = %v", err)
	}

	locked := pdftest.WriteFile(t, "locked.pdf", pdftest.Encrypted(t, model.PermissionsNone))
	if err := CheckFile(locked, ""); !errors.Is(err, ErrExtractionNotPermitted) {
		t.Errorf("CheckFile(locked) error = %v, want ErrExtractionNotPermitted", err)
	}
	if err := CheckFile(filepath.Join(t.TempDir(), "missing.pdf"), ""); err == nil {
		t.Error("expected error for missing file")
	}
}
