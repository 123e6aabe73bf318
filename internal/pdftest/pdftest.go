// Package pdftest builds small PDF fixtures for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// OwnerPassword is the owner password of every encrypted fixture. The user
// password is empty, so the fixtures open without one.
const OwnerPassword = "owner"

// Minimal returns a one-page unencrypted PDF with a valid xref table.
func Minimal() []byte {
	stream := "BT\n/F1 12 Tf\n72 720 Td\n(Hello) Tj\nET"
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return []byte(b.String())
}

// Encrypted returns Minimal encrypted with AES-256, an empty user password
// and the given permissions.
func Encrypted(t testing.TB, perms model.PermissionFlags) []byte {
	t.Helper()
	conf := model.NewAESConfiguration("", OwnerPassword, 256)
	conf.Permissions = perms

	var out bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(Minimal()), &out, conf); err != nil {
		t.Fatalf("failed to encrypt fixture: %v", err)
	}
	return out.Bytes()
}

// WriteFile writes data to a file named name in a test temp directory and
// returns its path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
