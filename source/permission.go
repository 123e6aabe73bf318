// Package source checks a PDF's access permissions before its text is
// reconstructed.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrExtractionNotPermitted is returned for encrypted documents whose
// permissions forbid extracting text.
var ErrExtractionNotPermitted = errors.New("text extraction not permitted")

// permExtract is bit 5 of the standard security handler's P entry.
const permExtract = 1 << 4

// ExtractAllowed reports whether a P permission value grants text extraction.
func ExtractAllowed(p int) bool {
	return p&permExtract != 0
}

// CheckExtractPermission reads the PDF from rs and returns
// ErrExtractionNotPermitted when it is encrypted without the extract
// permission. Unencrypted documents always pass.
func CheckExtractPermission(rs io.ReadSeeker, password string) error {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return fmt.Errorf("failed to read pdf: %w", err)
	}
	if ctx.E != nil && !ExtractAllowed(ctx.E.P) {
		return ErrExtractionNotPermitted
	}
	return nil
}

// CheckFile opens path and runs CheckExtractPermission on it.
func CheckFile(path, password string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	if err := CheckExtractPermission(f, password); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
