package services

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// PDFInspector reads document metadata from a stored resume. It never
// extracts text; parsing the resume is the scoring service's job.
type PDFInspector interface {
	PageCount(filePath string) (int, error)
}

type pdfInspector struct{}

func NewPDFInspector() PDFInspector {
	return &pdfInspector{}
}

func (p *pdfInspector) PageCount(filePath string) (count int, err error) {
	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return 0, fmt.Errorf("file does not exist: %s", filePath)
	}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			count, err = 0, fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	return r.NumPage(), nil
}
