package services

import (
	"os"
	"path/filepath"
	"testing"

	"alfredoptarigan/resume-matcher/internal/testutil"
)

func TestPageCount(t *testing.T) {
	dir := t.TempDir()
	p := NewPDFInspector()

	valid := filepath.Join(dir, "cv.pdf")
	if err := os.WriteFile(valid, testutil.MinimalPDF(3), 0600); err != nil {
		t.Fatal(err)
	}
	n, err := p.PageCount(valid)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 pages, got %d", n)
	}

	garbage := filepath.Join(dir, "fake.pdf")
	if err := os.WriteFile(garbage, []byte("not a pdf at all"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := p.PageCount(garbage); err == nil {
		t.Fatalf("expected error for non-PDF bytes")
	}

	if _, err := p.PageCount(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
