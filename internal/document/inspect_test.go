package document

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/docsight/backend/internal/models"
)

// buildPDF emits a minimal but well-formed PDF with the given number of
// empty pages, computing real xref byte offsets so pdfcpu parses it
// without repair.
func buildPDF(pages int) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(format string, args ...interface{}) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, format, args...)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	obj("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), pages)
	for i := 0; i < pages; i++ {
		obj("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n", 3+i)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func TestInspectImages(t *testing.T) {
	ins := NewInspector()

	tests := []struct {
		name     string
		fileName string
		accepted bool
	}{
		{name: "png accepted", fileName: "scan.png", accepted: true},
		{name: "jpg accepted", fileName: "scan.jpg", accepted: true},
		{name: "jpeg accepted", fileName: "scan.jpeg", accepted: true},
		{name: "uppercase extension accepted", fileName: "SCAN.JPG", accepted: true},
		{name: "gif rejected", fileName: "scan.gif", accepted: false},
		{name: "text rejected", fileName: "notes.txt", accepted: false},
		{name: "no extension rejected", fileName: "scan", accepted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ins.Inspect(models.Document{Name: tt.fileName, Bytes: []byte("data")})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Accepted != tt.accepted {
				t.Errorf("Accepted = %v, want %v (reason: %s)", res.Accepted, tt.accepted, res.Reason)
			}
			if tt.accepted && res.Kind != "image" {
				t.Errorf("Kind = %q, want image", res.Kind)
			}
			if !tt.accepted && res.Reason == "" {
				t.Error("rejection must carry a reason")
			}
		})
	}
}

func TestInspectSinglePagePDF(t *testing.T) {
	ins := NewInspector()

	res, err := ins.Inspect(models.Document{Name: "report.pdf", Bytes: buildPDF(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Accepted {
		t.Fatalf("expected single-page PDF to be accepted (reason: %s)", res.Reason)
	}
	if res.Kind != "pdf" {
		t.Errorf("Kind = %q, want pdf", res.Kind)
	}
	if res.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", res.PageCount)
	}
}

func TestInspectMultiPagePDF(t *testing.T) {
	ins := NewInspector()

	res, err := ins.Inspect(models.Document{Name: "report.pdf", Bytes: buildPDF(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Accepted {
		t.Fatal("expected multi-page PDF to be rejected")
	}
	if res.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3", res.PageCount)
	}
	if res.Reason == "" {
		t.Error("rejection must carry a reason")
	}
}

func TestInspectUnreadablePDF(t *testing.T) {
	ins := NewInspector()

	// Garbage bytes with a .pdf extension must be rejected locally,
	// not passed on to the pipeline.
	res, err := ins.Inspect(models.Document{Name: "broken.pdf", Bytes: []byte("not a pdf")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Accepted {
		t.Error("expected unreadable PDF to be rejected")
	}
	if res.Kind != "pdf" {
		t.Errorf("Kind = %q, want pdf", res.Kind)
	}
	if res.Reason == "" {
		t.Error("rejection must carry a reason")
	}
}
