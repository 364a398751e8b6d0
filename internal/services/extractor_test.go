package services

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"alfredoptarigan/resume-screener/internal/models"
)

// makeDocx builds a minimal DOCX archive in memory, one run per paragraph.
func makeDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("failed to create document.xml: %v", err)
	}

	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?><w:document><w:body>`)
	for _, para := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t>`)
		doc.WriteString(para)
		doc.WriteString(`</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)

	if _, err := w.Write([]byte(doc.String())); err != nil {
		t.Fatalf("failed to write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close archive: %v", err)
	}

	return buf.Bytes()
}

type fakeOCR struct {
	available bool
	text      string
}

func (f fakeOCR) Available() bool { return f.available }

func (f fakeOCR) RecognizePDF(context.Context, []byte) (string, error) {
	return f.text, nil
}

func TestExtractDOCXJoinsParagraphs(t *testing.T) {
	extractor := NewTextExtractor(nil)

	data := makeDocx(t, "Jane Doe", "Backend engineer", "5 years of experience")
	got := extractor.Extract(context.Background(), models.FormatDOCX, data)

	want := "Jane Doe\nBackend engineer\n5 years of experience"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExtractMalformedDOCXYieldsEmpty(t *testing.T) {
	extractor := NewTextExtractor(nil)

	got := extractor.Extract(context.Background(), models.FormatDOCX, []byte("not a zip archive"))
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestExtractDOCXWithoutDocumentXMLYieldsEmpty(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	if err != nil {
		t.Fatalf("failed to create entry: %v", err)
	}
	w.Write([]byte("<w:styles/>"))
	zw.Close()

	extractor := NewTextExtractor(nil)

	got := extractor.Extract(context.Background(), models.FormatDOCX, buf.Bytes())
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestExtractUnsupportedFormatYieldsEmpty(t *testing.T) {
	extractor := NewTextExtractor(nil)

	got := extractor.Extract(context.Background(), models.FormatUnsupported, []byte("plain text"))
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestExtractUnreadablePDFYieldsEmptyWithoutOCR(t *testing.T) {
	extractor := NewTextExtractor(nil)

	got := extractor.Extract(context.Background(), models.FormatPDF, []byte("not a real pdf"))
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestExtractPDFFallsBackToOCR(t *testing.T) {
	extractor := NewTextExtractor(fakeOCR{available: true, text: "recognized resume text"})

	got := extractor.Extract(context.Background(), models.FormatPDF, []byte("scanned pdf without text layer"))
	if got != "recognized resume text" {
		t.Fatalf("expected OCR text, got %q", got)
	}
}

func TestExtractPDFSkipsUnavailableOCR(t *testing.T) {
	extractor := NewTextExtractor(fakeOCR{available: false, text: "should not be used"})

	got := extractor.Extract(context.Background(), models.FormatPDF, []byte("scanned pdf without text layer"))
	if got != "" {
		t.Fatalf("expected empty text when OCR is unavailable, got %q", got)
	}
}
