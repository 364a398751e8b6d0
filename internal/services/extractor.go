package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/resume-screener/internal/models"
)

// TextExtractor turns a raw document into plain text. Unsupported or
// unreadable documents yield empty text; a bad file never fails a batch.
type TextExtractor interface {
	Extract(ctx context.Context, format models.Format, data []byte) string
}

type textExtractor struct {
	ocr OCRService
}

func NewTextExtractor(ocr OCRService) TextExtractor {
	return &textExtractor{ocr: ocr}
}

// Extract implements TextExtractor.
func (t *textExtractor) Extract(ctx context.Context, format models.Format, data []byte) string {
	switch format {
	case models.FormatPDF:
		text, err := extractPDFText(data)
		if err != nil {
			log.Printf("⚠️  Failed to parse PDF: %v\n", err)
			text = ""
		}
		// Scanned PDFs have no text layer. Re-render and recognize
		// when the OCR capability is around, otherwise give up quietly.
		if strings.TrimSpace(text) == "" && t.ocr != nil && t.ocr.Available() {
			recognized, err := t.ocr.RecognizePDF(ctx, data)
			if err != nil {
				log.Printf("⚠️  OCR fallback failed: %v\n", err)
				return ""
			}
			return recognized
		}
		return text
	case models.FormatDOCX:
		text, err := extractDOCXText(data)
		if err != nil {
			log.Printf("⚠️  Failed to parse DOCX: %v\n", err)
			return ""
		}
		return text
	default:
		return ""
	}
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip the broken page, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

func extractDOCXText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX archive: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("failed to open document.xml: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("failed to read document.xml: %w", err)
			}
			break
		}
	}

	if len(docXML) == 0 {
		return "", fmt.Errorf("no document.xml found in DOCX")
	}

	// Paragraph boundaries become newlines, everything else loses its markup.
	text := string(docXML)
	text = strings.ReplaceAll(text, "</w:p>", "\n")
	text = strings.ReplaceAll(text, "<w:tab/>", "\t")
	text = docxTagPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n"), nil
}
