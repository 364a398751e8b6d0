package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// OCRService recognizes text in scanned PDFs. It is a black-box capability:
// when unavailable the extractor falls back to empty text instead of failing.
type OCRService interface {
	Available() bool
	RecognizePDF(ctx context.Context, data []byte) (string, error)
}

type ocrService struct {
	pdftoppm  string
	tesseract string
	enabled   bool
}

func NewOCRService(pdftoppmPath, tesseractPath string, enabled bool) OCRService {
	return &ocrService{
		pdftoppm:  pdftoppmPath,
		tesseract: tesseractPath,
		enabled:   enabled,
	}
}

// Available implements OCRService. Both external tools must resolve.
func (o *ocrService) Available() bool {
	if !o.enabled {
		return false
	}
	if _, err := exec.LookPath(o.pdftoppm); err != nil {
		return false
	}
	if _, err := exec.LookPath(o.tesseract); err != nil {
		return false
	}
	return true
}

// RecognizePDF implements OCRService. Each page is rendered to a raster image
// at twice the native 72 dpi resolution and recognized in page order.
func (o *ocrService) RecognizePDF(ctx context.Context, data []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "resume-ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write temp PDF: %w", err)
	}

	render := exec.CommandContext(ctx, o.pdftoppm,
		"-r", "144",
		"-png",
		pdfPath,
		filepath.Join(tmpDir, "page"),
	)
	if out, err := render.CombinedOutput(); err != nil {
		return "", fmt.Errorf("failed to render PDF pages: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	// pdftoppm numbers pages with a fixed-width suffix, so the lexical
	// order from Glob is the page order.
	pages, err := filepath.Glob(filepath.Join(tmpDir, "page-*.png"))
	if err != nil || len(pages) == 0 {
		return "", fmt.Errorf("no rendered pages found")
	}

	var textBuilder strings.Builder
	for _, page := range pages {
		recognize := exec.CommandContext(ctx, o.tesseract, page, "stdout")
		out, err := recognize.Output()
		if err != nil {
			log.Printf("⚠️  OCR failed on %s: %v\n", filepath.Base(page), err)
			continue
		}
		textBuilder.Write(out)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}
