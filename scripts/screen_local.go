package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

// Screens a local folder of resumes against a job description file without
// going through the HTTP API. Useful for quick batch runs:
//
//	go run ./scripts/screen_local.go -jd ./jd.txt -resumes ./resumes
func main() {
	jdPath := flag.String("jd", "", "job description file (.txt or .pdf)")
	resumeDir := flag.String("resumes", "", "directory of resumes (.pdf/.docx)")
	flag.Parse()

	if *jdPath == "" || *resumeDir == "" {
		log.Fatal("❌ Both -jd and -resumes are required")
	}

	log.Println("🚀 Starting local screening...")

	cfg := config.Load()
	ctx := context.Background()

	ocrService := services.NewOCRService(
		cfg.OCR.PdftoppmPath,
		cfg.OCR.TesseractPath,
		cfg.OCR.Enabled,
	)
	extractor := services.NewTextExtractor(ocrService)

	embedder, err := services.SharedEmbedder(cfg.Gemini.APIKey, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedder: %v", err)
	}

	screener := services.NewScreenerService(
		extractor,
		services.NewFieldExtractor(),
		embedder,
		services.NewMatchScorer(embedder),
		services.NewCompositeRanker(),
		nil,
		cfg.Screening.Concurrency,
	)

	jobText, err := loadJobDescription(ctx, extractor, *jdPath)
	if err != nil {
		log.Fatalf("❌ Failed to load job description: %v", err)
	}
	log.Printf("📄 Job description loaded: %d characters", len(jobText))

	resumes, err := loadResumes(*resumeDir)
	if err != nil {
		log.Fatalf("❌ Failed to load resumes: %v", err)
	}
	log.Printf("📁 Found %d resumes", len(resumes))

	results, err := screener.Screen(ctx, jobText, resumes)
	if err != nil {
		log.Fatalf("❌ Screening failed: %v", err)
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tEXPERIENCE\tEMAIL\tCONTACT\tMATCH\tFINAL")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.2f\t%.2f\n",
			r.Rank, r.Name, r.Experience, r.Email, r.Contact, r.MatchScore, r.FinalScore)
	}
	w.Flush()

	log.Printf("✅ Screened %d candidates successfully", len(results))
}

func loadJobDescription(ctx context.Context, extractor services.TextExtractor, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		text := extractor.Extract(ctx, models.FormatPDF, data)
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("no text found in %s", path)
		}
		return text, nil
	}

	return string(data), nil
}

func loadResumes(dir string) ([]models.Resume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var resumes []models.Resume
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		format := models.FormatFromFilename(entry.Name())
		if format == models.FormatUnsupported {
			log.Printf("⚠️  Skipping unsupported file: %s", entry.Name())
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("⚠️  Failed to read %s: %v", entry.Name(), err)
			continue
		}

		resumes = append(resumes, models.Resume{
			Name:   models.CandidateName(entry.Name()),
			Format: format,
			Data:   data,
		})
	}

	return resumes, nil
}
