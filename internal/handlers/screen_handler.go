package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

type ScreenHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	extractor      services.TextExtractor
	screener       services.ScreenerService
}

func NewScreenHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	extractor services.TextExtractor,
	screener services.ScreenerService,
) *ScreenHandler {
	return &ScreenHandler{
		docRepo:        docRepo,
		storageService: storageService,
		extractor:      extractor,
		screener:       screener,
	}
}

// HandleScreen handles POST /screen. The job description comes either as raw
// text or as a previously uploaded PDF; resumes are referenced by their upload
// IDs. Screening is synchronous and the ranked result set is returned
// directly; nothing about the run is persisted.
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	var req models.ScreenRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	// Resolve the job description: raw text wins, otherwise extract from the
	// referenced PDF.
	jobText := req.JobDescription
	if strings.TrimSpace(jobText) == "" && req.JDDocumentID != "" {
		jdID, err := uuid.Parse(req.JDDocumentID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid jd_document_id format",
			})
		}

		doc, err := h.docRepo.FindByID(jdID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job description document not found",
			})
		}

		data, err := h.storageService.ReadFile(doc.Filename)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to read job description file",
			})
		}

		jobText = h.extractor.Extract(c.Context(), doc.Format, data)
	}

	// Load the referenced resumes into memory. A document whose file has gone
	// missing is skipped, not fatal.
	docIDs := make([]uuid.UUID, 0, len(req.ResumeDocumentIDs))
	for _, id := range req.ResumeDocumentIDs {
		docID, err := uuid.Parse(id)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid resume document ID: " + id,
			})
		}
		docIDs = append(docIDs, docID)
	}

	var resumes []models.Resume
	if len(docIDs) > 0 {
		docs, err := h.docRepo.FindByIDs(docIDs)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to look up resume documents",
			})
		}

		for _, doc := range docs {
			data, err := h.storageService.ReadFile(doc.Filename)
			if err != nil {
				log.Printf("⚠️  Skipping %q: %v\n", doc.OriginalFileName, err)
				continue
			}

			resumes = append(resumes, models.Resume{
				Name:   models.CandidateName(doc.OriginalFileName),
				Format: doc.Format,
				Data:   data,
			})
		}
	}

	results, err := h.screener.Screen(c.Context(), jobText, resumes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please provide both a job description and at least one resume",
			})
		case errors.Is(err, services.ErrNoReadableCandidates):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   "No readable resumes found",
				"results": []models.ScoredCandidate{},
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Screening failed",
			})
		}
	}

	return c.JSON(models.ScreenResponse{
		Results: results,
		Count:   len(results),
	})
}
