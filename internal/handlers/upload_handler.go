package handlers

import (
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload. Accepts any number of resumes (PDF or
// DOCX) under "resumes" and an optional job description PDF under
// "job_description".
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File

	var responses []models.UploadResponse

	// Process the resume files
	for _, resumeFile := range files["resumes"] {
		if resumeFile.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Resume %q too large. Max size: %d bytes", resumeFile.Filename, h.maxFileSize),
			})
		}

		format := models.FormatFromFilename(resumeFile.Filename)
		if format == models.FormatUnsupported {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Unsupported resume format: %q. Only PDF and DOCX are accepted.", resumeFile.Filename),
			})
		}

		response, err := h.saveDocument(resumeFile, "resume", format)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save resume: %v", err),
			})
		}

		responses = append(responses, *response)
	}

	// Process the job description
	if jdFiles, exists := files["job_description"]; exists && len(jdFiles) > 0 {
		jdFile := jdFiles[0]

		if jdFile.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Job description file too large. Max size: %d bytes", h.maxFileSize),
			})
		}

		if models.FormatFromFilename(jdFile.Filename) != models.FormatPDF {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Job description must be a PDF file",
			})
		}

		response, err := h.saveDocument(jdFile, "job_description", models.FormatPDF)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save job description: %v", err),
			})
		}

		responses = append(responses, *response)
	}

	if len(responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid files uploaded. Please upload 'resumes' (PDF/DOCX) and/or 'job_description' (PDF).",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}

func (h *UploadHandler) saveDocument(file *multipart.FileHeader, fileType string, format models.Format) (*models.UploadResponse, error) {
	filename, filePath, err := h.storageService.SaveFile(file, fileType)
	if err != nil {
		return nil, err
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FileType:         fileType,
		Format:           format,
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return nil, err
	}

	return &models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		Format:       string(doc.Format),
	}, nil
}
